package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/moqlint/internal/domain"
)

func sampleCache(projectPath string) *domain.ResultCache {
	rc := &domain.ResultCache{
		ProjectPath: projectPath,
		ConfigHash:  "abc123",
		Version:     "v1.0.0",
	}
	rc.Put("/p/OrderEntities.xml", "h1", domain.DialectEntity, domain.ValidationResult{
		Suggestions: []domain.Finding{{
			Severity: domain.SeveritySuggestion,
			Rule:     domain.RulePrimaryKeyName,
			Subject:  "Entity 'Order'",
			Message:  "Primary key should be named 'orderId'",
		}},
	})
	return rc
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	original := sampleCache(projectPath)
	require.NoError(t, store.Save(original))

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.ConfigHash, loaded.ConfigHash)
	assert.Equal(t, original.Version, loaded.Version)

	result, ok := loaded.Lookup("/p/OrderEntities.xml", "h1", domain.DialectEntity)
	require.True(t, ok)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, domain.RulePrimaryKeyName, result.Suggestions[0].Rule)
}

func TestStore_LoadNonExistent(t *testing.T) {
	store := cache.New()

	loaded, err := store.Load(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	dir := filepath.Join(projectPath, ".moqlint", "cache")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results.json"), []byte("{not json"), 0644))

	_, err := store.Load(projectPath)
	assert.Error(t, err)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(sampleCache(projectPath)))
	require.NoError(t, store.Invalidate(projectPath))

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// removing twice is fine
	assert.NoError(t, store.Invalidate(projectPath))
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	cacheDir := filepath.Join(projectPath, ".moqlint", "cache")
	_, err := os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, store.Save(sampleCache(projectPath)))

	_, err = os.Stat(filepath.Join(cacheDir, "results.json"))
	assert.NoError(t, err)
}
