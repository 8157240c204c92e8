package domain_test

import (
	"testing"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_IsInvalidated(t *testing.T) {
	cache := &domain.ResultCache{ConfigHash: "abc123", Version: "1.0.0"}

	t.Run("same hashes", func(t *testing.T) {
		assert.False(t, cache.IsInvalidated("abc123", "1.0.0"))
	})

	t.Run("different config", func(t *testing.T) {
		assert.True(t, cache.IsInvalidated("changed", "1.0.0"))
	})

	t.Run("different version", func(t *testing.T) {
		assert.True(t, cache.IsInvalidated("abc123", "1.1.0"))
	})
}

func TestResultCache_LookupAndPut(t *testing.T) {
	var nilCache *domain.ResultCache
	_, ok := nilCache.Lookup("a.xml", "h", domain.DialectEntity)
	assert.False(t, ok)

	cache := &domain.ResultCache{}
	res := domain.ValidationResult{Issues: []domain.Finding{issue("x")}}
	cache.Put("a.xml", "h1", domain.DialectEntity, res)

	got, ok := cache.Lookup("a.xml", "h1", domain.DialectEntity)
	assert.True(t, ok)
	assert.Equal(t, res, got)

	_, ok = cache.Lookup("a.xml", "h2", domain.DialectEntity)
	assert.False(t, ok, "content changed")

	_, ok = cache.Lookup("a.xml", "h1", domain.DialectService)
	assert.False(t, ok, "dialect changed")
}

func TestNewRunEntry(t *testing.T) {
	report := domain.NewBatchReport([]domain.FileReport{{Path: "a.xml"}})
	report.CommitHash = "deadbeef"
	report.Dialect = domain.DialectEntity

	entry := domain.NewRunEntry(report, "2026-01-02T03:04:05Z")
	assert.Equal(t, "deadbeef", entry.CommitHash)
	assert.Equal(t, domain.DialectEntity, entry.Dialect)
	assert.Equal(t, 1, entry.Files)
	assert.True(t, entry.Passed)
}

func TestKeepLatest(t *testing.T) {
	entries := []domain.RunEntry{{Timestamp: "t1"}, {Timestamp: "t2"}, {Timestamp: "t3"}}

	assert.Equal(t, entries[1:], domain.KeepLatest(entries, 2))
	assert.Equal(t, entries, domain.KeepLatest(entries, 3))
	assert.Equal(t, entries, domain.KeepLatest(entries, 0))
}

func TestRunsOf(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "t1", Dialect: domain.DialectEntity},
		{Timestamp: "t2"},
		{Timestamp: "t3", Dialect: domain.DialectService},
		{Timestamp: "t4", Dialect: domain.DialectEntity},
	}

	entity := domain.RunsOf(entries, domain.DialectEntity)
	require.Len(t, entity, 2)
	assert.Equal(t, "t4", entity[1].Timestamp)

	auto := domain.RunsOf(entries, domain.DialectAuto)
	require.Len(t, auto, 1)
	assert.Equal(t, "t2", auto[0].Timestamp)

	assert.Empty(t, domain.RunsOf(entries[:2], domain.DialectService))
}
