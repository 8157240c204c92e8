package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/abdidvp/moqlint/internal/adapters/outbound/config"
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".moqlint.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
dialect: entity
exclude_paths:
  - generated/
exclude_globs:
  - "**/*Demo*.xml"
skip_rules:
  - relationship-short-alias
workers: 2
respect_gitignore: false
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DialectEntity, cfg.Dialect)
	assert.Equal(t, []string{"generated/"}, cfg.ExcludePaths)
	assert.Equal(t, []string{"**/*Demo*.xml"}, cfg.ExcludeGlobs)
	assert.Equal(t, []string{"relationship-short-alias"}, cfg.SkipRules)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.GitignoreEnabled())
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .moqlint.yaml")
}

func TestYAMLLoader_UnknownRuleRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
skip_rules:
  - pk-nmae
`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .moqlint.yaml")
	assert.Contains(t, err.Error(), "pk-nmae")
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DialectAuto, cfg.Dialect)
	assert.True(t, cfg.GitignoreEnabled())
}
