package domain_test

import (
	"testing"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.DialectAuto, cfg.Dialect)
	assert.Empty(t, cfg.SkipRules)
	assert.Empty(t, cfg.ExcludePaths)
	assert.Zero(t, cfg.Workers)
	assert.True(t, cfg.GitignoreEnabled())
	require.NoError(t, cfg.Validate())
}

func TestGitignoreEnabled_ExplicitFalse(t *testing.T) {
	off := false
	cfg := domain.ProjectConfig{RespectGitignore: &off}
	assert.False(t, cfg.GitignoreEnabled())
}

func TestValidate_Valid(t *testing.T) {
	cfg := domain.ProjectConfig{
		Dialect:      domain.DialectService,
		ExcludePaths: []string{"build/"},
		ExcludeGlobs: []string{"**/*Demo*.xml"},
		SkipRules:    []string{domain.RuleRequireAllRoles, domain.RuleEntityNamespace},
		Workers:      4,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"unknown dialect", domain.ProjectConfig{Dialect: "screen"}, `unknown dialect "screen"`},
		{"unknown rule", domain.ProjectConfig{SkipRules: []string{"no-such-rule"}}, `unknown rule "no-such-rule" in skip_rules`},
		{"negative workers", domain.ProjectConfig{Workers: -1}, "workers must be >= 0"},
		{"bad glob", domain.ProjectConfig{ExcludeGlobs: []string{"[unclosed"}}, "exclude_globs[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
