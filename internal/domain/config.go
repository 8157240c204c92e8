package domain

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule identifiers. They are stable: users reference them in skip_rules.
const (
	RuleRootElement = "root-element"

	RuleEntityNamespace          = "entity-namespace"
	RuleEntityNameRequired       = "entity-name-required"
	RulePackageRequired          = "package-required"
	RuleEntityNameCharset        = "entity-name-charset"
	RuleFieldsRequired           = "fields-required"
	RuleFieldNameRequired        = "field-name-required"
	RuleFieldTypeRequired        = "field-type-required"
	RuleFieldTypeKnown           = "field-type-known"
	RulePrimaryKeyName           = "pk-name"
	RuleIDSuffixType             = "id-suffix-type"
	RuleDateSuffixType           = "date-suffix-type"
	RulePrimaryKeyRequired       = "pk-required"
	RuleRelationshipTypeRequired = "relationship-type-required"
	RuleRelationshipTypeKnown    = "relationship-type-known"
	RuleRelationshipRelated      = "relationship-related-required"
	RuleRelationshipShortAlias   = "relationship-short-alias"
	RuleRelationshipKeyMap       = "relationship-key-map-required"
	RuleKeyMapFieldNameRequired  = "key-map-field-name-required"

	RuleServiceNamespace      = "service-namespace"
	RuleServiceIdentity       = "service-identity"
	RuleVerbLowercase         = "verb-lowercase"
	RuleNounPascalCase        = "noun-pascal-case"
	RuleRequireAllRoles       = "require-all-roles"
	RuleParameterNameRequired = "parameter-name-required"
	RuleParameterType         = "parameter-type"
	RuleActionsRequired       = "actions-required"
	RuleActionsEmpty          = "actions-empty"
)

// ValidRuleIDs enumerates every rule identifier.
var ValidRuleIDs = []string{
	RuleRootElement,
	// entity
	RuleEntityNamespace, RuleEntityNameRequired, RulePackageRequired,
	RuleEntityNameCharset, RuleFieldsRequired, RuleFieldNameRequired,
	RuleFieldTypeRequired, RuleFieldTypeKnown, RulePrimaryKeyName,
	RuleIDSuffixType, RuleDateSuffixType, RulePrimaryKeyRequired,
	RuleRelationshipTypeRequired, RuleRelationshipTypeKnown,
	RuleRelationshipRelated, RuleRelationshipShortAlias,
	RuleRelationshipKeyMap, RuleKeyMapFieldNameRequired,
	// service
	RuleServiceNamespace, RuleServiceIdentity, RuleVerbLowercase,
	RuleNounPascalCase, RuleRequireAllRoles, RuleParameterNameRequired,
	RuleParameterType, RuleActionsRequired, RuleActionsEmpty,
}

// ProjectConfig holds project-level configuration loaded from .moqlint.yaml.
type ProjectConfig struct {
	Dialect          Dialect  `yaml:"dialect"           json:"dialect,omitempty"`
	ExcludePaths     []string `yaml:"exclude_paths"     json:"exclude_paths,omitempty"`
	ExcludeGlobs     []string `yaml:"exclude_globs"     json:"exclude_globs,omitempty"`
	SkipRules        []string `yaml:"skip_rules"        json:"skip_rules,omitempty"`
	Workers          int      `yaml:"workers"           json:"workers,omitempty"`
	RespectGitignore *bool    `yaml:"respect_gitignore" json:"respect_gitignore,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{Dialect: DialectAuto}
}

// GitignoreEnabled defaults to true when unset.
func (c ProjectConfig) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Dialect != "" {
		if _, err := ParseDialect(string(c.Dialect)); err != nil {
			return err
		}
	}

	for _, id := range c.SkipRules {
		if !isValidRuleID(id) {
			return fmt.Errorf("unknown rule %q in skip_rules", id)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	for i, g := range c.ExcludeGlobs {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("exclude_globs[%d]: invalid pattern %q", i, g)
		}
	}

	return nil
}

func isValidRuleID(id string) bool {
	for _, r := range ValidRuleIDs {
		if r == id {
			return true
		}
	}
	return false
}
