package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

// EntityNamespace is the schema location entity documents should reference.
const EntityNamespace = "http://moqui.org/xsd/entity-definition-3.xsd"

var entityCatalog = Catalog{
	Dialect: domain.DialectEntity,
	Rules: []Rule{
		{
			ID: domain.RuleEntityNamespace, Severity: domain.SeveritySuggestion, Kind: KindDocument,
			Description: "root element references the entity definition XSD",
			Check:       checkNamespace(EntityNamespace),
		},
		{
			ID: domain.RuleEntityNameRequired, Severity: domain.SeverityIssue, Kind: KindEntity,
			Description: "entity has an entity-name attribute",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("entity-name") == "" {
					return report("missing entity-name attribute")
				}
				return nil
			},
		},
		{
			ID: domain.RulePackageRequired, Severity: domain.SeverityIssue, Kind: KindEntity,
			Description: "entity has a package attribute",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("package") == "" {
					return report("missing package attribute")
				}
				return nil
			},
		},
		{
			ID: domain.RuleEntityNameCharset, Severity: domain.SeveritySuggestion, Kind: KindEntity,
			Description: "entity name uses only letters, digits and underscores",
			Check: func(ctx RuleContext) []string {
				// ctx.Name falls back to "unnamed entity", which fails too.
				if !IsIdentifierName(ctx.Name) {
					return report("consider using alphanumeric with underscores")
				}
				return nil
			},
		},
		{
			ID: domain.RuleFieldsRequired, Severity: domain.SeverityIssue, Kind: KindEntity,
			Description: "entity defines at least one field",
			Check: func(ctx RuleContext) []string {
				if len(ctx.Node.ChildrenNamed("field")) == 0 {
					return report("no fields defined")
				}
				return nil
			},
		},
		{
			ID: domain.RuleFieldNameRequired, Severity: domain.SeverityIssue, Kind: KindField,
			Description: "field has a name; other field checks are skipped without one",
			Halts:       true,
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("name") == "" {
					return report("field missing name")
				}
				return nil
			},
		},
		{
			ID: domain.RuleFieldTypeRequired, Severity: domain.SeverityIssue, Kind: KindField,
			Description: "field has a type",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("type") == "" {
					return report(fmt.Sprintf("field '%s' missing type", ctx.Node.Value("name")))
				}
				return nil
			},
		},
		{
			ID: domain.RuleFieldTypeKnown, Severity: domain.SeveritySuggestion, Kind: KindField,
			Description: "field type is one of the recognized types",
			Check: func(ctx RuleContext) []string {
				t := ctx.Node.Value("type")
				if t != "" && !IsKnownFieldType(t) {
					return report(fmt.Sprintf("field '%s' has unknown type '%s'", ctx.Node.Value("name"), t))
				}
				return nil
			},
		},
		{
			ID: domain.RulePrimaryKeyName, Severity: domain.SeveritySuggestion, Kind: KindField,
			Description: "primary key field is named after the entity (Order -> orderId)",
			Check: func(ctx RuleContext) []string {
				entity := ctx.Owner.Value("entity-name")
				if !isPrimaryKey(ctx.Node) || entity == "" {
					return nil
				}
				name, expected := ctx.Node.Value("name"), ExpectedPrimaryKey(entity)
				if name != expected {
					return report(fmt.Sprintf("primary key '%s' should probably be '%s'", name, expected))
				}
				return nil
			},
		},
		{
			ID: domain.RuleIDSuffixType, Severity: domain.SeveritySuggestion, Kind: KindField,
			Description: "fields ending in Id have type id",
			Check: func(ctx RuleContext) []string {
				name := ctx.Node.Value("name")
				if HasIDSuffix(name) && ctx.Node.Value("type") != "id" {
					return report(fmt.Sprintf("field '%s' ending with 'Id' should probably be type 'id'", name))
				}
				return nil
			},
		},
		{
			ID: domain.RuleDateSuffixType, Severity: domain.SeveritySuggestion, Kind: KindField,
			Description: "fields ending in Date have a date type",
			Check: func(ctx RuleContext) []string {
				name, t := ctx.Node.Value("name"), ctx.Node.Value("type")
				if HasDateSuffix(name) && t != "" && !IsDateType(t) {
					return report(fmt.Sprintf("field '%s' ending with 'Date' should probably be a date type", name))
				}
				return nil
			},
		},
		{
			ID: domain.RulePrimaryKeyRequired, Severity: domain.SeverityIssue, Kind: KindEntityKeys,
			Description: "entity marks at least one named field is-pk=\"true\"",
			Check: func(ctx RuleContext) []string {
				if len(PrimaryKeys(ctx.Node)) == 0 {
					return report("no primary key fields defined")
				}
				return nil
			},
		},
		{
			ID: domain.RuleRelationshipTypeRequired, Severity: domain.SeverityIssue, Kind: KindRelationship,
			Description: "relationship has a type",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("type") == "" {
					return report("relationship missing type")
				}
				return nil
			},
		},
		{
			ID: domain.RuleRelationshipTypeKnown, Severity: domain.SeveritySuggestion, Kind: KindRelationship,
			Description: "relationship type is one, many or one-nofk",
			Check: func(ctx RuleContext) []string {
				t := ctx.Node.Value("type")
				if t != "" && !IsKnownRelationshipType(t) {
					return report(fmt.Sprintf("relationship type '%s' should be %s", t, quotedList(RelationshipTypes)))
				}
				return nil
			},
		},
		{
			ID: domain.RuleRelationshipRelated, Severity: domain.SeverityIssue, Kind: KindRelationship,
			Description: "relationship names its related entity",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("related") == "" {
					return report("relationship missing related entity")
				}
				return nil
			},
		},
		{
			ID: domain.RuleRelationshipShortAlias, Severity: domain.SeveritySuggestion, Kind: KindRelationship,
			Description: "relationship declares a short-alias",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("short-alias") == "" {
					return report("relationship should have short-alias for easier access")
				}
				return nil
			},
		},
		{
			ID: domain.RuleRelationshipKeyMap, Severity: domain.SeverityIssue, Kind: KindRelationship,
			Description: "relationship has at least one key-map",
			Check: func(ctx RuleContext) []string {
				if len(ctx.Node.ChildrenNamed("key-map")) == 0 {
					return report("relationship missing key-map elements")
				}
				return nil
			},
		},
		{
			ID: domain.RuleKeyMapFieldNameRequired, Severity: domain.SeverityIssue, Kind: KindKeyMap,
			Description: "key-map has a field-name",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("field-name") == "" {
					return report("key-map missing field-name")
				}
				return nil
			},
		},
	},
	walk: []step{
		{Kind: KindEntity},
		{Kind: KindField, Path: []string{"field"}},
		{Kind: KindEntityKeys},
		{Kind: KindRelationship, Path: []string{"relationship"}, Then: []step{
			{Kind: KindKeyMap, Path: []string{"key-map"}},
		}},
	},
	owner: func(n *xmltree.Node) (string, string) {
		name := EntityName(n.Value("entity-name"))
		return name, fmt.Sprintf("Entity '%s'", name)
	},
}

func isPrimaryKey(field *xmltree.Node) bool {
	return field.Value("is-pk") == "true"
}

// PrimaryKeys returns the names of the entity's fields flagged is-pk="true".
// Fields without a name never count.
func PrimaryKeys(entity *xmltree.Node) []string {
	var keys []string
	for _, f := range entity.ChildrenNamed("field") {
		if name := f.Value("name"); name != "" && isPrimaryKey(f) {
			keys = append(keys, name)
		}
	}
	return keys
}

// checkNamespace reports a missing schema reference. Any root attribute name
// or value containing marker counts.
func checkNamespace(marker string) func(RuleContext) []string {
	return func(ctx RuleContext) []string {
		for _, a := range ctx.Root.Attrs {
			if strings.Contains(a.Name, marker) || strings.Contains(a.Value, marker) {
				return nil
			}
		}
		return report(fmt.Sprintf(
			"Consider adding XSD namespace: xmlns:xsi='http://www.w3.org/2001/XMLSchema-instance' xsi:noNamespaceSchemaLocation='%s'",
			marker,
		))
	}
}

// quotedList renders ["a","b","c"] as "'a', 'b', or 'c'".
func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) < 2 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
