package rules

import (
	"fmt"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

// ServiceNamespace is the schema location service documents should reference.
const ServiceNamespace = "http://moqui.org/xsd/service-definition-3.xsd"

var serviceCatalog = Catalog{
	Dialect: domain.DialectService,
	Rules: []Rule{
		{
			ID: domain.RuleServiceNamespace, Severity: domain.SeveritySuggestion, Kind: KindDocument,
			Description: "root element references the service definition XSD",
			Check:       checkNamespace(ServiceNamespace),
		},
		{
			ID: domain.RuleServiceIdentity, Severity: domain.SeverityIssue, Kind: KindService,
			Description: "service has both verb and noun attributes",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("verb") == "" || ctx.Node.Value("noun") == "" {
					return report("missing verb or noun attributes")
				}
				return nil
			},
		},
		{
			ID: domain.RuleVerbLowercase, Severity: domain.SeverityIssue, Kind: KindService,
			Description: "verb is lowercase",
			Check: func(ctx RuleContext) []string {
				if HasUpper(ctx.Node.Value("verb")) {
					return report(fmt.Sprintf("verb '%s' should be lowercase", ctx.Node.Value("verb")))
				}
				return nil
			},
		},
		{
			ID: domain.RuleNounPascalCase, Severity: domain.SeveritySuggestion, Kind: KindService,
			Description: "noun starts with an uppercase letter",
			Check: func(ctx RuleContext) []string {
				noun := ctx.Node.Value("noun")
				if noun == "" || StartsUpper(noun) {
					return nil
				}
				msg := "consider PascalCase for noun"
				if proposed := PascalCase(noun); proposed != "" && proposed != noun {
					msg += fmt.Sprintf(" ('%s')", proposed)
				}
				return report(msg)
			},
		},
		{
			ID: domain.RuleRequireAllRoles, Severity: domain.SeveritySuggestion, Kind: KindService,
			Description: "authenticated services declare require-all-roles",
			Check: func(ctx RuleContext) []string {
				auth, ok := ctx.Node.Attr("authenticate")
				if !ok {
					auth = "true"
				}
				if _, has := ctx.Node.Attr("require-all-roles"); auth == "true" && !has {
					return report("consider adding require-all-roles for security")
				}
				return nil
			},
		},
		{
			ID: domain.RuleParameterNameRequired, Severity: domain.SeverityIssue, Kind: KindParameter,
			Description: "in-parameter has a name",
			Halts:       true,
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("name") == "" {
					return report("parameter missing name")
				}
				return nil
			},
		},
		{
			ID: domain.RuleParameterType, Severity: domain.SeveritySuggestion, Kind: KindParameter,
			Description: "in-parameter declares a type or required flag",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Value("type") == "" && ctx.Node.Value("required") == "" {
					return report(fmt.Sprintf("parameter '%s': consider adding type specification", ctx.Node.Value("name")))
				}
				return nil
			},
		},
		{
			ID: domain.RuleActionsRequired, Severity: domain.SeverityIssue, Kind: KindActions,
			Description: "service has an actions section",
			Check: func(ctx RuleContext) []string {
				if ctx.Node.Child("actions") == nil {
					return report("missing actions section")
				}
				return nil
			},
		},
		{
			ID: domain.RuleActionsEmpty, Severity: domain.SeverityIssue, Kind: KindActions,
			Description: "actions section is not empty",
			Check: func(ctx RuleContext) []string {
				if a := ctx.Node.Child("actions"); a != nil && a.IsBlank() {
					return report("empty actions section")
				}
				return nil
			},
		},
	},
	walk: []step{
		{Kind: KindService},
		{Kind: KindParameter, Path: []string{"in-parameters", "parameter"}},
		{Kind: KindActions},
	},
	owner: func(n *xmltree.Node) (string, string) {
		name := ServiceName(n.Value("verb"), n.Value("noun"))
		return name, fmt.Sprintf("Service '%s'", name)
	},
}
