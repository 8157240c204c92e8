package tui_test

import (
	"strings"
	"testing"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
	"github.com/stretchr/testify/assert"
)

func sampleReport() domain.FileReport {
	return domain.FileReport{
		Path:    "component/entity/LegacyEntities.xml",
		Dialect: domain.DialectEntity,
		Result: domain.ValidationResult{
			Issues: []domain.Finding{{
				Severity: domain.SeverityIssue,
				Rule:     domain.RulePackageRequired,
				Subject:  "Entity 'Invoice'",
				Message:  "missing package attribute",
			}},
			Suggestions: []domain.Finding{{
				Severity: domain.SeveritySuggestion,
				Rule:     domain.RulePrimaryKeyName,
				Subject:  "Entity 'Invoice'",
				Message:  "Primary key should be named 'invoiceId'",
			}},
		},
	}
}

func TestRenderFileReport_ShowsFindings(t *testing.T) {
	output := tui.RenderFileReport(sampleReport())
	assert.Contains(t, output, "LegacyEntities.xml")
	assert.Contains(t, output, "XML is well-formed")
	assert.Contains(t, output, "Issues (1)")
	assert.Contains(t, output, "Entity 'Invoice': missing package attribute")
	assert.Contains(t, output, "Suggestions (1)")
	assert.Contains(t, output, "Primary key should be named 'invoiceId'")
	assert.Contains(t, output, domain.RulePackageRequired)
	assert.NotContains(t, output, "No issues found")
}

func TestRenderFileReport_IssuesBeforeSuggestions(t *testing.T) {
	output := tui.RenderFileReport(sampleReport())
	assert.Less(t, strings.Index(output, "missing package"), strings.Index(output, "Primary key"))
}

func TestRenderFileReport_Clean(t *testing.T) {
	output := tui.RenderFileReport(domain.FileReport{Path: "OrderServices.xml", Dialect: domain.DialectService})
	assert.Contains(t, output, "No issues found - service follows Moqui patterns")
	assert.NotContains(t, output, "Issues (")
}

func TestRenderFileReport_ParseError(t *testing.T) {
	output := tui.RenderFileReport(domain.FileReport{
		Path:       "Broken.xml",
		ParseError: "XML parse error: line 4: element <field> closed by </entity>",
	})
	assert.Contains(t, output, "XML parse error")
	assert.NotContains(t, output, "well-formed")
}

func TestRenderFileReport_Cached(t *testing.T) {
	r := sampleReport()
	r.Cached = true
	assert.Contains(t, tui.RenderFileReport(r), "(cached)")
}

func TestRenderBatchSummary(t *testing.T) {
	report := domain.NewBatchReport([]domain.FileReport{
		sampleReport(),
		{Path: "OrderEntities.xml", Dialect: domain.DialectEntity},
	})
	report.CommitHash = "0123456789abcdef"

	output := tui.RenderBatchSummary(report)
	assert.Contains(t, output, "2 files")
	assert.Contains(t, output, "1 failed")
	assert.Contains(t, output, "1 issues")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "0123456")
	assert.NotContains(t, output, "0123456789")
}

func TestRenderBatchSummary_Empty(t *testing.T) {
	output := tui.RenderBatchSummary(domain.NewBatchReport(nil))
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "No definition files found.")
}

func TestRenderBatchSummary_Components(t *testing.T) {
	report := domain.NewBatchReport([]domain.FileReport{sampleReport()})
	report.Components = []domain.ComponentSummary{
		{Name: "mantle-udm", Totals: domain.Totals{Files: 1, Failed: 1, Issues: 1}},
		{Name: "SimpleScreens", Passed: true, Totals: domain.Totals{Files: 3}},
	}

	output := tui.RenderBatchSummary(report)
	assert.Contains(t, output, "Components")
	assert.Contains(t, output, "mantle-udm")
	assert.Contains(t, output, "3 files · 0 issues · 0 suggestions")
}

func TestRenderBatchSummary_SingleComponentHidden(t *testing.T) {
	report := domain.NewBatchReport([]domain.FileReport{sampleReport()})
	report.Components = []domain.ComponentSummary{{Name: "moqui", Totals: report.Totals}}

	assert.NotContains(t, tui.RenderBatchSummary(report), "Components")
}

func TestRenderBatch_IncludesEveryFile(t *testing.T) {
	report := domain.NewBatchReport([]domain.FileReport{
		{Path: "A.xml", Dialect: domain.DialectEntity},
		{Path: "B.xml", Dialect: domain.DialectService},
	})
	output := tui.RenderBatch(report)
	assert.Less(t, strings.Index(output, "A.xml"), strings.Index(output, "B.xml"))
	assert.Contains(t, output, "PASSED")
}

func TestRenderRules_ListsEveryRule(t *testing.T) {
	output := tui.RenderRules(rules.Infos(domain.DialectAuto))
	for _, id := range domain.ValidRuleIDs {
		assert.Contains(t, output, id)
	}
	assert.Contains(t, output, "all dialects")
	assert.Contains(t, output, "entity")
	assert.Contains(t, output, "service")
}

func TestRenderRules_SingleDialect(t *testing.T) {
	output := tui.RenderRules(rules.Infos(domain.DialectService))
	assert.Contains(t, output, domain.RuleVerbLowercase)
	assert.NotContains(t, output, domain.RulePrimaryKeyName)
}

func TestRenderHistory(t *testing.T) {
	output := tui.RenderHistory([]domain.RunEntry{
		{Timestamp: "2026-02-25T10:00:00Z", CommitHash: "abcdef123456", Files: 4, Issues: 5},
		{Timestamp: "2026-02-26T10:00:00Z", Files: 4, Issues: 2},
		{Timestamp: "2026-02-27T10:00:00Z", Files: 4, Issues: 0, Passed: true},
	})
	assert.Contains(t, output, "Run History")
	assert.Contains(t, output, "2026-02-25")
	assert.Contains(t, output, "abcdef1")
	assert.Contains(t, output, "↓3")
	assert.Contains(t, output, "↓2")
	assert.Contains(t, output, "pass")
	assert.Contains(t, output, "fail")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}
