package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	issueTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	suggTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(fg).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderFileReport formats the findings of one file.
func RenderFileReport(r domain.FileReport) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s", dimStyle.Render("Validating"), fileStyle.Render(r.Path))
	if r.Cached {
		b.WriteString("  " + skipStyle.Render("(cached)"))
	}
	b.WriteString("\n")

	if r.ParseError != "" {
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), failStyle.Render(r.ParseError))
		return b.String()
	}
	fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("✓"), dimStyle.Render("XML is well-formed"))

	if len(r.Result.Issues) > 0 {
		b.WriteString("\n  " + issueTagStyle.Render(fmt.Sprintf("Issues (%d)", len(r.Result.Issues))) + "\n")
		for _, f := range r.Result.Issues {
			renderFinding(&b, f)
		}
	}
	if len(r.Result.Suggestions) > 0 {
		b.WriteString("\n  " + suggTagStyle.Render(fmt.Sprintf("Suggestions (%d)", len(r.Result.Suggestions))) + "\n")
		for _, f := range r.Result.Suggestions {
			renderFinding(&b, f)
		}
	}
	if r.Result.Empty() {
		fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("✓"), passStyle.Render(noIssuesMessage(r.Dialect)))
	}
	return b.String()
}

func noIssuesMessage(d domain.Dialect) string {
	switch d {
	case domain.DialectEntity:
		return "No issues found - entity follows Moqui patterns"
	case domain.DialectService:
		return "No issues found - service follows Moqui patterns"
	}
	return "No issues found"
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	fmt.Fprintf(b, "    • %s  %s\n", f.String(), faintStyle.Render(f.Rule))
}

// RenderBatch formats every file report followed by the summary.
func RenderBatch(report *domain.BatchReport) string {
	var b strings.Builder
	for _, f := range report.Files {
		b.WriteString(RenderFileReport(f))
	}
	b.WriteString(RenderBatchSummary(report))
	return b.String()
}

// RenderBatchSummary formats totals and the overall verdict.
func RenderBatchSummary(report *domain.BatchReport) string {
	var b strings.Builder
	t := report.Totals

	b.WriteString("\n  " + separatorLine + "\n\n")

	title := headerStyle.Render("moqlint")
	verdict := passStyle.Bold(true).Render("PASSED")
	if !report.Passed {
		verdict = failStyle.Bold(true).Render("FAILED")
	}
	counts := fmt.Sprintf("%d files · %d failed · %d issues · %d suggestions",
		t.Files, t.Failed, t.Issues, t.Suggestions)
	if t.ParseErrors > 0 {
		counts += fmt.Sprintf(" · %d parse errors", t.ParseErrors)
	}
	b.WriteString(boxStyle.Render(title + "\n" + dimStyle.Render(counts) + "\n\n" + verdict))
	b.WriteString("\n")

	if t.Files == 0 {
		b.WriteString("  " + failStyle.Render("No definition files found.") + "\n")
	}
	if len(report.Components) > 1 {
		renderComponents(&b, report.Components)
	}
	if report.CommitHash != "" {
		b.WriteString("  " + dimStyle.Render("commit ") + faintStyle.Render(shortHash(report.CommitHash)) + "\n")
	}
	return b.String()
}

func renderComponents(b *strings.Builder, components []domain.ComponentSummary) {
	b.WriteString("\n  " + titleStyle.Render("Components") + "\n")
	for _, c := range components {
		mark := passStyle.Render("✓")
		if !c.Passed {
			mark = failStyle.Render("✗")
		}
		fmt.Fprintf(b, "  %s %s %s\n",
			mark,
			padRight(c.Name, 28),
			dimStyle.Render(fmt.Sprintf("%d files · %d issues · %d suggestions",
				c.Totals.Files, c.Totals.Issues, c.Totals.Suggestions)),
		)
	}
}

// RenderRules lists rules grouped by dialect.
func RenderRules(infos []rules.Info) string {
	var b strings.Builder

	var current domain.Dialect = "-"
	for _, r := range infos {
		if r.Dialect != current {
			current = r.Dialect
			label := string(r.Dialect)
			if r.Dialect == domain.DialectAuto {
				label = "all dialects"
			}
			b.WriteString("\n  " + titleStyle.Render(label) + "\n")
			b.WriteString("  " + separatorLine + "\n")
		}
		fmt.Fprintf(&b, "  %s %s  %s %s\n",
			severityTag(r.Severity),
			padRight(r.ID, 32),
			dimStyle.Render(r.Description),
			faintStyle.Render("["+string(r.Kind)+"]"),
		)
	}
	return b.String()
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityIssue:
		return issueTagStyle.Render("issue     ")
	case domain.SeveritySuggestion:
		return suggTagStyle.Render("suggestion")
	default:
		return infoTagStyle.Render(padRight(string(s), 10))
	}
}

// RenderHistory formats recorded runs for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}

		status := passStyle.Render("pass")
		if !e.Passed {
			status = failStyle.Render("fail")
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(day(e.Timestamp)),
			faintStyle.Render(hash),
			status,
			fmt.Sprintf("%d files, %d issues, %d suggestions", e.Files, e.Issues, e.Suggestions),
		)

		if i > 0 {
			diff := e.Issues - entries[i-1].Issues
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func day(timestamp string) string {
	if len(timestamp) > 10 {
		return timestamp[:10]
	}
	return timestamp
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
