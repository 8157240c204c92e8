package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDefinitions is returned when a directory scan finds no candidate files.
var ErrNoDefinitions = errors.New("no definition files found")

// Severity classifies a finding.
type Severity string

const (
	SeverityIssue      Severity = "issue"
	SeveritySuggestion Severity = "suggestion"
)

// Dialect identifies which rule catalog applies to a document.
type Dialect string

const (
	DialectAuto    Dialect = "auto"
	DialectEntity  Dialect = "entity"
	DialectService Dialect = "service"
)

// ValidDialects enumerates the dialects accepted on the command line and in config.
var ValidDialects = []Dialect{DialectAuto, DialectEntity, DialectService}

// ParseDialect converts a user-supplied dialect name. The empty string means auto.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case "", DialectAuto:
		return DialectAuto, nil
	case DialectEntity:
		return DialectEntity, nil
	case DialectService:
		return DialectService, nil
	}
	return "", fmt.Errorf("unknown dialect %q (valid: %s)", s, strings.Join(DialectNames(), ", "))
}

// DialectNames returns ValidDialects as strings, for flag help and enums.
func DialectNames() []string {
	names := make([]string, len(ValidDialects))
	for i, d := range ValidDialects {
		names[i] = string(d)
	}
	return names
}

// RootTag returns the document root element expected for the dialect.
func (d Dialect) RootTag() string {
	switch d {
	case DialectEntity:
		return "entities"
	case DialectService:
		return "services"
	}
	return ""
}

// ChildTag returns the element the dialect evaluates under its root.
func (d Dialect) ChildTag() string {
	switch d {
	case DialectEntity:
		return "entity"
	case DialectService:
		return "service"
	}
	return ""
}

// DialectForRoot maps a root tag back to its dialect.
func DialectForRoot(tag string) (Dialect, bool) {
	switch tag {
	case "entities":
		return DialectEntity, true
	case "services":
		return DialectService, true
	}
	return "", false
}

// SniffSize is how much of a file DetectDialect needs to see.
const SniffSize = 1000

// DetectDialect reports the dialect whose root tag (<entities or <services)
// appears in the leading bytes of a document.
func DetectDialect(head []byte) (Dialect, bool) {
	s := sniffWindow(head)
	switch {
	case hasTag(s, "entities"):
		return DialectEntity, true
	case hasTag(s, "services"):
		return DialectService, true
	}
	return "", false
}

// SniffDialect classifies a document for a scan of the requested dialect.
// With DialectAuto only a root tag counts, so data files such as
// <entity-facade-xml> are left alone. An explicit dialect also accepts a bare
// <entity or <service child tag, as long as no other dialect's root is present.
func SniffDialect(head []byte, requested Dialect) (Dialect, bool) {
	if d, ok := DetectDialect(head); ok {
		if requested == DialectAuto || requested == "" || requested == d {
			return d, true
		}
		return "", false
	}
	if requested == DialectAuto || requested == "" {
		return "", false
	}
	if hasTag(sniffWindow(head), requested.ChildTag()) {
		return requested, true
	}
	return "", false
}

func sniffWindow(head []byte) string {
	if len(head) > SniffSize {
		head = head[:SniffSize]
	}
	return string(head)
}

// hasTag reports whether s contains an opening tag named exactly tag.
func hasTag(s, tag string) bool {
	open := "<" + tag
	for i := strings.Index(s, open); i != -1; {
		end := i + len(open)
		if end == len(s) {
			return true
		}
		switch s[end] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return true
		}
		next := strings.Index(s[end:], open)
		if next == -1 {
			return false
		}
		i = end + next
	}
	return false
}

// Finding is one reported fact about a definition file.
type Finding struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	if f.Subject == "" {
		return f.Message
	}
	return f.Subject + ": " + f.Message
}

// ValidationResult holds the findings of one document, in discovery order.
type ValidationResult struct {
	Issues      []Finding `json:"issues"`
	Suggestions []Finding `json:"suggestions"`
}

// Add files f under the bucket matching its severity.
func (r *ValidationResult) Add(f Finding) {
	if f.Severity == SeverityIssue {
		r.Issues = append(r.Issues, f)
		return
	}
	r.Suggestions = append(r.Suggestions, f)
}

// Passed reports whether the document has no issues. Suggestions never fail.
func (r ValidationResult) Passed() bool { return len(r.Issues) == 0 }

// Empty reports whether there is nothing to show at all.
func (r ValidationResult) Empty() bool {
	return len(r.Issues) == 0 && len(r.Suggestions) == 0
}

// Without returns a copy of r lacking findings produced by the given rules.
func (r ValidationResult) Without(skip []string) ValidationResult {
	if len(skip) == 0 {
		return r
	}
	drop := make(map[string]bool, len(skip))
	for _, id := range skip {
		drop[id] = true
	}
	var out ValidationResult
	for _, f := range r.Issues {
		if !drop[f.Rule] {
			out.Issues = append(out.Issues, f)
		}
	}
	for _, f := range r.Suggestions {
		if !drop[f.Rule] {
			out.Suggestions = append(out.Suggestions, f)
		}
	}
	return out
}

// FileReport is the outcome for a single file.
type FileReport struct {
	Path       string           `json:"path"`
	Dialect    Dialect          `json:"dialect"`
	Result     ValidationResult `json:"result"`
	ParseError string           `json:"parse_error,omitempty"`
	Cached     bool             `json:"cached,omitempty"`
}

// Passed is false when the file could not be parsed or has any issue.
func (r FileReport) Passed() bool {
	return r.ParseError == "" && r.Result.Passed()
}

// Totals summarises a batch.
type Totals struct {
	Files       int `json:"files"`
	Failed      int `json:"failed"`
	ParseErrors int `json:"parse_errors"`
	Issues      int `json:"issues"`
	Suggestions int `json:"suggestions"`
}

// BatchReport is the reduction of many file reports.
type BatchReport struct {
	Files      []FileReport       `json:"files"`
	Dialect    Dialect            `json:"dialect,omitempty"`
	Passed     bool               `json:"passed"`
	Totals     Totals             `json:"totals"`
	Components []ComponentSummary `json:"components,omitempty"`
	CommitHash string             `json:"commit_hash,omitempty"`
}

// NewBatchReport reduces file reports to an overall verdict: the batch passes
// iff it is non-empty and every file parsed and produced zero issues.
// File order is preserved.
func NewBatchReport(files []FileReport) *BatchReport {
	report := &BatchReport{Files: files, Passed: len(files) > 0}
	for _, f := range files {
		report.Totals.Files++
		report.Totals.Issues += len(f.Result.Issues)
		report.Totals.Suggestions += len(f.Result.Suggestions)
		if f.ParseError != "" {
			report.Totals.ParseErrors++
		}
		if !f.Passed() {
			report.Totals.Failed++
			report.Passed = false
		}
	}
	return report
}
