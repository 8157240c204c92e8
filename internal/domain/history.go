package domain

// MaxRuns bounds how many runs a project's history keeps.
const MaxRuns = 100

// RunEntry is one recorded lint run.
type RunEntry struct {
	Timestamp   string  `json:"timestamp"`
	CommitHash  string  `json:"commit_hash,omitempty"`
	Dialect     Dialect `json:"dialect,omitempty"`
	Files       int     `json:"files"`
	Issues      int     `json:"issues"`
	Suggestions int     `json:"suggestions"`
	Passed      bool    `json:"passed"`
}

// NewRunEntry summarises a batch for the history file.
func NewRunEntry(report *BatchReport, timestamp string) RunEntry {
	return RunEntry{
		Timestamp:   timestamp,
		CommitHash:  report.CommitHash,
		Dialect:     report.Dialect,
		Files:       report.Totals.Files,
		Issues:      report.Totals.Issues,
		Suggestions: report.Totals.Suggestions,
		Passed:      report.Passed,
	}
}

// KeepLatest drops the oldest entries so at most max remain.
// A non-positive max keeps everything.
func KeepLatest(entries []RunEntry, max int) []RunEntry {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	return entries[len(entries)-max:]
}

// RunsOf returns the entries recorded under dialect, in order.
// Entries written before dialects were recorded count as auto.
func RunsOf(entries []RunEntry, dialect Dialect) []RunEntry {
	var out []RunEntry
	for _, e := range entries {
		d := e.Dialect
		if d == "" {
			d = DialectAuto
		}
		if d == dialect {
			out = append(out, e)
		}
	}
	return out
}
