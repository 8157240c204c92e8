package domain

import "sort"

// Component groups the definition files of one Moqui component.
type Component struct {
	Name  string   `json:"name"`
	Path  string   `json:"path"`
	Kinds []string `json:"kinds,omitempty"`
	Files []string `json:"files"`
}

// ComponentDetector assigns files to the components that own them.
type ComponentDetector interface {
	Detect(root string, files []string) ([]Component, error)
}

// ComponentSummary is the per-component slice of a batch.
type ComponentSummary struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Kinds  []string `json:"kinds,omitempty"`
	Passed bool     `json:"passed"`
	Totals Totals   `json:"totals"`
}

// SummarizeComponents folds file reports into their components. Files that
// no component claims are left out. The result is sorted by name.
func SummarizeComponents(components []Component, files []FileReport) []ComponentSummary {
	byPath := make(map[string]FileReport, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}

	out := make([]ComponentSummary, 0, len(components))
	for _, c := range components {
		var reports []FileReport
		for _, p := range c.Files {
			if r, ok := byPath[p]; ok {
				reports = append(reports, r)
			}
		}
		if len(reports) == 0 {
			continue
		}
		sub := NewBatchReport(reports)
		out = append(out, ComponentSummary{
			Name:   c.Name,
			Path:   c.Path,
			Kinds:  c.Kinds,
			Passed: sub.Passed,
			Totals: sub.Totals,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
