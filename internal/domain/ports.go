package domain

import "github.com/abdidvp/moqlint/internal/domain/xmltree"

// DefinitionScanner finds candidate definition files under a directory.
type DefinitionScanner interface {
	Scan(root string, dialect Dialect, cfg ProjectConfig) (*ScanResult, error)
}

// ScanResult holds the files a scan selected, sorted by path.
type ScanResult struct {
	RootPath string      `json:"root_path"`
	Files    []Candidate `json:"files"`
	Skipped  int         `json:"skipped"`
}

// Candidate is a file the scanner believes belongs to a dialect.
type Candidate struct {
	Path    string  `json:"path"`
	Dialect Dialect `json:"dialect"`
}

// DocumentParser turns file contents into a tree.
type DocumentParser interface {
	Parse(path string, data []byte) (*xmltree.Node, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ResultStore persists per-file results between runs.
type ResultStore interface {
	Load(projectPath string) (*ResultCache, error)
	Save(cache *ResultCache) error
}

// RunHistory records lint runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo answers questions about the enclosing git repository.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}
