package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/moqlint/internal/domain"
)

const historyFile = ".moqlint/history/runs.json"

// FileHistory implements domain.RunHistory as a JSON array of runs, oldest
// first, holding at most limit entries.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return NewWithLimit(domain.MaxRuns)
}

// NewWithLimit keeps at most limit runs. A non-positive limit keeps all.
func NewWithLimit(limit int) *FileHistory {
	return &FileHistory{limit: limit}
}

// Save appends entry and drops the oldest runs beyond the limit. The file is
// replaced through a rename so a failed write leaves the previous history.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}
	entries = domain.KeepLatest(append(entries, entry), h.limit)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(fp), "runs-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fp)
}

// Load returns recorded runs, oldest first.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, historyFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
