package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/moqlint/internal/domain"
)

// Store is a file-based implementation of domain.ResultStore.
type Store struct{}

// New creates a new file-based result store.
func New() *Store {
	return &Store{}
}

// Load reads the result cache of a project. Returns (nil, nil) if none exists.
func (s *Store) Load(projectPath string) (*domain.ResultCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var rc domain.ResultCache
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Save writes the result cache, creating directories as needed.
func (s *Store) Save(rc *domain.ResultCache) error {
	if err := os.MkdirAll(cacheDir(rc.ProjectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(rc.ProjectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".moqlint", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "results.json")
}
