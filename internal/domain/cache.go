package domain

// ResultCache maps file paths to the result computed for a given content hash.
type ResultCache struct {
	ProjectPath string                 `json:"project_path"`
	ConfigHash  string                 `json:"config_hash"`
	Version     string                 `json:"version"`
	Entries     map[string]CachedEntry `json:"entries"`
}

type CachedEntry struct {
	ContentHash string           `json:"content_hash"`
	Dialect     Dialect          `json:"dialect"`
	Result      ValidationResult `json:"result"`
}

// IsInvalidated reports whether the whole cache is stale.
func (c *ResultCache) IsInvalidated(configHash, version string) bool {
	return c.ConfigHash != configHash || c.Version != version
}

// Lookup returns the cached result for path if its content hash still matches.
func (c *ResultCache) Lookup(path, contentHash string, dialect Dialect) (ValidationResult, bool) {
	if c == nil || c.Entries == nil {
		return ValidationResult{}, false
	}
	e, ok := c.Entries[path]
	if !ok || e.ContentHash != contentHash || e.Dialect != dialect {
		return ValidationResult{}, false
	}
	return e.Result, true
}

// Put records the result for path.
func (c *ResultCache) Put(path, contentHash string, dialect Dialect, result ValidationResult) {
	if c.Entries == nil {
		c.Entries = make(map[string]CachedEntry)
	}
	c.Entries[path] = CachedEntry{ContentHash: contentHash, Dialect: dialect, Result: result}
}
