package scanner

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/abdidvp/moqlint/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	".moqlint":     true,
	"node_modules": true,
	"build":        true,
	"vendor":       true,
}

// FileScanner implements domain.DefinitionScanner by walking the filesystem.
type FileScanner struct {
	log *zap.Logger
}

func New(log *zap.Logger) *FileScanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileScanner{log: log}
}

// walk holds the state of one Scan.
type walk struct {
	log       *zap.Logger
	root      string
	dialect   domain.Dialect
	globs     []string
	extraSkip map[string]bool
	ignore    *gitignore.GitIgnore
	result    *domain.ScanResult
}

// Scan returns every *.xml file under root whose leading bytes look like a
// document of the requested dialect. With domain.DialectAuto any entity or
// service document qualifies and is tagged with its sniffed dialect.
// Unreadable files and directories below root are logged and skipped.
func (s *FileScanner) Scan(root string, dialect domain.Dialect, cfg domain.ProjectConfig) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	w := &walk{
		log:       s.log,
		root:      absPath,
		dialect:   dialect,
		globs:     cfg.ExcludeGlobs,
		extraSkip: make(map[string]bool, len(cfg.ExcludePaths)),
		result:    &domain.ScanResult{RootPath: absPath},
	}
	for _, p := range cfg.ExcludePaths {
		w.extraSkip[strings.TrimSuffix(p, "/")] = true
	}
	if cfg.GitignoreEnabled() {
		w.ignore = loadGitignore(absPath)
	}

	if err := filepath.WalkDir(absPath, w.visit); err != nil {
		return nil, err
	}

	result := w.result
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	s.log.Debug("scan complete",
		zap.String("root", absPath),
		zap.Int("candidates", len(result.Files)),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (w *walk) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == w.root {
			return err
		}
		w.log.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
		w.result.Skipped++
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	relPath, _ := filepath.Rel(w.root, path)
	slashPath := filepath.ToSlash(relPath)

	if d.IsDir() {
		if path == w.root {
			return nil
		}
		if skipDirs[d.Name()] || w.extraSkip[d.Name()] || w.extraSkip[slashPath] {
			return filepath.SkipDir
		}
		if w.ignore != nil && w.ignore.MatchesPath(slashPath+"/") {
			return filepath.SkipDir
		}
		return nil
	}

	if !strings.EqualFold(filepath.Ext(d.Name()), ".xml") {
		return nil
	}
	if excluded(slashPath, w.globs) || (w.ignore != nil && w.ignore.MatchesPath(slashPath)) {
		w.result.Skipped++
		return nil
	}

	head, err := readHead(path)
	if err != nil {
		w.log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		w.result.Skipped++
		return nil
	}
	sniffed, ok := domain.SniffDialect(head, w.dialect)
	if !ok {
		w.log.Debug("skipping non-definition file", zap.String("path", path))
		w.result.Skipped++
		return nil
	}

	w.result.Files = append(w.result.Files, domain.Candidate{Path: path, Dialect: sniffed})
	return nil
}

// Sniff reports whether a single file looks like a definition document for
// a scan of dialect, and which dialect it is.
func Sniff(path string, dialect domain.Dialect) (domain.Dialect, bool) {
	head, err := readHead(path)
	if err != nil {
		return "", false
	}
	return domain.SniffDialect(head, dialect)
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, domain.SniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func excluded(slashPath string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, slashPath); ok {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *gitignore.GitIgnore {
	ig, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ig
}
