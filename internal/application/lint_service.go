package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
)

// LintService orchestrates the lint pipeline:
// load config → discover candidates → parse + evaluate in parallel → reduce.
type LintService struct {
	scanner      domain.DefinitionScanner
	parser       domain.DocumentParser
	configLoader domain.ConfigLoader

	store      domain.ResultStore
	version    string
	components domain.ComponentDetector
	log        *zap.Logger
}

func NewLintService(
	scanner domain.DefinitionScanner,
	parser domain.DocumentParser,
	configLoader domain.ConfigLoader,
) *LintService {
	return &LintService{
		scanner:      scanner,
		parser:       parser,
		configLoader: configLoader,
		log:          zap.NewNop(),
	}
}

// WithLogger sets the logger used for progress and skipped files.
func (s *LintService) WithLogger(log *zap.Logger) *LintService {
	if log != nil {
		s.log = log
	}
	return s
}

// WithCache enables result reuse for files whose content, configuration and
// tool version are unchanged since the last run.
func (s *LintService) WithCache(store domain.ResultStore, version string) *LintService {
	s.store = store
	s.version = version
	return s
}

// WithComponents breaks batch totals down per Moqui component.
func (s *LintService) WithComponents(detector domain.ComponentDetector) *LintService {
	s.components = detector
	return s
}

// LintDirectory lints every definition file of the dialect under dir, using
// dir as the project root.
func (s *LintService) LintDirectory(ctx context.Context, dir string, dialect domain.Dialect) (*domain.BatchReport, error) {
	return s.LintPaths(ctx, dir, []string{dir}, dialect)
}

// LintFile lints a single file. The file is evaluated even if it does not
// look like a definition document; a wrong root is reported as an issue.
func (s *LintService) LintFile(ctx context.Context, projectPath, path string, dialect domain.Dialect) (domain.FileReport, error) {
	report, err := s.LintPaths(ctx, projectPath, []string{path}, dialect)
	if err != nil {
		return domain.FileReport{}, err
	}
	if len(report.Files) == 0 {
		return domain.FileReport{}, domain.ErrNoDefinitions
	}
	return report.Files[0], nil
}

// LintPaths lints files and directories. Explicit files are always linted;
// directories are scanned for candidates. Reports keep the order in which
// paths were given, with each directory's files sorted by path.
func (s *LintService) LintPaths(ctx context.Context, projectPath string, paths []string, dialect domain.Dialect) (*domain.BatchReport, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dialect == "" {
		dialect = cfg.Dialect
	}

	candidates, err := s.collect(paths, dialect, cfg)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.log.Info("no definition files found", zap.Strings("paths", paths))
		batch := domain.NewBatchReport(nil)
		batch.Dialect = dialect
		return batch, nil
	}

	cache := s.loadCache(projectPath, cfg)
	reports := make([]domain.FileReport, len(candidates))
	hashes := make([]string, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(cfg))
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i], hashes[i] = s.lintOne(c, cfg, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.saveCache(cache, candidates, reports, hashes)

	batch := domain.NewBatchReport(reports)
	batch.Dialect = dialect
	s.summarizeComponents(projectPath, batch)
	s.log.Debug("lint complete",
		zap.Int("files", batch.Totals.Files),
		zap.Int("issues", batch.Totals.Issues),
		zap.Int("suggestions", batch.Totals.Suggestions),
		zap.Bool("passed", batch.Passed),
	)
	return batch, nil
}

func (s *LintService) summarizeComponents(projectPath string, batch *domain.BatchReport) {
	if s.components == nil {
		return
	}
	paths := make([]string, len(batch.Files))
	for i, f := range batch.Files {
		paths[i] = f.Path
	}
	components, err := s.components.Detect(projectPath, paths)
	if err != nil {
		s.log.Warn("component detection failed", zap.Error(err))
		return
	}
	batch.Components = domain.SummarizeComponents(components, batch.Files)
}

func (s *LintService) collect(paths []string, dialect domain.Dialect, cfg domain.ProjectConfig) ([]domain.Candidate, error) {
	var out []domain.Candidate
	seen := make(map[string]bool)

	add := func(c domain.Candidate) {
		if !seen[c.Path] {
			seen[c.Path] = true
			out = append(out, c)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("path not found: %s", p)
			}
			return nil, err
		}

		if !info.IsDir() {
			add(domain.Candidate{Path: abs, Dialect: dialect})
			continue
		}

		scan, err := s.scanner.Scan(abs, dialect, cfg)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		for _, c := range scan.Files {
			add(c)
		}
	}
	return out, nil
}

// lintOne never fails: read and parse problems are recorded on the report.
func (s *LintService) lintOne(c domain.Candidate, cfg domain.ProjectConfig, cache *domain.ResultCache) (domain.FileReport, string) {
	report := domain.FileReport{Path: c.Path, Dialect: c.Dialect}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		s.log.Warn("cannot read file", zap.String("path", c.Path), zap.Error(err))
		report.ParseError = fmt.Sprintf("reading file: %v", err)
		return report, ""
	}

	hash := contentHash(data)
	if result, ok := cache.Lookup(c.Path, hash, c.Dialect); ok {
		s.log.Debug("cache hit", zap.String("path", c.Path))
		report.Result = result
		report.Cached = true
		if report.Dialect == domain.DialectAuto {
			if d, ok := domain.DetectDialect(data); ok {
				report.Dialect = d
			}
		}
		return report, hash
	}

	root, err := s.parser.Parse(c.Path, data)
	if err != nil {
		s.log.Debug("parse failed", zap.String("path", c.Path), zap.Error(err))
		report.ParseError = describe(err)
		if report.Dialect == domain.DialectAuto {
			if d, ok := domain.DetectDialect(data); ok {
				report.Dialect = d
			}
		}
		return report, ""
	}

	if report.Dialect == domain.DialectAuto {
		if d, ok := domain.DialectForRoot(root.Tag); ok {
			report.Dialect = d
		}
	}
	report.Result = rules.Evaluate(root, c.Dialect).Without(cfg.SkipRules)
	return report, hash
}

func describe(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return d.Detail()
	}
	return err.Error()
}

func (s *LintService) loadCache(projectPath string, cfg domain.ProjectConfig) *domain.ResultCache {
	if s.store == nil {
		return nil
	}
	cfgHash := configHash(cfg)

	cache, err := s.store.Load(projectPath)
	if err != nil {
		s.log.Warn("ignoring unreadable result cache", zap.Error(err))
		cache = nil
	}
	if cache == nil || cache.IsInvalidated(cfgHash, s.version) {
		cache = &domain.ResultCache{ConfigHash: cfgHash, Version: s.version}
	}
	cache.ProjectPath = projectPath
	return cache
}

func (s *LintService) saveCache(cache *domain.ResultCache, candidates []domain.Candidate, reports []domain.FileReport, hashes []string) {
	if cache == nil {
		return
	}
	for i, r := range reports {
		if hashes[i] == "" || r.Cached {
			continue
		}
		cache.Put(r.Path, hashes[i], candidates[i].Dialect, r.Result)
	}
	if err := s.store.Save(cache); err != nil {
		s.log.Warn("failed to save result cache", zap.Error(err))
	}
}

func workerCount(cfg domain.ProjectConfig) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// configHash covers every setting that can change a file's findings.
func configHash(cfg domain.ProjectConfig) string {
	data, _ := json.Marshal(struct {
		Dialect   domain.Dialect `json:"dialect"`
		SkipRules []string       `json:"skip_rules"`
	}{cfg.Dialect, cfg.SkipRules})
	return contentHash(data)
}
