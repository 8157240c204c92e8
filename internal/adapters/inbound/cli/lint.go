package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/config"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/detector"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/history"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/parser"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/application"
	"github.com/abdidvp/moqlint/internal/domain"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	var (
		projectPath string
		dialectFlag string
		jsonOutput  bool
		changed     bool
		record      bool
		useCache    bool
	)

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint definition files and directories",
		Long: "Lint entity and service definition files. Directories are scanned for *.xml files whose " +
			"root element matches the dialect. Exits 1 when any file has an issue or cannot be parsed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			dialect, err := dialectOption(dialectFlag)
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{absProject}
			}

			log := opts.logger(cmd.ErrOrStderr())
			defer func() { _ = log.Sync() }()

			gi := gitinfo.New()
			if changed {
				paths, err = changedDefinitions(gi, absProject, paths, dialect)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No changed definition files.")
					return nil
				}
			}

			svc := newLintService(log, useCache)
			report, err := svc.LintPaths(cmd.Context(), absProject, paths, dialect)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}

			if hash, err := gi.CommitHash(absProject); err == nil {
				report.CommitHash = hash
			}

			if record {
				entry := domain.NewRunEntry(report, time.Now().Format(time.RFC3339))
				if err := history.New().Save(absProject, entry); err != nil {
					log.Warn("failed to record run", zap.Error(err))
				}
			}

			return renderBatch(cmd, report, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root holding .moqlint.yaml")
	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "Dialect: auto, entity or service (default from .moqlint.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only lint XML files changed in the git worktree")
	cmd.Flags().BoolVar(&record, "record", false, "Append a summary of this run to the history")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for unchanged files")

	return cmd
}

func newLintService(log *zap.Logger, useCache bool) *application.LintService {
	svc := application.NewLintService(scanner.New(log), parser.New(), config.New()).
		WithLogger(log).
		WithComponents(detector.New())
	if useCache {
		svc.WithCache(cache.New(), version)
	}
	return svc
}

// dialectOption keeps "" so the configured dialect applies.
func dialectOption(flag string) (domain.Dialect, error) {
	if strings.TrimSpace(flag) == "" {
		return "", nil
	}
	return domain.ParseDialect(flag)
}

// changedDefinitions narrows the git worktree changes to definition files of
// the dialect lying under one of paths.
func changedDefinitions(gi domain.GitInfo, projectPath string, paths []string, dialect domain.Dialect) ([]string, error) {
	if !gi.IsGitRepo(projectPath) {
		return nil, fmt.Errorf("--changed needs a git repository: %s", projectPath)
	}
	files, err := gi.ChangedFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	var roots []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		roots = append(roots, resolveSymlinks(abs))
	}

	var out []string
	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f), ".xml") || !under(resolveSymlinks(f), roots) {
			continue
		}
		out = append(out, f)
	}
	return definitionsOnly(out, dialect), nil
}

func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func under(path string, roots []string) bool {
	for _, r := range roots {
		if path == r || strings.HasPrefix(path, r+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// renderBatch prints the report and turns its verdict into the command's
// result.
func renderBatch(cmd *cobra.Command, report *domain.BatchReport, jsonOutput bool) error {
	if jsonOutput {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else if report.Totals.Files > 0 {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(report))
	}
	return verdict(report)
}

func verdict(report *domain.BatchReport) error {
	switch {
	case report.Totals.Files == 0:
		return domain.ErrNoDefinitions
	case !report.Passed:
		return ErrLintFailed
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
