package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/watcher"
	"github.com/abdidvp/moqlint/internal/domain"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		dialectFlag string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-lint definition files as they change",
		Long:  "Lint a directory once, then re-lint each definition file that is created or saved until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			dialect, err := dialectOption(dialectFlag)
			if err != nil {
				return err
			}

			log := opts.logger(cmd.ErrOrStderr())
			defer func() { _ = log.Sync() }()
			svc := newLintService(log, true)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			report, err := svc.LintDirectory(ctx, absDir, dialect)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}
			fmt.Fprint(out, tui.RenderBatchSummary(report))

			w := watcher.New(absDir, debounce, log)
			return w.Run(ctx, func(paths []string) {
				changed := definitionsOnly(paths, dialect)
				if len(changed) == 0 {
					return
				}
				report, err := svc.LintPaths(ctx, absDir, changed, dialect)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Warn("re-lint failed", zap.Error(err))
					}
					return
				}
				fmt.Fprint(out, tui.RenderBatch(report))
			})
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "Dialect: auto, entity or service (default from .moqlint.yaml)")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Wait this long for more changes before re-linting")

	return cmd
}

// definitionsOnly drops changed files that do not look like definitions of
// the dialect, such as screens, forms or entity-facade-xml data files.
func definitionsOnly(paths []string, dialect domain.Dialect) []string {
	var out []string
	for _, p := range paths {
		if _, ok := scanner.Sniff(p, dialect); ok {
			out = append(out, p)
		}
	}
	return out
}
