package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/history"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		dialect    string
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded lint runs",
		Long: "Show the runs recorded with `moqlint lint --record`, oldest first.\n" +
			"Only the latest runs are kept.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			entries, err := history.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if cmd.Flags().Changed("dialect") {
				d, err := domain.ParseDialect(dialect)
				if err != nil {
					return err
				}
				entries = domain.RunsOf(entries, d)
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().StringVar(&dialect, "dialect", "", "Only show runs of this dialect ("+strings.Join(domain.DialectNames(), ", ")+")")

	return cmd
}
