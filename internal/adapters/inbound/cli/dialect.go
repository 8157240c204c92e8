package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/domain"
)

type dialectCommand struct {
	dialect domain.Dialect
	use     string
	short   string
}

var (
	dialectEntity = dialectCommand{
		dialect: domain.DialectEntity,
		use:     "entity [file]",
		short:   "Validate a Moqui entity definition file or directory",
	}
	dialectService = dialectCommand{
		dialect: domain.DialectService,
		use:     "service [file]",
		short:   "Validate a Moqui service definition file or directory",
	}
)

func newDialectCmd(opts *rootOptions, dc dialectCommand) *cobra.Command {
	var (
		directory  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   dc.use,
		Short: dc.short,
		Long: fmt.Sprintf("Validate one %[1]s definition file, or with --directory every *.xml file in a "+
			"directory tree that looks like a %[1]s definition. Exits 1 on any issue.", dc.dialect),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if directory == "" && len(args) == 0 {
				return fmt.Errorf("a file path or --directory is required")
			}
			if directory != "" && len(args) > 0 {
				return fmt.Errorf("give either a file path or --directory, not both")
			}

			log := opts.logger(cmd.ErrOrStderr())
			defer func() { _ = log.Sync() }()
			svc := newLintService(log, false)

			if directory != "" {
				if info, err := os.Stat(directory); err != nil || !info.IsDir() {
					return fmt.Errorf("directory not found: %s", directory)
				}
				report, err := svc.LintPaths(cmd.Context(), ".", []string{directory}, dc.dialect)
				if err != nil {
					return fmt.Errorf("lint failed: %w", err)
				}
				if report.Totals.Files == 0 && !jsonOutput {
					return fmt.Errorf("no %s XML files found in %s: %w", dc.dialect, directory, domain.ErrNoDefinitions)
				}
				if !jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "Found %d %s files in %s\n", report.Totals.Files, dc.dialect, filepath.Clean(directory))
				}
				return renderBatch(cmd, report, jsonOutput)
			}

			file := args[0]
			if info, err := os.Stat(file); err != nil || info.IsDir() {
				return fmt.Errorf("file not found: %s", file)
			}
			report, err := svc.LintFile(cmd.Context(), ".", file, dc.dialect)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}

			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFileReport(report))
			}
			if !report.Passed() {
				return ErrLintFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Validate every matching file under this directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
