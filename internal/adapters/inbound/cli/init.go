package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/config"
	"github.com/abdidvp/moqlint/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		dialectFlag string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .moqlint.yaml configuration file",
		Long:  "Create a .moqlint.yaml with the default settings and every option documented.",
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

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			dialect, err := domain.ParseDialect(dialectFlag)
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(dialect)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "auto", "Default dialect (auto, entity, service)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .moqlint.yaml")

	return cmd
}

func generateConfig(d domain.Dialect) string {
	var b strings.Builder
	b.WriteString("# moqlint configuration\n\n")
	fmt.Fprintf(&b, "dialect: %s\n\n", d)
	b.WriteString(`# Directory names the scanner never enters.
exclude_paths: []

# Files to skip, as doublestar globs relative to the project root.
exclude_globs: []

# Rule IDs to disable. List them with: moqlint rules
skip_rules: []

# Parallel file evaluations; 0 uses every CPU.
workers: 0

respect_gitignore: true
`)
	return b.String()
}
