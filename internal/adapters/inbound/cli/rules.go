package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var (
		dialectFlag string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalog",
		Long:  "List every rule with its severity. Rule IDs can be disabled with skip_rules in .moqlint.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := domain.ParseDialect(dialectFlag)
			if err != nil {
				return err
			}
			infos := rules.Infos(dialect)

			if jsonOutput {
				return writeJSON(cmd, infos)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(infos))
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "auto", "Dialect: auto (both), entity or service")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}
