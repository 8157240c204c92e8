package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrLintFailed is returned after a report has been printed whose verdict is
// failure. Callers exit non-zero without printing it again.
var ErrLintFailed = errors.New("lint failed")

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "moqlint",
		Short: "Lint Moqui entity and service definitions",
		Long: "moqlint checks Moqui-style XML entity and service definition files against a fixed rule catalog " +
			"and reports structural issues and convention suggestions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDialectCmd(opts, dialectEntity))
	cmd.AddCommand(newDialectCmd(opts, dialectService))
	cmd.AddCommand(newLintCmd(opts))
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// logger writes human-readable logs to w: debug level with --verbose,
// warnings and errors otherwise.
func (o *rootOptions) logger(w io.Writer) *zap.Logger {
	level := zap.WarnLevel
	if o.verbose {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
