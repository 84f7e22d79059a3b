package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/justyntemme/vst3info/pkg/inspect"
	"github.com/justyntemme/vst3info/pkg/quiet"
	"github.com/justyntemme/vst3info/pkg/report"
)

// NewInspectCmd creates the inspect subcommand.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plugin.vst3 | binary>",
		Short: "Print the report of one plugin",
		Long: `Load one plugin, run it through initialization, controller discovery and
activation, and print its report on stdout. A fatal error prints a JSON
object with "error" and "code" on stderr and exits with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	var guard *quiet.Guard
	if cfg.QuietPluginOutput {
		guard, err = quiet.Silence()
		if err != nil {
			newLogger(cfg, logOut).Warn("plugin output not suppressed", "error", err)
		} else {
			logOut = guard
		}
	}
	logger := newLogger(cfg, logOut)

	rep, err := inspect.New(inspect.WithLogger(logger)).Inspect(cmd.Context(), args[0])
	if rerr := guard.Restore(); rerr != nil {
		logger.Warn("restoring stdout and stderr failed", "error", rerr)
	}
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), rep, cfg.Output.Format, cfg.Output.Pretty)
}
