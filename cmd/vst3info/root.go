package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/justyntemme/vst3info/pkg/config"
	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the vst3info CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vst3info",
		Short: "Describe VST3 plugins without opening them in a DAW",
		Long: `vst3info loads a VST3 plugin binary, walks it through the host side of
the component lifecycle, and prints what the plugin reports about itself:
classes, buses and parameters.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// loadConfig merges the config file with the flags of cmd and its parents.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return debug.Setup(cfg.Log.Format, cfg.LogLevel(), w)
}

// errorBody is what a failed command prints on stderr.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w io.Writer, err error) {
	body := errorBody{Error: err.Error(), Code: vst3.CodeOf(err)}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		_, _ = io.WriteString(w, err.Error()+"\n")
	}
}
