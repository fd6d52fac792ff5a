// Command episim generates scale-free contact networks and simulates SI
// outbreaks on them, either from the command line or behind an HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/episim/internal/config"
	"github.com/katalvlaran/episim/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "episim",
		Short: "Scale-free network epidemic simulator",
		Long: `episim builds Barabási–Albert contact networks and spreads an SI
infection over them step by step.

Use "run" for a one-shot simulation, "generate" to inspect a network,
and "serve" to expose interactive sessions over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newRunCmd(),
		newGenerateCmd(),
	)

	return rootCmd
}

// commandLogger builds a logger from cfg, honouring --log-level.
func commandLogger(cmd *cobra.Command, cfg config.LoggingConfig) (*zap.Logger, error) {
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Level = lvl
	}

	return logging.New(cfg)
}
