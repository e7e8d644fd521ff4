package main

import (
	"fmt"
	"os"

	"github.com/ritzau/graf-editor/pkg/config"
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "graf-editor",
		Short:         "Interactive directed graph editor",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("verbosity", "", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	root.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	root.AddCommand(serveCmd(), replayCmd())
	return root
}

// loadConfig reads configuration for cmd and sets up logging from it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.Configure(logging.Options{
		Level: logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt),
		JSON:  cfg.LogJSON,
	})
	return cfg, nil
}
