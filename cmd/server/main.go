package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string

	// Create root command
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Real estate price estimator",
		Long:          `Cleans a property listings dataset, serves price estimates from a trained model and keeps a history of predictions`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(createServeCmd(&configPath))
	rootCmd.AddCommand(createCleanCmd(&configPath))
	rootCmd.AddCommand(createStatsCmd(&configPath))
	rootCmd.AddCommand(createImportCmd(&configPath))
	rootCmd.AddCommand(createPruneCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
