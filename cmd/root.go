package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidlike/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vidlike",
	Short: "Video catalogue with likes",
	Long: `vidlike stores videos and tracks which users like them.
It serves an HTTP API and offers CLI access to the same operations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init must work before a config file exists
		level := os.Getenv("LOG_LEVEL")
		if cfg, err := config.NewConfig(); err == nil {
			level = cfg.LogLevel
		}

		logger, err := config.NewLogger(os.Stderr, level)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
