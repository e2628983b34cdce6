package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/flashkata/internal/config"
	"github.com/vytor/flashkata/internal/logger"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "flashkata",
	Short:         "Flashcard study tracker",
	Long:          "flashkata records review sessions and reports daily study statistics per deck.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			cfg.DBPath = p
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(true),
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(summaryCmd)
}
