package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/flashkata/internal/db"
	"github.com/vytor/flashkata/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		database, err := db.Connect(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		ctx := logger.NewContext(cmd.Context(), logger.Default())
		pending, err := db.Pending(ctx, database.DB)
		if err != nil {
			return fmt.Errorf("list pending migrations: %w", err)
		}
		if len(pending) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		}
		for _, name := range pending {
			fmt.Fprintln(cmd.OutOrStdout(), "pending:", name)
		}
		if dryRun {
			return nil
		}
		if err := db.Migrate(ctx, database.DB); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(pending))
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "List pending migrations without applying them")
}
