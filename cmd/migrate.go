package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktrack/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, db, cleanup, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}

		slog.Info("migrations applied", "driver", cfg.Database.Driver)
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}
