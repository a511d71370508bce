package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktrack/internal/app"
	"github.com/thenoetrevino/tasktrack/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Applies pending migrations, then serves the task API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Set up signal handling for graceful shutdown
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		cfg, db, cleanup, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		application := app.New(db, cfg.Database.Driver, app.WithLogger(logging.Logger))
		if err := application.Migrate(ctx); err != nil {
			return err
		}

		logging.Logger.Info("tasktrack starting", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver, "pid", os.Getpid())
		return application.ListenAndServe(ctx, cfg.Server)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
}
