package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktrack/internal/config"
	"github.com/thenoetrevino/tasktrack/internal/database"
	"github.com/thenoetrevino/tasktrack/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tasktrack",
	Short: "Tasktrack - a task tracking HTTP service",
	Long: `Tasktrack stores tasks in SQLite or PostgreSQL and serves them
over a JSON HTTP API under /api/v1/tasks.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasktrack/config.yaml)")
	rootCmd.PersistentFlags().String("db-driver", "", "database driver: sqlite or pgx")
	rootCmd.PersistentFlags().String("db-dsn", "", "database DSN (file path for sqlite, URL for pgx)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json, console")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves configuration with flags taking precedence over file and environment
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *string
	}{
		{"addr", &cfg.Server.Addr},
		{"db-driver", &cfg.Database.Driver},
		{"db-dsn", &cfg.Database.DSN},
		{"log-level", &cfg.Log.Level},
		{"log-format", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if flags.Lookup(o.name) == nil || !flags.Changed(o.name) {
			continue
		}
		v, err := flags.GetString(o.name)
		if err != nil {
			return nil, err
		}
		*o.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads config, installs the logger and opens the store.
// The returned cleanup closes the store and the log file.
func setup(ctx context.Context, cmd *cobra.Command) (*config.Config, *sql.DB, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	closeLog, err := logging.Init(cfg.LoggingOptions())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	db, err := database.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
		_ = closeLog()
	}
	return cfg, db, cleanup, nil
}
