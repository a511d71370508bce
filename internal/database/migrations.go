package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the database schema if needed. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	ts := timestampType(driver)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL CHECK (length(title) BETWEEN 1 AND 255),
			description TEXT,
			status TEXT NOT NULL DEFAULT 'CREATED'
				CHECK (status IN ('CREATED', 'IN_PROGRESS', 'DONE')),
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
		// List orders by creation time
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at, id)`,
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to run migration: %w", err)
			}
		}
		return nil
	})
}
