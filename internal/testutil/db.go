package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/thenoetrevino/tasktrack/internal/database"
)

// SetupTestDB creates an in-memory database with full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// SetupTestRepo returns a task repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) *database.TaskRepo {
	t.Helper()
	return database.NewTaskRepo(SetupTestDB(t), database.DriverSQLite)
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
