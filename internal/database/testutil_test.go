package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tasktrack/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB opens an isolated in-memory database and runs migrations.
// This is the unified test database setup used by all tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(context.Background(), db, DriverSQLite); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// setupTestRepo returns a task repository over a fresh in-memory database
func setupTestRepo(t *testing.T) *TaskRepo {
	t.Helper()
	return NewTaskRepo(setupTestDB(t), DriverSQLite)
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")

	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: path})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := Migrate(context.Background(), db, DriverSQLite); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db, path
}

// closeAndReopenDB simulates app restart by closing and reopening the database
func closeAndReopenDB(t *testing.T, db *sql.DB, dbPath string) *sql.DB {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	newDB, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dbPath})
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	t.Cleanup(func() { _ = newDB.Close() })

	if err := Migrate(context.Background(), newDB, DriverSQLite); err != nil {
		t.Fatalf("Failed to rerun migrations: %v", err)
	}

	return newDB
}

// mustCreate creates a task or fails the test
func mustCreate(t *testing.T, repo *TaskRepo, title string, description *string) *models.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), title, description)
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task
}
