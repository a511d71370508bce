package database

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tasktrack/internal/models"
)

// TestTaskPersistsAcrossRestart tests that tasks survive closing and reopening the file
func TestTaskPersistsAcrossRestart(t *testing.T) {
	t.Parallel()
	db, path := setupTestDBFile(t)
	ctx := context.Background()

	repo := NewTaskRepo(db, DriverSQLite)
	task, err := repo.Create(ctx, "Survives restart", models.StringPtr("on disk"))
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	status := models.StatusDone
	if _, err := repo.Update(ctx, task.ID, models.TaskUpdate{Status: &status}); err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}

	db = closeAndReopenDB(t, db, path)
	repo = NewTaskRepo(db, DriverSQLite)

	got, err := repo.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task after restart: %v", err)
	}
	if got.Title != "Survives restart" {
		t.Errorf("Expected title 'Survives restart', got '%s'", got.Title)
	}
	if got.Description == nil || *got.Description != "on disk" {
		t.Errorf("Expected description 'on disk', got %v", got.Description)
	}
	if got.Status != models.StatusDone {
		t.Errorf("Expected status %s, got %s", models.StatusDone, got.Status)
	}
}

// TestMigrateIdempotent tests that migrations can run repeatedly
func TestMigrateIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if err := Migrate(context.Background(), db, DriverSQLite); err != nil {
			t.Fatalf("Migration run %d failed: %v", i+1, err)
		}
	}
}

// TestSchemaDefaultStatus tests that the column default matches the domain default
func TestSchemaDefaultStatus(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, created_at, updated_at)
		 VALUES ('5b1f6a3e-7a57-4a0e-8c7e-2b7d0c1f3e11', 'raw insert', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err != nil {
		t.Fatalf("Failed to insert row: %v", err)
	}

	var status string
	if err := db.QueryRowContext(ctx, "SELECT status FROM tasks").Scan(&status); err != nil {
		t.Fatalf("Failed to read status: %v", err)
	}
	if status != string(models.DefaultStatus) {
		t.Errorf("Expected default status %s, got %s", models.DefaultStatus, status)
	}
}

// TestSchemaRejectsUnknownStatus tests the CHECK constraint on status
func TestSchemaRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tasks (id, title, status, created_at, updated_at)
		 VALUES ('5b1f6a3e-7a57-4a0e-8c7e-2b7d0c1f3e12', 'raw insert', 'PENDING', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("Expected CHECK constraint to reject unknown status")
	}
}
