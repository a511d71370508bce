package database

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktrack/internal/models"
	"github.com/thenoetrevino/tasktrack/internal/types"
)

// setupPostgresRepo connects to the Postgres named by DATABASE_URL and skips
// the test when none is configured. Rows created through track are removed
// when the test ends.
func setupPostgresRepo(t *testing.T) (repo *TaskRepo, track func(*models.Task) *models.Task) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		t.Skip("DATABASE_URL does not point at Postgres")
	}

	ctx := context.Background()
	db, err := Open(ctx, Config{Driver: DriverPostgres, DSN: dsn, MaxOpenConns: 4})
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, DriverPostgres))

	repo = NewTaskRepo(db, DriverPostgres)
	var created []types.TaskID
	t.Cleanup(func() {
		for _, id := range created {
			_, _ = repo.Delete(context.Background(), id)
		}
		_ = db.Close()
	})

	track = func(task *models.Task) *models.Task {
		created = append(created, task.ID)
		return task
	}
	return repo, track
}

func TestPostgresDialect(t *testing.T) {
	assert.Equal(t, "TIMESTAMPTZ", timestampType(DriverPostgres))
	assert.Equal(t, "TIMESTAMP", timestampType(DriverSQLite))
	assert.Equal(t,
		"UPDATE tasks SET title = COALESCE($1, title), description = CASE WHEN $2 THEN $3 ELSE description END WHERE id = $4",
		rebind(DriverPostgres, "UPDATE tasks SET title = COALESCE(?, title), description = CASE WHEN ? THEN ? ELSE description END WHERE id = ?"),
	)
}

func TestPostgresOpenRejectsBadDSN(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, Config{Driver: DriverPostgres, DSN: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"})
	assert.Error(t, err)
}

func TestPostgresTaskLifecycle(t *testing.T) {
	repo, track := setupPostgresRepo(t)
	ctx := context.Background()

	created := track(mustCreate(t, repo, "  Padded  ", models.StringPtr("")))
	assert.Equal(t, models.StatusCreated, created.Status)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Padded  ", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "", *got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "timestamps round-trip at microsecond precision")

	done := models.StatusDone
	updated, err := repo.Update(ctx, created.ID, models.TaskUpdate{Status: &done, SetDescription: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "  Padded  ", updated.Title)
	assert.Nil(t, updated.Description)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	tasks, err := repo.List(ctx, 1000, 0)
	require.NoError(t, err)
	found := 0
	for _, task := range tasks {
		if task.ID == created.ID {
			found++
		}
	}
	assert.Equal(t, 1, found)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresConstraintIsStoreError(t *testing.T) {
	repo, _ := setupPostgresRepo(t)

	_, err := repo.Create(context.Background(), strings.Repeat("x", 256), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
}
