package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/tasktrack/internal/models"
	"github.com/thenoetrevino/tasktrack/internal/types"
)

// DefaultListLimit caps List when the caller does not supply a limit
const DefaultListLimit = 100

const taskColumns = `id, title, description, status, created_at, updated_at`

// TaskRepo handles pure data access for tasks.
// No business logic, no validation - just database operations.
type TaskRepo struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

var _ TaskRepository = (*TaskRepo)(nil)

// NewTaskRepo creates a task repository on top of an open database handle.
// driver selects the placeholder dialect (DriverSQLite or DriverPostgres).
func NewTaskRepo(db *sql.DB, driver string) *TaskRepo {
	return &TaskRepo{
		db:     db,
		driver: driver,
		now: func() time.Time {
			// Postgres keeps microseconds; truncate so both stores round-trip identically
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

func (r *TaskRepo) q(query string) string {
	return rebind(r.driver, query)
}

// ============================================================================
// CRUD OPERATIONS
// ============================================================================

// Create inserts a new task with a fresh id and the default status
func (r *TaskRepo) Create(ctx context.Context, title string, description *string) (*models.Task, error) {
	id := types.NewTaskID()
	now := r.now()

	var task *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.q(
			`INSERT INTO tasks (id, title, description, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 RETURNING `+taskColumns),
			id.String(), title, nullableString(description), string(models.DefaultStatus), now, now,
		)
		var err error
		task, err = scanTask(row)
		return err
	})
	if err != nil {
		return nil, storeError("create task", err)
	}
	return task, nil
}

// Get retrieves a task by ID. Returns ErrNotFound when no row matches.
func (r *TaskRepo) Get(ctx context.Context, id types.TaskID) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, r.q(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id.String())

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError(fmt.Sprintf("get task %s", id), err)
	}
	return task, nil
}

// List returns up to limit tasks after skipping offset, oldest first.
// A non-positive limit means DefaultListLimit; a negative offset means 0.
func (r *TaskRepo) List(ctx context.Context, limit, offset int) ([]*models.Task, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, r.q(
		`SELECT `+taskColumns+`
		 FROM tasks
		 ORDER BY created_at, id
		 LIMIT ? OFFSET ?`),
		limit, offset,
	)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeError("list tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list tasks", err)
	}

	return tasks, nil
}

// Update applies only the fields present in update and returns the row as
// written. The write and the read-back are one statement, so the result always
// reflects this update. Returns ErrNotFound when no row matches.
func (r *TaskRepo) Update(ctx context.Context, id types.TaskID, update models.TaskUpdate) (*models.Task, error) {
	if update.IsEmpty() {
		return r.Get(ctx, id)
	}

	var title, status any
	if update.Title != nil {
		title = *update.Title
	}
	if update.Status != nil {
		status = string(*update.Status)
	}

	var task *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.q(
			`UPDATE tasks
			 SET title = COALESCE(?, title),
			     description = CASE WHEN ? THEN ? ELSE description END,
			     status = COALESCE(?, status),
			     updated_at = ?
			 WHERE id = ?
			 RETURNING `+taskColumns),
			title, update.SetDescription, nullableString(update.Description), status, r.now(), id.String(),
		)
		var err error
		task, err = scanTask(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, storeError(fmt.Sprintf("update task %s", id), err)
	}
	return task, nil
}

// Delete removes a task and reports whether a row was actually removed.
// The DELETE itself reports what it removed, so there is no separate
// existence check to race with.
func (r *TaskRepo) Delete(ctx context.Context, id types.TaskID) (bool, error) {
	deleted := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var removed string
		err := tx.QueryRowContext(ctx, r.q(
			`DELETE FROM tasks WHERE id = ? RETURNING id`), id.String(),
		).Scan(&removed)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, storeError(fmt.Sprintf("delete task %s", id), err)
	}
	return deleted, nil
}

// ============================================================================
// ROW MAPPING
// ============================================================================

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		rawID       string
		description sql.NullString
		status      string
		createdAt   dbTime
		updatedAt   dbTime
	)

	task := &models.Task{}
	if err := row.Scan(&rawID, &task.Title, &description, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := types.ParseTaskID(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt task row: %w", err)
	}
	parsedStatus, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("corrupt task row %s: %w", rawID, err)
	}

	task.ID = id
	task.Description = nullStringToPtr(description)
	task.Status = parsedStatus
	task.CreatedAt = createdAt.Time
	task.UpdatedAt = updatedAt.Time
	return task, nil
}
