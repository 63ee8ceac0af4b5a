package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore persists tasks in SQLite. Every query filters by id and user_id
// simultaneously, never by id alone.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the tasks table if needed and returns the store.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init tasks table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Create validates and inserts a new task, assigning its ID.
func (s *SQLStore) Create(ctx context.Context, t *Task) error {
	if err := Validate(t.Title, t.Description); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.Title = strings.TrimSpace(t.Title)
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, is_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	t.ID = id
	return nil
}

// Get returns the task if it exists under the given owner.
func (s *SQLStore) Get(ctx context.Context, userID string, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, is_completed, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	return scanTask(row)
}

// List returns the owner's tasks matching the filter, ordered by ID.
// Unrecognized filter values behave as "all".
func (s *SQLStore) List(ctx context.Context, userID string, filter StatusFilter) ([]*Task, error) {
	query := `SELECT id, user_id, title, description, is_completed, created_at, updated_at
		 FROM tasks WHERE user_id = ?`
	args := []any{userID}

	switch filter {
	case StatusPending:
		query += " AND is_completed = 0"
	case StatusCompleted:
		query += " AND is_completed = 1"
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Update applies a partial patch to the owner's task inside a transaction.
func (s *SQLStore) Update(ctx context.Context, userID string, id int64, patch Patch) (*Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, is_completed, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}

	patch.Apply(t)
	t.UpdatedAt = time.Now().UTC()

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, is_completed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, t.Completed, t.UpdatedAt, id, userID); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return t, nil
}

// Delete removes the owner's task.
func (s *SQLStore) Delete(ctx context.Context, userID string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row *sql.Row) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
