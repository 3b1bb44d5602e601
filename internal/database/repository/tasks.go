package repository

import (
	"context"
	"database/sql"
	"time"
)

// TaskRepo handles the tasks table.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tasks(id, title, priority, due, completed, snoozed_until, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		t.ID, t.Title, t.Priority, t.Due, t.Completed, t.SnoozedUntil, t.CreatedAt)
	return err
}

// List returns every task, oldest first. Filtering and session ordering are
// the engine's concern; the store stays dumb.
func (r *TaskRepo) List(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, priority, due, completed, snoozed_until, created_at, updated_at
	FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var completed int
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Due, &completed,
			&t.SnoozedUntil, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Completed = completed != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, priority, due, completed, snoozed_until, created_at, updated_at
	FROM tasks WHERE id = ?`, id)
	var t Task
	var completed int
	if err := row.Scan(&t.ID, &t.Title, &t.Priority, &t.Due, &completed,
		&t.SnoozedUntil, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	return &t, nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		completed, id)
	return err
}

func (r *TaskRepo) Snooze(ctx context.Context, id string, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET snoozed_until = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		until, id)
	return err
}

func (r *TaskRepo) SetDue(ctx context.Context, id string, due time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET due = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		due, id)
	return err
}
