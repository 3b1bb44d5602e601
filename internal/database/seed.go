package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SeedDemoTasks inserts a small starter queue when the tasks table is
// empty, so a fresh install has something to focus on. Ids are derived
// from the titles so re-seeding stays idempotent.
func SeedDemoTasks(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := Now()
	demo := []struct {
		title    string
		priority string
		dueIn    time.Duration
	}{
		{title: "Review the quarterly plan", priority: "high", dueIn: 24 * time.Hour},
		{title: "Reply to open threads", priority: "medium", dueIn: 48 * time.Hour},
		{title: "Tidy the downloads folder", priority: "low"},
	}
	return WithTx(db, func(tx *sql.Tx) error {
		for _, d := range demo {
			id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("task:"+d.title)).String()
			var due *time.Time
			if d.dueIn > 0 {
				t := now.Add(d.dueIn)
				due = &t
			}
			_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks(id, title, priority, due, completed, created_at, updated_at)
			VALUES(?, ?, ?, ?, 0, ?, ?)`,
				id, d.title, d.priority, due, now, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
