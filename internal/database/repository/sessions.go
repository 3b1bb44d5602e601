package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo handles the focus_sessions and session_notes tables.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s FocusSession) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO focus_sessions(
	 id, user_id, task_id, intention, background, started_at, ended_at,
	 duration_minutes, pomodoro_count, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		s.ID, s.UserID, s.TaskID, s.Intention, s.Background, s.StartedAt,
		s.EndedAt, s.DurationMinutes, s.PomodoroCount)
	return err
}

// End closes a session record once. An already ended record is left alone,
// so a double end write stays a no-op at the store level too.
func (r *SessionRepo) End(ctx context.Context, id string, endedAt time.Time, durationMinutes, pomodoros int) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE focus_sessions
	SET ended_at = ?, duration_minutes = ?, pomodoro_count = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND ended_at IS NULL`,
		endedAt, durationMinutes, pomodoros, id)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*FocusSession, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, user_id, task_id, intention, background, started_at, ended_at,
	       duration_minutes, pomodoro_count
	FROM focus_sessions WHERE id = ?`, id)
	var s FocusSession
	if err := row.Scan(&s.ID, &s.UserID, &s.TaskID, &s.Intention, &s.Background,
		&s.StartedAt, &s.EndedAt, &s.DurationMinutes, &s.PomodoroCount); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) AttachNote(ctx context.Context, sessionID, body string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_notes(session_id, body) VALUES(?, ?)`,
		sessionID, body)
	return err
}

func (r *SessionRepo) Notes(ctx context.Context, sessionID string) ([]SessionNote, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, body, created_at
	FROM session_notes WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionNote
	for rows.Next() {
		var n SessionNote
		if err := rows.Scan(&n.ID, &n.SessionID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
