// Package gateway provides persistence gateways for focus session records.
// The engine only knows the create/end/verify contract; this package owns
// the schema behind it.
package gateway

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jask/focusline/internal/database/repository"
	"github.com/jask/focusline/internal/engine"
)

// SQLite stores session records in the local database. A single-user
// install talks to this the same way a hosted deployment would talk to a
// remote store: every write is followed by a read-back verification.
type SQLite struct {
	sessions *repository.SessionRepo
}

func NewSQLite(sessions *repository.SessionRepo) *SQLite {
	return &SQLite{sessions: sessions}
}

func (g *SQLite) CreateSession(ctx context.Context, req engine.CreateSessionRequest) (string, error) {
	id := uuid.NewString()
	rec := repository.FocusSession{
		ID:        id,
		UserID:    req.UserID,
		StartedAt: req.StartedAt,
	}
	if req.TaskID != "" {
		rec.TaskID = &req.TaskID
	}
	if req.Intention != "" {
		rec.Intention = &req.Intention
	}
	if req.Background != "" {
		rec.Background = &req.Background
	}
	if err := g.sessions.Insert(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

func (g *SQLite) EndSession(ctx context.Context, req engine.EndSessionRequest) error {
	if err := g.sessions.End(ctx, req.SessionID, req.EndedAt, req.DurationMinutes, req.Pomodoros); err != nil {
		return err
	}
	for _, note := range req.Notes {
		if err := g.sessions.AttachNote(ctx, req.SessionID, note); err != nil {
			return err
		}
	}
	return nil
}

// Verify reads the record back. True means the record exists and its end
// fields are internally consistent; anything else is a retryable failure.
func (g *SQLite) Verify(ctx context.Context, sessionID string) (bool, error) {
	rec, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if rec.EndedAt != nil && rec.DurationMinutes == nil {
		return false, nil
	}
	return true, nil
}

var _ engine.Gateway = (*SQLite)(nil)
