package engine

import (
	"context"
	"time"
)

// Gateway is the remote persistence contract for session records. The
// engine only ever issues create/end/verify; the schema behind them is the
// gateway's concern. All calls run off the engine's event loop and their
// failures are recovered locally (surfaced as notices, never blocking a
// screen transition).
type Gateway interface {
	// CreateSession opens a session record and returns its id.
	CreateSession(ctx context.Context, req CreateSessionRequest) (string, error)

	// EndSession closes a previously created record. Ending an already
	// ended record must be a no-op.
	EndSession(ctx context.Context, req EndSessionRequest) error

	// Verify reads the record back and reports whether the last write is
	// visible. A false result is a retryable failure.
	Verify(ctx context.Context, sessionID string) (bool, error)
}

// CreateSessionRequest carries the fields captured at session start.
type CreateSessionRequest struct {
	UserID     string
	TaskID     string
	Intention  string
	Background string
	StartedAt  time.Time
}

// EndSessionRequest carries the fields written exactly once at session end.
type EndSessionRequest struct {
	SessionID       string
	DurationMinutes int
	Notes           []string
	Pomodoros       int
	EndedAt         time.Time
}
