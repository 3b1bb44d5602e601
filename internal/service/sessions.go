// Package service wraps the persistence gateway with the engine's
// optimistic write semantics: every write is followed by a read-back
// verification, a mismatch gets one retry, and failures are returned for
// the host to surface as non-blocking notices. Nothing here ever blocks a
// screen transition; callers run these methods off the event loop.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/focusline/internal/engine"
)

// ErrVerifyMismatch reports a write that did not read back.
var ErrVerifyMismatch = fmt.Errorf("gateway verification mismatch")

// Sessions drives session-record writes against a Gateway.
type Sessions struct {
	gw      engine.Gateway
	userID  string
	timeout time.Duration
	now     func() time.Time
}

func NewSessions(gw engine.Gateway, userID string, timeout time.Duration) *Sessions {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sessions{
		gw:      gw,
		userID:  userID,
		timeout: timeout,
		now:     time.Now,
	}
}

// Create opens a session record and verifies it landed. The id is returned
// even when only the verification failed, so a later end write can still
// target the record.
func (s *Sessions) Create(ctx context.Context, req engine.CreateSessionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req.UserID = s.userID
	if req.StartedAt.IsZero() {
		req.StartedAt = s.now()
	}
	id, err := s.gw.CreateSession(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if err := s.verifyWithRetry(ctx, id); err != nil {
		return id, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// End closes the record and verifies the write. Ending twice is a no-op at
// the gateway, so a retried end is always safe.
func (s *Sessions) End(ctx context.Context, req engine.EndSessionRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if req.EndedAt.IsZero() {
		req.EndedAt = s.now()
	}
	if err := s.gw.EndSession(ctx, req); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if err := s.verifyWithRetry(ctx, req.SessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// verifyWithRetry reads the record back, retrying a mismatch once before
// reporting it as a failure.
func (s *Sessions) verifyWithRetry(ctx context.Context, id string) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.gw.Verify(ctx, id)
		if err == nil && ok {
			return nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = ErrVerifyMismatch
		}
	}
	return lastErr
}
