package repository

import "time"

// Task is a stored task row. The focus engine reads these through its own
// view type; this struct mirrors the table.
type Task struct {
	ID           string
	Title        string
	Priority     string
	Due          *time.Time
	Completed    bool
	SnoozedUntil *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FocusSession is a stored session record. Created at session start,
// ended exactly once, never deleted.
type FocusSession struct {
	ID              string
	UserID          string
	TaskID          *string
	Intention       *string
	Background      *string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes *int
	PomodoroCount   int
}

// SessionNote is one quick note attached to a session at end.
type SessionNote struct {
	ID        int64
	SessionID string
	Body      string
	CreatedAt time.Time
}
