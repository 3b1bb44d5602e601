package engine

import (
	"sort"
	"strings"
	"time"
)

// Priority orders tasks in the session queue. Lower values sort first.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "medium"
}

// ParsePriority maps a stored priority label back to a Priority.
// Unknown labels fall back to medium rather than failing a load.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is the engine's read-only view of a task owned by the surrounding
// application. The engine never writes a Task directly; mutations go out as
// TaskMutationRequested events.
type Task struct {
	ID           string
	Title        string
	Priority     Priority
	Due          *time.Time
	Completed    bool
	SnoozedUntil *time.Time
	CreatedAt    time.Time
}

// eligibleAt reports whether the task belongs in the live session queue:
// not completed and not snoozed past now.
func (t Task) eligibleAt(now time.Time) bool {
	if t.Completed {
		return false
	}
	if t.SnoozedUntil != nil && now.Before(*t.SnoozedUntil) {
		return false
	}
	return true
}

// TaskUpdate is a partial update requested by the engine. Nil fields are
// left untouched by the owner.
type TaskUpdate struct {
	Completed    *bool
	SnoozedUntil *time.Time
	Due          *time.Time
}

// EligibleTasks filters out completed and still-snoozed tasks and sorts the
// rest: priority first, then due date ascending with undated tasks last,
// then creation time, then id. The id tiebreak makes the order strictly
// total, so re-sorts driven by unrelated field changes are stable.
func EligibleTasks(tasks []Task, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.eligibleAt(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return taskLess(out[i], out[j])
	})
	return out
}

func taskLess(a, b Task) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	switch {
	case a.Due == nil && b.Due != nil:
		return false
	case a.Due != nil && b.Due == nil:
		return true
	case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
		return a.Due.Before(*b.Due)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
