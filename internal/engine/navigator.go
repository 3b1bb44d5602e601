package engine

import (
	"errors"
	"time"
)

// Boundary results from Advance/Retreat. These are informational no-ops,
// not failures: the caller reports them and leaves state alone.
var (
	ErrAtEnd   = errors.New("already at the last task")
	ErrAtStart = errors.New("already at the first task")
)

// Navigator holds the live, filtered, sorted task queue and a cursor into
// it. The queue is recomputed on every live-list change; the session
// snapshot is a separate structure owned by the Controller.
type Navigator struct {
	queue  []Task
	cursor int // -1 iff queue is empty
}

func NewNavigator() *Navigator {
	return &Navigator{cursor: -1}
}

// Recompute rebuilds the queue from the live task list. If the previously
// selected task is still present the cursor follows it; if it disappeared
// the cursor clamps to min(oldIndex, len-1). Returns true when the queue
// just became empty so the Controller can leave the active screen.
func (n *Navigator) Recompute(live []Task, now time.Time) bool {
	var selectedID string
	if n.cursor >= 0 && n.cursor < len(n.queue) {
		selectedID = n.queue[n.cursor].ID
	}
	wasEmpty := len(n.queue) == 0

	n.queue = EligibleTasks(live, now)
	if len(n.queue) == 0 {
		n.cursor = -1
		return !wasEmpty
	}

	if selectedID != "" {
		for i, t := range n.queue {
			if t.ID == selectedID {
				n.cursor = i
				return false
			}
		}
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
	if n.cursor > len(n.queue)-1 {
		n.cursor = len(n.queue) - 1
	}
	return false
}

// Advance moves the cursor to the next task. Returns ErrAtEnd at the
// boundary without moving.
func (n *Navigator) Advance() error {
	if n.cursor < 0 {
		return ErrAtEnd
	}
	if n.cursor >= len(n.queue)-1 {
		return ErrAtEnd
	}
	n.cursor++
	return nil
}

// Retreat moves the cursor to the previous task. Returns ErrAtStart at
// index 0 without moving.
func (n *Navigator) Retreat() error {
	if n.cursor < 0 {
		return ErrAtStart
	}
	if n.cursor == 0 {
		return ErrAtStart
	}
	n.cursor--
	return nil
}

// Current returns the task under the cursor, if any.
func (n *Navigator) Current() (Task, bool) {
	if n.cursor < 0 || n.cursor >= len(n.queue) {
		return Task{}, false
	}
	return n.queue[n.cursor], true
}

// Len reports the live queue length.
func (n *Navigator) Len() int { return len(n.queue) }

// Position returns the 1-based cursor position for display, or 0 when the
// queue is empty.
func (n *Navigator) Position() int {
	if n.cursor < 0 {
		return 0
	}
	return n.cursor + 1
}

// Queue returns a copy of the live queue, in order.
func (n *Navigator) Queue() []Task {
	out := make([]Task, len(n.queue))
	copy(out, n.queue)
	return out
}
