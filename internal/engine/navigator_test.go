package engine

import (
	"errors"
	"testing"
	"time"
)

func navTasks(ids ...string) []Task {
	out := make([]Task, len(ids))
	for i, id := range ids {
		out[i] = Task{ID: id, Priority: PriorityMedium, CreatedAt: testNow.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestNavigatorAdvanceRetreatBoundaries(t *testing.T) {
	n := NewNavigator()
	n.Recompute(navTasks("a", "b", "c"), testNow)

	if cur, _ := n.Current(); cur.ID != "a" {
		t.Fatalf("initial current = %q, want a", cur.ID)
	}
	if err := n.Retreat(); !errors.Is(err, ErrAtStart) {
		t.Fatalf("retreat at start = %v, want ErrAtStart", err)
	}
	if err := n.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := n.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := n.Advance(); !errors.Is(err, ErrAtEnd) {
		t.Fatalf("advance at end = %v, want ErrAtEnd", err)
	}
	if cur, _ := n.Current(); cur.ID != "c" {
		t.Fatalf("current after boundary = %q, want c (boundary must not move)", cur.ID)
	}
}

func TestNavigatorEmptyQueue(t *testing.T) {
	n := NewNavigator()
	if _, ok := n.Current(); ok {
		t.Fatal("empty navigator reported a current task")
	}
	if err := n.Advance(); !errors.Is(err, ErrAtEnd) {
		t.Fatalf("advance on empty = %v, want ErrAtEnd", err)
	}
	if n.Position() != 0 {
		t.Fatalf("position on empty = %d, want 0", n.Position())
	}
}

func TestNavigatorCursorFollowsSelectedTask(t *testing.T) {
	n := NewNavigator()
	n.Recompute(navTasks("a", "b", "c"), testNow)
	if err := n.Advance(); err != nil {
		t.Fatal(err)
	}

	// A higher-priority task arrives and sorts first; the cursor keeps
	// following b wherever it lands.
	live := navTasks("a", "b", "c")
	live = append(live, Task{ID: "urgent", Priority: PriorityHigh, CreatedAt: testNow})
	n.Recompute(live, testNow)

	if cur, _ := n.Current(); cur.ID != "b" {
		t.Fatalf("current = %q, want b", cur.ID)
	}
}

func TestNavigatorClampWhenSelectedDisappears(t *testing.T) {
	n := NewNavigator()
	n.Recompute(navTasks("a", "b", "c"), testNow)
	if err := n.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := n.Advance(); err != nil {
		t.Fatal(err)
	}

	// c (index 2) completed elsewhere: cursor clamps to min(2, 1) = 1.
	live := navTasks("a", "b", "c")
	live[2].Completed = true
	n.Recompute(live, testNow)

	if cur, _ := n.Current(); cur.ID != "b" {
		t.Fatalf("clamped current = %q, want b", cur.ID)
	}
}

func TestNavigatorReportsEmptiedExactlyOnce(t *testing.T) {
	n := NewNavigator()
	n.Recompute(navTasks("a"), testNow)

	live := navTasks("a")
	live[0].Completed = true
	if !n.Recompute(live, testNow) {
		t.Fatal("expected emptied notification when queue drains")
	}
	if n.Recompute(live, testNow) {
		t.Fatal("already-empty recompute must not re-notify")
	}
	if _, ok := n.Current(); ok {
		t.Fatal("drained navigator reported a current task")
	}
}
