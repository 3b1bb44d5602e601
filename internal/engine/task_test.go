package engine

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

func TestEligibleTasksFiltering(t *testing.T) {
	tasks := []Task{
		{ID: "done", Completed: true},
		{ID: "snoozed", SnoozedUntil: tp(testNow.Add(time.Hour))},
		{ID: "snooze-expired", SnoozedUntil: tp(testNow.Add(-time.Minute))},
		{ID: "plain"},
	}

	got := EligibleTasks(tasks, testNow)
	ids := make(map[string]bool)
	for _, task := range got {
		ids[task.ID] = true
	}
	if len(got) != 2 || !ids["snooze-expired"] || !ids["plain"] {
		t.Fatalf("eligible ids = %v, want snooze-expired and plain", ids)
	}
}

func TestEligibleTasksOrdering(t *testing.T) {
	due1 := testNow.Add(24 * time.Hour)
	due2 := testNow.Add(48 * time.Hour)
	created := testNow.Add(-72 * time.Hour)

	tasks := []Task{
		{ID: "low-early-due", Priority: PriorityLow, Due: tp(due1), CreatedAt: created},
		{ID: "high-no-due", Priority: PriorityHigh, CreatedAt: created},
		{ID: "high-late-due", Priority: PriorityHigh, Due: tp(due2), CreatedAt: created},
		{ID: "high-early-due", Priority: PriorityHigh, Due: tp(due1), CreatedAt: created},
		{ID: "med-old", Priority: PriorityMedium, CreatedAt: created},
		{ID: "med-new", Priority: PriorityMedium, CreatedAt: created.Add(time.Hour)},
	}

	got := EligibleTasks(tasks, testNow)
	want := []string{"high-early-due", "high-late-due", "high-no-due", "med-old", "med-new", "low-early-due"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, got[i].ID, id, taskIDs(got))
		}
	}
}

func TestEligibleTasksOrderIsStable(t *testing.T) {
	// Two tasks identical except for id: the id tiebreak keeps re-sorts
	// deterministic when unrelated fields change.
	a := Task{ID: "a", Priority: PriorityMedium, CreatedAt: testNow}
	b := Task{ID: "b", Priority: PriorityMedium, CreatedAt: testNow}

	first := EligibleTasks([]Task{b, a}, testNow)
	second := EligibleTasks([]Task{a, b}, testNow)
	if first[0].ID != "a" || second[0].ID != "a" {
		t.Fatalf("tiebreak not stable: %v vs %v", taskIDs(first), taskIDs(second))
	}
}

func TestParsePriorityFallsBackToMedium(t *testing.T) {
	cases := map[string]Priority{
		"high":   PriorityHigh,
		" HIGH ": PriorityHigh,
		"medium": PriorityMedium,
		"low":    PriorityLow,
		"urgent": PriorityMedium,
		"":       PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Fatalf("ParsePriority(%q) = %v, want %v", in, got, want)
		}
	}
}

func taskIDs(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
