package engine

import (
	"strings"
	"testing"
	"time"
)

func TestBindingsRebuildPerScreen(t *testing.T) {
	now := testNow
	c := NewController(Options{Now: func() time.Time { return now }})
	c.LiveTasksChanged(navTasks("a", "b"))

	ids := func() map[string]bool {
		out := make(map[string]bool)
		for _, b := range BindingsFor(c, nil) {
			out[b.ID] = true
		}
		return out
	}

	welcome := ids()
	if !welcome[BindStartSession] || welcome[BindNextTask] {
		t.Fatalf("welcome bindings = %v", welcome)
	}

	c.Start("")
	active := ids()
	for _, want := range []string{BindNextTask, BindCompleteTask, BindSnoozeTask, BindPostponeTask, BindExitSession, BindLockToggle, BindShortcutsPanel, BindQuickNote} {
		if !active[want] {
			t.Fatalf("active bindings missing %q: %v", want, active)
		}
	}

	// During the interstitial only the always-live globals remain.
	c.Next()
	transition := ids()
	if transition[BindNextTask] || transition[BindCompleteTask] {
		t.Fatalf("transition bindings must drop task keys: %v", transition)
	}
	if !transition[BindLockToggle] || !transition[BindShortcutsPanel] {
		t.Fatalf("transition bindings must keep the globals: %v", transition)
	}
}

func TestLockToggleStillDispatchedWhileLocked(t *testing.T) {
	now := testNow
	c := NewController(Options{Now: func() time.Time { return now }})
	c.LiveTasksChanged(navTasks("a", "b"))
	c.Start("")
	c.ToggleLock()

	r := NewRegistry()
	r.Register(BindingsFor(c, nil))

	// Exit key fires, but the action refuses inside: dispatch is policy-free.
	events, handled := r.Dispatch("esc")
	if !handled {
		t.Fatal("exit binding must still match while locked")
	}
	if _, ok := evOfType[ExitVetoed](events); !ok {
		t.Fatalf("events = %v, want the veto from inside the action", events)
	}

	events, handled = r.Dispatch("L")
	if !handled {
		t.Fatal("lock toggle must match")
	}
	if lc, ok := evOfType[LockChanged](events); !ok || lc.Locked {
		t.Fatalf("events = %v, want LockChanged{false}", events)
	}
}

func TestValidateOverrides(t *testing.T) {
	cases := []struct {
		name      string
		overrides []Override
		wantErr   string
	}{
		{name: "empty ok"},
		{
			name:      "rebind next",
			overrides: []Override{{ID: BindNextTask, Keys: []string{"ctrl+j"}}},
		},
		{
			name:      "unknown id",
			overrides: []Override{{ID: "task.frobnicate", Keys: []string{"x"}}},
			wantErr:   "unknown binding id",
		},
		{
			name: "duplicate entry",
			overrides: []Override{
				{ID: BindNextTask, Keys: []string{"x"}},
				{ID: BindNextTask, Keys: []string{"y"}},
			},
			wantErr: "duplicated entry",
		},
		{
			name:      "empty keys",
			overrides: []Override{{ID: BindNextTask, Keys: []string{"  "}}},
			wantErr:   "keys are required",
		},
		{
			name:      "same-priority collision",
			overrides: []Override{{ID: BindSnoozeTask, Keys: []string{"p"}}},
			wantErr:   "conflict",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOverrides(tc.overrides)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestOverridesApplyToRebuiltSets(t *testing.T) {
	now := testNow
	c := NewController(Options{Now: func() time.Time { return now }})
	c.LiveTasksChanged(navTasks("a", "b"))
	c.Start("")

	overrides := []Override{{ID: BindNextTask, Keys: []string{"ctrl+j"}}}
	if err := ValidateOverrides(overrides); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	r.Register(BindingsFor(c, overrides))
	if _, handled := r.Dispatch("ctrl+j"); !handled {
		t.Fatal("overridden key must dispatch")
	}
	if c.Screen() != ScreenTransition {
		t.Fatalf("screen = %v, want transition (next fired)", c.Screen())
	}
}
