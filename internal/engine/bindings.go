package engine

import (
	"fmt"
	"strings"
)

// Binding ids. Overrides in the shortcuts file refer to these.
const (
	BindNextTask       = "task.next"
	BindPrevTask       = "task.prev"
	BindCompleteTask   = "task.complete"
	BindSnoozeTask     = "task.snooze"
	BindPostponeTask   = "task.postpone"
	BindStartSession   = "session.start"
	BindContinue       = "session.continue"
	BindEndSession     = "session.end"
	BindExitSession    = "session.exit"
	BindDismissSummary = "session.dismiss"
	BindLockToggle     = "lock.toggle"
	BindShortcutsPanel = "panel.shortcuts"
	BindQuickNote      = "note.quick"
)

// Binding categories, used to group the shortcuts panel.
const (
	CategoryNavigation = "navigation"
	CategoryTask       = "task"
	CategorySession    = "session"
	CategoryGlobal     = "global"
)

// bindingSpec is the declarative half of a Binding: everything except the
// action callback, which is attached per controller in BindingsFor.
type bindingSpec struct {
	id           string
	category     string
	keys         []string
	help         string
	priority     int
	allowInModal bool
}

// The lock toggle (90) and shortcuts panel (95) carry the highest
// priorities in the system so they stay reachable while the Guard vetoes
// everything else; the dispatcher itself never consults the lock.
var globalSpecs = []bindingSpec{
	{id: BindShortcutsPanel, category: CategoryGlobal, keys: []string{"?", "f1"}, help: "shortcuts", priority: PriorityShortcutsPanel, allowInModal: true},
	{id: BindLockToggle, category: CategoryGlobal, keys: []string{"L", "ctrl+l"}, help: "focus lock", priority: PriorityLockToggle, allowInModal: true},
}

func screenSpecs(screen Screen) []bindingSpec {
	specs := append([]bindingSpec(nil), globalSpecs...)
	switch screen {
	case ScreenWelcome:
		specs = append(specs,
			bindingSpec{id: BindStartSession, category: CategorySession, keys: []string{"enter"}, help: "start", priority: 50},
		)
	case ScreenActive:
		specs = append(specs,
			bindingSpec{id: BindQuickNote, category: CategoryGlobal, keys: []string{"n", "ctrl+n"}, help: "quick note", priority: 80, allowInModal: true},
			bindingSpec{id: BindNextTask, category: CategoryNavigation, keys: []string{"j", "down", "right"}, help: "next task", priority: 10},
			bindingSpec{id: BindPrevTask, category: CategoryNavigation, keys: []string{"k", "up", "left"}, help: "prev task", priority: 10},
			bindingSpec{id: BindCompleteTask, category: CategoryTask, keys: []string{"enter", "c"}, help: "complete", priority: 20},
			bindingSpec{id: BindSnoozeTask, category: CategoryTask, keys: []string{"z"}, help: "snooze", priority: 20},
			bindingSpec{id: BindPostponeTask, category: CategoryTask, keys: []string{"p"}, help: "postpone", priority: 20},
			bindingSpec{id: BindExitSession, category: CategorySession, keys: []string{"esc", "q"}, help: "end session", priority: 30},
		)
	case ScreenTransition:
		// Only the always-live globals: the interstitial queues no other
		// input, so the user is never fully trapped.
	case ScreenSingleTaskDone:
		specs = append(specs,
			bindingSpec{id: BindContinue, category: CategorySession, keys: []string{"enter", "space"}, help: "continue", priority: 50},
			bindingSpec{id: BindEndSession, category: CategorySession, keys: []string{"e", "esc"}, help: "end session", priority: 40},
		)
	case ScreenAllDoneWasLocked, ScreenAllDoneNotLocked, ScreenEmptyAtEntry:
		specs = append(specs,
			bindingSpec{id: BindEndSession, category: CategorySession, keys: []string{"enter", "esc", "e"}, help: "finish", priority: 50},
		)
	case ScreenSummary:
		specs = append(specs,
			bindingSpec{id: BindDismissSummary, category: CategorySession, keys: []string{"enter", "esc", "q"}, help: "done", priority: 50},
		)
	}
	return specs
}

// BindingsFor builds the binding set for the controller's current screen,
// with overrides applied. The host re-registers the result after every
// controller interaction, fully replacing the previous set so no stale
// action can double-trigger. Overrides naming bindings absent from this
// screen are skipped here; ValidateOverrides catches genuinely unknown ids
// at config load.
func BindingsFor(c *Controller, overrides []Override) []Binding {
	keysFor := make(map[string][]string, len(overrides))
	for _, o := range overrides {
		keysFor[o.ID] = o.Keys
	}
	specs := screenSpecs(c.Screen())
	out := make([]Binding, 0, len(specs))
	for _, s := range specs {
		keys := s.keys
		if ov, ok := keysFor[s.id]; ok {
			keys = ov
		}
		out = append(out, Binding{
			ID:           s.id,
			Category:     s.category,
			Keys:         keys,
			Help:         s.help,
			Priority:     s.priority,
			AllowInModal: s.allowInModal,
			Action:       actionFor(c, s.id),
		})
	}
	return out
}

// actionFor binds an id to the controller method it drives. The
// screen-start and quick-note/panel actions are host-side (they open
// dialogs or read input first), so they stay nil and the host handles the
// matched binding by id.
func actionFor(c *Controller, id string) BindingAction {
	switch id {
	case BindNextTask:
		return c.Next
	case BindPrevTask:
		return c.Prev
	case BindCompleteTask:
		return c.CompleteCurrent
	case BindSnoozeTask:
		return c.SnoozeCurrent
	case BindPostponeTask:
		return c.PostponeCurrent
	case BindContinue:
		return c.Continue
	case BindEndSession:
		return c.EndSession
	case BindExitSession:
		return c.RequestExit
	case BindDismissSummary:
		return c.DismissSummary
	case BindLockToggle:
		return c.ToggleLock
	}
	return nil
}

// Override rebinds the key set of one binding id. Overrides come from the
// shortcuts file and apply to every screen's default set.
type Override struct {
	ID   string
	Keys []string
}

var allScreens = []Screen{
	ScreenWelcome, ScreenActive, ScreenTransition, ScreenSingleTaskDone,
	ScreenAllDoneWasLocked, ScreenAllDoneNotLocked, ScreenEmptyAtEntry,
	ScreenSummary,
}

// ValidateOverrides checks the shortcuts file once at load: ids must exist,
// entries must not repeat, key sets must be non-empty, and no screen may
// end up with the same key on two bindings of equal priority (recency would
// resolve that arbitrarily, which is never what a config author meant).
func ValidateOverrides(overrides []Override) error {
	if len(overrides) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, screen := range allScreens {
		for _, s := range screenSpecs(screen) {
			known[s.id] = true
		}
	}

	seen := make(map[string]bool, len(overrides))
	norm := make(map[string][]string, len(overrides))
	for _, o := range overrides {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			return fmt.Errorf("shortcut override: id is required")
		}
		if seen[id] {
			return fmt.Errorf("shortcut override %q: duplicated entry", id)
		}
		seen[id] = true
		if !known[id] {
			return fmt.Errorf("shortcut override %q: unknown binding id", id)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("shortcut override %q: keys are required", id)
		}
		norm[id] = keys
	}

	for _, screen := range allScreens {
		type slot struct {
			key      string
			priority int
		}
		used := make(map[slot]string)
		for _, s := range screenSpecs(screen) {
			keys := s.keys
			if ov, ok := norm[s.id]; ok {
				keys = ov
			}
			for _, k := range normalizeKeyList(keys) {
				sl := slot{key: k, priority: s.priority}
				if prev, ok := used[sl]; ok && prev != s.id {
					return fmt.Errorf("shortcut override conflict on %s screen: key %q bound to both %q and %q at priority %d",
						screen, k, prev, s.id, s.priority)
				}
				used[sl] = s.id
			}
		}
	}
	return nil
}
