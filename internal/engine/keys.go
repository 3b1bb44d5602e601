package engine

import "strings"

// The dispatcher is policy-free: it knows nothing about the focus lock.
// Lock vetoes live inside the actions themselves, which is why the lock
// toggle and shortcuts panel stay reachable while everything else is vetoed.

// Reserved priorities. Ordinary bindings use the lower bands so these two
// always win their key events.
const (
	PriorityLockToggle     = 90
	PriorityShortcutsPanel = 95
)

// BindingAction is the side-effecting callback attached to a binding. It
// returns the events the action produced so the host can run them.
type BindingAction func() []Event

// Binding is one registered shortcut: identity, key-combo set, dispatch
// priority, modal eligibility, and the action to fire.
type Binding struct {
	ID           string
	Category     string
	Keys         []string
	Help         string
	Priority     int
	AllowInModal bool
	Action       BindingAction
}

// Registry owns the active binding set and resolves one winner per key
// event. Register replaces the whole set (no merge) so screens can rebuild
// their bindings without duplicate triggers.
type Registry struct {
	bindings  []Binding // registration order: later entries win priority ties
	modalOpen bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register replaces the active binding set. Key combos are normalized; a
// binding with no usable keys is dropped.
func (r *Registry) Register(bindings []Binding) {
	next := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		keys := normalizeKeyList(b.Keys)
		if len(keys) == 0 {
			continue
		}
		b.Keys = keys
		next = append(next, b)
	}
	r.bindings = next
}

// SetModalOpen raises or lowers the shared modal flag. Any screen that is a
// dialog (shortcuts panel, quick note, confirmation) raises it; while
// raised, only AllowInModal bindings are eligible.
func (r *Registry) SetModalOpen(open bool) { r.modalOpen = open }

// ModalOpen reports the shared modal flag.
func (r *Registry) ModalOpen() bool { return r.modalOpen }

// Match resolves the single winning binding for a key event: eligible
// bindings whose combo set contains the key, highest priority first, ties
// broken by most-recently-registered. ok is false when nothing matched and
// the host should let the event fall through to its default behavior.
func (r *Registry) Match(keyName string) (Binding, bool) {
	keyName = normalizeKeyName(keyName)
	if keyName == "" {
		return Binding{}, false
	}
	var (
		winner Binding
		found  bool
	)
	for _, b := range r.bindings {
		if r.modalOpen && !b.AllowInModal {
			continue
		}
		if !bindingHasKey(b, keyName) {
			continue
		}
		// >= keeps the later registration on a priority tie.
		if !found || b.Priority >= winner.Priority {
			winner = b
			found = true
		}
	}
	return winner, found
}

// Dispatch fires the winning binding's action for a key event. handled is
// true whenever a binding matched, even if its action produced no events;
// the host suppresses the default key behavior in that case.
func (r *Registry) Dispatch(keyName string) (events []Event, handled bool) {
	b, ok := r.Match(keyName)
	if !ok {
		return nil, false
	}
	if b.Action != nil {
		events = b.Action()
	}
	return events, true
}

// Bindings returns the active set in registration order, for the shortcuts
// panel and footer hints.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

func bindingHasKey(b Binding, keyName string) bool {
	for _, k := range b.Keys {
		if k == keyName {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase and lowercase single runes stay distinct bindings.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "cmd+", "meta+")
	s = strings.ReplaceAll(s, "command+", "meta+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}
