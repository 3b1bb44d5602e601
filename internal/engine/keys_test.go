package engine

import "testing"

func action(log *[]string, name string) BindingAction {
	return func() []Event {
		*log = append(*log, name)
		return nil
	}
}

func TestDispatchSingleWinnerByPriority(t *testing.T) {
	var fired []string
	r := NewRegistry()
	r.Register([]Binding{
		{ID: "low", Keys: []string{"x"}, Priority: 10, Action: action(&fired, "low")},
		{ID: "high", Keys: []string{"x"}, Priority: 50, Action: action(&fired, "high")},
		{ID: "mid", Keys: []string{"x"}, Priority: 30, Action: action(&fired, "mid")},
	})

	_, handled := r.Dispatch("x")
	if !handled {
		t.Fatal("expected a binding to handle x")
	}
	if len(fired) != 1 || fired[0] != "high" {
		t.Fatalf("fired = %v, want exactly [high]", fired)
	}
}

func TestDispatchTieGoesToMostRecentlyRegistered(t *testing.T) {
	var fired []string
	r := NewRegistry()
	r.Register([]Binding{
		{ID: "first", Keys: []string{"x"}, Priority: 20, Action: action(&fired, "first")},
		{ID: "second", Keys: []string{"x"}, Priority: 20, Action: action(&fired, "second")},
	})

	if _, handled := r.Dispatch("x"); !handled {
		t.Fatal("expected a match")
	}
	if len(fired) != 1 || fired[0] != "second" {
		t.Fatalf("fired = %v, want [second]", fired)
	}
}

func TestDispatchModalFiltersIneligibleBindings(t *testing.T) {
	var fired []string
	r := NewRegistry()
	r.Register([]Binding{
		{ID: "nav", Keys: []string{"j"}, Priority: 10, Action: action(&fired, "nav")},
		{ID: "panel", Keys: []string{"?"}, Priority: 95, AllowInModal: true, Action: action(&fired, "panel")},
	})

	r.SetModalOpen(true)
	if _, handled := r.Dispatch("j"); handled {
		t.Fatal("nav binding must not fire while a modal is open")
	}
	if _, handled := r.Dispatch("?"); !handled {
		t.Fatal("AllowInModal binding must stay live while a modal is open")
	}
	r.SetModalOpen(false)
	if _, handled := r.Dispatch("j"); !handled {
		t.Fatal("nav binding must fire again once the modal closes")
	}
	if got := len(fired); got != 2 {
		t.Fatalf("actions fired = %d (%v), want 2", got, fired)
	}
}

func TestRegisterReplacesWholeSet(t *testing.T) {
	var fired []string
	r := NewRegistry()
	r.Register([]Binding{
		{ID: "old", Keys: []string{"x"}, Priority: 99, Action: action(&fired, "old")},
	})
	r.Register([]Binding{
		{ID: "new", Keys: []string{"x"}, Priority: 1, Action: action(&fired, "new")},
	})

	if _, handled := r.Dispatch("x"); !handled {
		t.Fatal("expected a match")
	}
	if len(fired) != 1 || fired[0] != "new" {
		t.Fatalf("fired = %v, want [new]; the old set must be fully replaced", fired)
	}
}

func TestDispatchUnmatchedKeyFallsThrough(t *testing.T) {
	r := NewRegistry()
	r.Register([]Binding{{ID: "a", Keys: []string{"a"}, Priority: 1}})

	if _, handled := r.Dispatch("zz"); handled {
		t.Fatal("unmatched key must report unhandled so the default isn't suppressed")
	}
}

func TestNormalizeKeyName(t *testing.T) {
	cases := map[string]string{
		" ":         "space",
		"Spacebar":  "space",
		"Control+L": "ctrl+l",
		"cmd+k":     "meta+k",
		"Return":    "enter",
		"L":         "L", // uppercase rune stays distinct from l
		"l":         "l",
		"  esc ":    "esc",
		"":          "",
	}
	for in, want := range cases {
		if got := normalizeKeyName(in); got != want {
			t.Fatalf("normalizeKeyName(%q) = %q, want %q", in, got, want)
		}
	}
}
