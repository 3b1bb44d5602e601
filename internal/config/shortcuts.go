package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jask/focusline/internal/engine"
)

// shortcutsFile mirrors the on-disk shortcuts.toml layout:
//
//	[[shortcut]]
//	id = "task.complete"
//	keys = ["x", "enter"]
type shortcutsFile struct {
	Shortcut []shortcutEntry `toml:"shortcut"`
}

type shortcutEntry struct {
	ID   string   `toml:"id"`
	Keys []string `toml:"keys"`
}

// LoadShortcuts reads key overrides from path. A missing file is not an
// error; the defaults simply apply. A present but invalid file is an error,
// since silently ignoring a typo'd override would be worse than failing.
func LoadShortcuts(path string) ([]engine.Override, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var f shortcutsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parse shortcuts file %s: %w", path, err)
	}
	overrides := make([]engine.Override, 0, len(f.Shortcut))
	for _, s := range f.Shortcut {
		overrides = append(overrides, engine.Override{ID: s.ID, Keys: s.Keys})
	}
	if err := engine.ValidateOverrides(overrides); err != nil {
		return nil, fmt.Errorf("shortcuts file %s: %w", path, err)
	}
	return overrides, nil
}
