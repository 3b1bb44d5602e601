package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// renderFooter builds the one-line key hint bar from the active binding
// set, truncated to the terminal width.
func (a *App) renderFooter() string {
	var parts []string
	for _, b := range a.registry.Bindings() {
		if len(b.Keys) == 0 || b.Help == "" {
			continue
		}
		parts = append(parts, "["+b.Keys[0]+"] "+b.Help)
	}
	line := strings.Join(parts, "  ")
	if a.width > 0 {
		line = ansi.Truncate(line, a.width, "…")
	}
	return dimStyle.Render(line)
}
