package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/focusline/internal/engine"
)

// renderPanel draws the shortcuts panel: every active binding, grouped by
// category, fuzzy-filtered by whatever the user has typed.
func (a *App) renderPanel() string {
	bindings := rankBindings(a.registry.Bindings(), a.panelFilter)

	body := titleStyle.Render("Shortcuts") + "\n"
	body += dimStyle.Render("filter: "+a.panelFilter+"▌") + "\n\n"

	if len(bindings) == 0 {
		body += dimStyle.Render("(no matching shortcuts)")
	}
	lastCategory := ""
	for _, b := range bindings {
		if a.panelFilter == "" && b.Category != lastCategory {
			if lastCategory != "" {
				body += "\n"
			}
			body += dimStyle.Render(b.Category) + "\n"
			lastCategory = b.Category
		}
		body += fmt.Sprintf("  %-14s %s\n", strings.Join(b.Keys, ", "), b.Help)
	}
	body += "\n" + dimStyle.Render("[esc] Close")
	return modalStyle.Render(body)
}

// rankBindings orders the binding list against a filter string. Substring
// matches rank first, then near-misses by edit distance; far misses drop
// out. An empty filter returns the set grouped by category.
func rankBindings(bindings []engine.Binding, filter string) []engine.Binding {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		sort.SliceStable(bindings, func(i, j int) bool {
			return bindings[i].Category < bindings[j].Category
		})
		return bindings
	}

	type scored struct {
		b     engine.Binding
		score int
	}
	var out []scored
	for _, b := range bindings {
		s := matchScore(filter, b)
		if s < 0 {
			continue
		}
		out = append(out, scored{b: b, score: s})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })

	ranked := make([]engine.Binding, 0, len(out))
	for _, s := range out {
		ranked = append(ranked, s.b)
	}
	return ranked
}

func matchScore(filter string, b engine.Binding) int {
	best := -1
	for _, candidate := range []string{b.Help, b.ID, strings.Join(b.Keys, " ")} {
		c := strings.ToLower(candidate)
		if strings.Contains(c, filter) {
			return 0
		}
		d := levenshtein.ComputeDistance(filter, c)
		// A distance beyond the candidate's own length means nothing
		// matched at all.
		if d > len(c) {
			continue
		}
		if d <= len(filter) {
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}
