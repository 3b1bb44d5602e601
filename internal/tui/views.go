package tui

import (
	"fmt"

	"github.com/jask/focusline/internal/engine"
)

func (a *App) View() string {
	var body string
	switch a.controller.Screen() {
	case engine.ScreenWelcome:
		body = a.renderWelcome()
	case engine.ScreenActive:
		body = a.renderActive()
	case engine.ScreenTransition:
		body = a.renderTransition()
	case engine.ScreenSingleTaskDone:
		body = a.renderSingleTaskDone()
	case engine.ScreenAllDoneWasLocked:
		body = a.renderAllDone(true)
	case engine.ScreenAllDoneNotLocked:
		body = a.renderAllDone(false)
	case engine.ScreenEmptyAtEntry:
		body = a.renderEmptyAtEntry()
	case engine.ScreenSummary:
		body = a.renderSummary()
	}

	switch a.modal {
	case modalIntention, modalQuickNote:
		body += "\n\n" + a.renderInputModal()
	case modalShortcuts:
		body += "\n\n" + a.renderPanel()
	}

	out := body
	if a.status != "" {
		line := a.status
		if a.statusErr {
			line = errStyle.Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		out += "\n" + line
	}
	out += "\n" + a.renderFooter()
	return out
}

func (a *App) renderWelcome() string {
	title := titleStyle.Render("Focusline")
	queue := a.controller.Navigator().Queue()
	out := title + "\n" + a.lockLine()
	if len(queue) == 0 {
		out += "\nNo eligible tasks right now. Add some, or wait out a snooze."
		return out
	}
	out += fmt.Sprintf("\n%d task(s) queued for this session:\n", len(queue))
	shown := queue
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, t := range shown {
		out += fmt.Sprintf("  %s %s%s\n", priorityLabel(t.Priority.String()), t.Title, dueSuffix(t))
	}
	if len(queue) > 5 {
		out += dimStyle.Render(fmt.Sprintf("  …and %d more\n", len(queue)-5))
	}
	out += "\nPress enter to start a focus session."
	return out
}

func (a *App) renderActive() string {
	nav := a.controller.Navigator()
	done, total := a.controller.Progress()

	header := fmt.Sprintf("Task %d of %d", nav.Position(), nav.Len())
	out := titleStyle.Render(header) + "  " + a.lockLine() + "\n"
	if intention := a.controller.Intention(); intention != "" {
		out += dimStyle.Render("Intention: "+intention) + "\n"
	}
	out += "\n"

	if task, ok := nav.Current(); ok {
		out += "  " + cursorStyle.Render("▶") + " " + taskTitleStyle.Render(task.Title) + "\n"
		out += "    " + priorityLabel(task.Priority.String()) + dueSuffix(task) + "\n"
	}

	out += fmt.Sprintf("\nProgress: %d/%d done", done, total)
	if notes := a.controller.Notes(); len(notes) > 0 {
		out += dimStyle.Render(fmt.Sprintf("  ·  %d note(s)", len(notes)))
	}
	return out
}

func (a *App) renderTransition() string {
	return dimStyle.Render("Switching tasks…")
}

func (a *App) renderSingleTaskDone() string {
	done, total := a.controller.Progress()
	out := titleStyle.Render("Task done") + "\n"
	out += fmt.Sprintf("Progress: %d/%d\n", done, total)
	out += "\nPress enter to continue to the next task, or e to end the session."
	return out
}

func (a *App) renderAllDone(wasLocked bool) string {
	done, total := a.controller.Progress()
	out := titleStyle.Render("All tasks complete") + " " + okStyle.Render("✓") + "\n"
	out += fmt.Sprintf("Completed %d of %d.\n", done, total)
	if wasLocked {
		out += okStyle.Render("Focus lock auto-unlocked.") + "\n"
	}
	out += "\nPress enter to finish."
	return out
}

func (a *App) renderEmptyAtEntry() string {
	out := titleStyle.Render("Nothing to focus on") + "\n"
	out += "Every task is either done or snoozed.\n"
	out += "\nPress enter to go back."
	return out
}

func (a *App) renderSummary() string {
	s := a.controller.Summary()
	out := titleStyle.Render("Session summary") + "\n"
	dur := fmt.Sprintf("%d min", s.DurationMinutes)
	if s.Estimated {
		dur = "~" + dur + dimStyle.Render(" (estimate)")
	}
	out += fmt.Sprintf("Tasks completed: %d of %d\n", s.CompletedTasks, s.TotalTasks)
	out += fmt.Sprintf("Duration: %s\n", dur)
	out += fmt.Sprintf("Pomodoros: %d\n", s.Pomodoros)
	if notes := a.controller.Notes(); len(notes) > 0 {
		out += "Notes:\n"
		for _, n := range notes {
			out += "  - " + n + "\n"
		}
	}
	out += "\nPress enter to close."
	return out
}

func (a *App) renderInputModal() string {
	title := "Set your intention"
	if a.modal == modalQuickNote {
		title = "Quick note"
	}
	body := titleStyle.Render(title) + "\n" + a.input.View() + "\n" + dimStyle.Render("[enter] Save  [esc] Cancel")
	return modalStyle.Render(body)
}

func (a *App) lockLine() string {
	if a.controller.Locked() {
		return lockOnStyle.Render("LOCKED")
	}
	return dimStyle.Render("unlocked")
}

func dueSuffix(t engine.Task) string {
	if t.Due == nil {
		return ""
	}
	return dimStyle.Render("  due " + t.Due.Format("Mon 2 Jan"))
}
