package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/focusline/internal/config"
	"github.com/jask/focusline/internal/database/repository"
	"github.com/jask/focusline/internal/engine"
	"github.com/jask/focusline/internal/service"
)

// App hosts the focus engine inside a bubbletea event loop. The engine
// returns []engine.Event from every interaction; App maps each event onto a
// tea.Cmd and feeds the background results back in as messages.
type App struct {
	ctx        context.Context
	cfg        config.Config
	tasks      *repository.TaskRepo
	sessions   *service.Sessions
	controller *engine.Controller
	registry   *engine.Registry
	overrides  []engine.Override

	width  int
	height int

	status    string
	statusErr bool

	modal       modalState
	input       textinput.Model
	panelFilter string
}

type modalState string

const (
	modalNone      modalState = ""
	modalIntention modalState = "intention"
	modalQuickNote modalState = "quickNote"
	modalShortcuts modalState = "shortcuts"
)

func New(ctx context.Context, cfg config.Config, tasks *repository.TaskRepo, sessions *service.Sessions, overrides []engine.Override) *App {
	ctrl := engine.NewController(engine.Options{
		Background:     cfg.Session.Background,
		PomodoroLength: cfg.PomodoroLength(),
		SnoozeFor:      cfg.SnoozeFor(),
		PostponeFor:    cfg.PostponeFor(),
	})
	in := textinput.New()
	in.CharLimit = 200
	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		tasks:      tasks,
		sessions:   sessions,
		controller: ctrl,
		registry:   engine.NewRegistry(),
		overrides:  overrides,
		input:      in,
	}
	a.rebind()
	return a
}

// rebind replaces the registry's binding set with the current screen's.
// Called after every controller interaction so stale actions never linger.
func (a *App) rebind() {
	a.registry.Register(engine.BindingsFor(a.controller, a.overrides))
}

func (a *App) Init() tea.Cmd {
	return a.loadTasks()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.modal {
		case modalIntention, modalQuickNote:
			return a.handleInputKey(m)
		case modalShortcuts:
			return a.handlePanelKey(m)
		}
		return a.handleKey(m)
	case tasksMsg:
		return a, a.run(a.controller.LiveTasksChanged([]engine.Task(m)))
	case sessionCreatedMsg:
		return a, a.run(a.controller.SessionCreateResult(m.id, m.err))
	case sessionEndedMsg:
		return a, a.run(a.controller.SessionEndResult(m.err))
	case transitionMsg:
		return a, a.run(a.controller.TransitionElapsed(int(m)))
	case errMsg:
		a.status, a.statusErr = "error: "+m.Error(), true
	}
	return a, nil
}

// handleKey resolves the key through the registry. Bindings with a nil
// action are host-side: they open dialogs here instead of driving the
// controller directly.
func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := a.registry.Match(m.String())
	if !ok {
		return a, nil
	}
	if b.Action == nil {
		switch b.ID {
		case engine.BindStartSession:
			a.openInput(modalIntention, "What will you focus on?")
		case engine.BindQuickNote:
			a.openInput(modalQuickNote, "Quick note")
		case engine.BindShortcutsPanel:
			a.openPanel()
		}
		return a, nil
	}
	return a, a.run(b.Action())
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.closeModal()
		return a, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(a.input.Value())
		mode := a.modal
		a.closeModal()
		switch mode {
		case modalIntention:
			return a, a.run(a.controller.Start(text))
		case modalQuickNote:
			if text != "" {
				a.controller.AddNote(text)
				a.status, a.statusErr = "Note captured", false
			}
		}
		return a, nil
	}
	// Non-text combos still reach the always-live bindings (lock toggle,
	// shortcuts panel), same as in the panel handler. Typed runes and
	// spaces always belong to the text input.
	if m.Type != tea.KeyRunes && m.Type != tea.KeySpace {
		if b, ok := a.registry.Match(m.String()); ok && b.Action != nil {
			return a, a.run(b.Action())
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) handlePanelKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "?":
		a.closeModal()
		return a, nil
	case "backspace":
		if len(a.panelFilter) > 0 {
			a.panelFilter = a.panelFilter[:len(a.panelFilter)-1]
		}
		return a, nil
	}
	if m.Type == tea.KeyRunes {
		a.panelFilter += string(m.Runes)
		return a, nil
	}
	// Non-rune combos still reach the always-live bindings (the lock
	// toggle in particular) while the panel is up.
	if b, ok := a.registry.Match(m.String()); ok && b.Action != nil {
		return a, a.run(b.Action())
	}
	return a, nil
}

func (a *App) openInput(mode modalState, placeholder string) {
	a.modal = mode
	a.input.Placeholder = placeholder
	a.input.SetValue("")
	a.input.Focus()
	a.registry.SetModalOpen(true)
}

func (a *App) openPanel() {
	a.modal = modalShortcuts
	a.panelFilter = ""
	a.registry.SetModalOpen(true)
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.input.Blur()
	a.registry.SetModalOpen(false)
}

// run maps engine events onto background commands, then rebuilds the
// binding set for whatever screen the controller landed on.
func (a *App) run(events []engine.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.Notice:
			a.status, a.statusErr = e.Text, e.IsErr
		case engine.LockChanged, engine.ExitVetoed:
			// Rendered straight off controller state; the paired Notice
			// already carries the user-facing text.
		case engine.CreateSessionRequested:
			cmds = append(cmds, a.createSessionCmd(e))
		case engine.EndSessionRequested:
			cmds = append(cmds, a.endSessionCmd(e))
		case engine.TaskMutationRequested:
			cmds = append(cmds, a.applyMutationCmd(e))
		case engine.TransitionScheduled:
			cmds = append(cmds, a.transitionCmd(e.Seq))
		case engine.ExitRequested:
			cmds = append(cmds, tea.Quit)
		}
	}
	a.rebind()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// commands

func (a *App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.tasks.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(engineTasks(rows))
	}
}

func (a *App) createSessionCmd(e engine.CreateSessionRequested) tea.Cmd {
	return func() tea.Msg {
		id, err := a.sessions.Create(a.ctx, engine.CreateSessionRequest{
			TaskID:     e.TaskID,
			Intention:  e.Intention,
			Background: e.Background,
		})
		return sessionCreatedMsg{id: id, err: err}
	}
}

func (a *App) endSessionCmd(e engine.EndSessionRequested) tea.Cmd {
	return func() tea.Msg {
		err := a.sessions.End(a.ctx, engine.EndSessionRequest{
			SessionID:       e.SessionID,
			DurationMinutes: e.DurationMinutes,
			Notes:           e.Notes,
			Pomodoros:       e.Pomodoros,
		})
		return sessionEndedMsg{err: err}
	}
}

// applyMutationCmd writes the partial update and reloads the live list in
// one command so the reload always observes the write.
func (a *App) applyMutationCmd(e engine.TaskMutationRequested) tea.Cmd {
	return func() tea.Msg {
		u := e.Update
		if u.Completed != nil {
			if err := a.tasks.SetCompleted(a.ctx, e.TaskID, *u.Completed); err != nil {
				return errMsg{err}
			}
		}
		if u.SnoozedUntil != nil {
			if err := a.tasks.Snooze(a.ctx, e.TaskID, *u.SnoozedUntil); err != nil {
				return errMsg{err}
			}
		}
		if u.Due != nil {
			if err := a.tasks.SetDue(a.ctx, e.TaskID, *u.Due); err != nil {
				return errMsg{err}
			}
		}
		rows, err := a.tasks.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(engineTasks(rows))
	}
}

func (a *App) transitionCmd(seq int) tea.Cmd {
	return tea.Tick(a.cfg.TransitionDelay(), func(time.Time) tea.Msg {
		return transitionMsg(seq)
	})
}

func engineTasks(rows []repository.Task) []engine.Task {
	out := make([]engine.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.Task{
			ID:           r.ID,
			Title:        r.Title,
			Priority:     engine.ParsePriority(r.Priority),
			Due:          r.Due,
			Completed:    r.Completed,
			SnoozedUntil: r.SnoozedUntil,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

// messages

type tasksMsg []engine.Task

type sessionCreatedMsg struct {
	id  string
	err error
}

type sessionEndedMsg struct {
	err error
}

// transitionMsg echoes a TransitionScheduled sequence number after the
// configured dwell. Stale sequences are dropped by the controller.
type transitionMsg int

type errMsg struct{ error }
