package engine

import (
	"fmt"
	"time"
)

// Screen enumerates the engine's UI states. Exactly one is active at any
// instant; switching screens is the only way user-visible state changes.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenActive
	ScreenTransition
	ScreenSingleTaskDone
	ScreenAllDoneWasLocked
	ScreenAllDoneNotLocked
	ScreenEmptyAtEntry
	ScreenSummary
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenActive:
		return "active"
	case ScreenTransition:
		return "transition"
	case ScreenSingleTaskDone:
		return "single_task_done"
	case ScreenAllDoneWasLocked:
		return "all_done_was_locked"
	case ScreenAllDoneNotLocked:
		return "all_done_not_locked"
	case ScreenEmptyAtEntry:
		return "empty_at_entry"
	case ScreenSummary:
		return "summary"
	}
	return "unknown"
}

// Options tunes the controller. Zero values fall back to defaults.
type Options struct {
	Background     string        // background ref recorded on the session
	PomodoroLength time.Duration // default 25m
	SnoozeFor      time.Duration // default 1h
	PostponeFor    time.Duration // default 24h
	Now            func() time.Time
}

// Summary is the final report shown on the summary screen.
type Summary struct {
	CompletedTasks  int
	TotalTasks      int
	DurationMinutes int
	Pomodoros       int
	Estimated       bool // true when the gateway write did not verify
}

// Controller is the session lifecycle state machine. It owns the active
// Screen and drives transitions using the Navigator and the Guard. All of
// its methods run on the host's single event loop and return the background
// effects to run as []Event.
type Controller struct {
	nav   *Navigator
	guard Guard

	screen Screen

	snapshot  []string
	inSnap    map[string]bool
	completed map[string]bool

	sessionID     string
	startedAt     time.Time
	endedAt       time.Time
	intention     string
	notes         []string
	createFailed  bool
	endIssued     bool // the end transition happened (idempotence gate)
	endDispatched bool // the EndSessionRequested event went out
	endVerified   bool

	lastCompletedID string
	transitionSeq   int

	opts Options
	now  func() time.Time
}

func NewController(opts Options) *Controller {
	if opts.PomodoroLength <= 0 {
		opts.PomodoroLength = 25 * time.Minute
	}
	if opts.SnoozeFor <= 0 {
		opts.SnoozeFor = time.Hour
	}
	if opts.PostponeFor <= 0 {
		opts.PostponeFor = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		nav:       NewNavigator(),
		screen:    ScreenWelcome,
		inSnap:    make(map[string]bool),
		completed: make(map[string]bool),
		opts:      opts,
		now:       now,
	}
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen { return c.screen }

// Navigator exposes the live queue for rendering.
func (c *Controller) Navigator() *Navigator { return c.nav }

// Locked reports the Guard state.
func (c *Controller) Locked() bool { return c.guard.Locked() }

// Intention returns the text captured at session start.
func (c *Controller) Intention() string { return c.intention }

// Progress returns completed-of-snapshot counts. The snapshot is only a
// denominator: a completed id missing from the live source is tolerated.
func (c *Controller) Progress() (done, total int) {
	return len(c.completed), len(c.snapshot)
}

// AddNote records a quick note to attach to the session record at end.
func (c *Controller) AddNote(text string) {
	if text == "" {
		return
	}
	c.notes = append(c.notes, text)
}

// Notes returns the quick notes captured so far.
func (c *Controller) Notes() []string {
	out := make([]string, len(c.notes))
	copy(out, c.notes)
	return out
}

// LiveTasksChanged recomputes the queue from the reactive live task list.
// If the queue just emptied mid-session the controller leaves the working
// screens through the all-done branch.
func (c *Controller) LiveTasksChanged(live []Task) []Event {
	emptied := c.nav.Recompute(live, c.now())
	if !emptied {
		return nil
	}
	switch c.screen {
	case ScreenActive, ScreenTransition, ScreenSingleTaskDone:
		return c.allDone()
	}
	return nil
}

// Start drives Welcome -> Active (or EmptyAtEntry when no task is
// eligible). It captures the session snapshot from the current live queue
// and requests a session record; no record is ever created on the empty
// path.
func (c *Controller) Start(intention string) []Event {
	if c.screen != ScreenWelcome {
		return nil
	}
	queue := c.nav.Queue()
	if len(queue) == 0 {
		c.screen = ScreenEmptyAtEntry
		return []Event{Notice{Text: "No eligible tasks — nothing to focus on right now"}}
	}

	c.intention = intention
	c.startedAt = c.now()
	c.snapshot = c.snapshot[:0]
	for _, t := range queue {
		c.snapshot = append(c.snapshot, t.ID)
		c.inSnap[t.ID] = true
	}
	c.screen = ScreenActive

	current, _ := c.nav.Current()
	return []Event{CreateSessionRequested{
		TaskID:     current.ID,
		Intention:  intention,
		Background: c.opts.Background,
	}}
}

// CompleteCurrent marks the task under the cursor done. The branch depends
// on whether that completes the snapshot and on the Guard state at this
// instant; the auto-unlock happens strictly before the all-done screen is
// presented.
func (c *Controller) CompleteCurrent() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	task, ok := c.nav.Current()
	if !ok {
		return []Event{Notice{Text: "No task selected"}}
	}

	done := true
	events := []Event{TaskMutationRequested{
		TaskID: task.ID,
		Update: TaskUpdate{Completed: &done},
	}}

	// completedTaskIds stays a subset of the snapshot; tasks that joined
	// the live list after session start don't move the denominator.
	if c.inSnap[task.ID] {
		c.completed[task.ID] = true
	}
	c.lastCompletedID = task.ID

	if len(c.completed) == len(c.snapshot) {
		return append(events, c.allDone()...)
	}
	c.screen = ScreenSingleTaskDone
	return events
}

// Continue drives SingleTaskDone -> Active, advancing the queue. If the
// completed task has already left the live list the recompute clamp has
// moved the cursor onto the next task, so advancing again would skip one;
// advance only while the cursor still sits on the task just completed.
func (c *Controller) Continue() []Event {
	if c.screen != ScreenSingleTaskDone {
		return nil
	}
	var events []Event
	if cur, ok := c.nav.Current(); ok && cur.ID == c.lastCompletedID {
		if err := c.nav.Advance(); err != nil {
			events = append(events, Notice{Text: err.Error()})
		}
	}
	c.screen = ScreenActive
	return events
}

// Next moves to the following task through the timed interstitial.
func (c *Controller) Next() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	if err := c.nav.Advance(); err != nil {
		return []Event{Notice{Text: err.Error()}}
	}
	return c.beginTransition()
}

// Prev moves to the previous task through the timed interstitial.
func (c *Controller) Prev() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	if err := c.nav.Retreat(); err != nil {
		return []Event{Notice{Text: err.Error()}}
	}
	return c.beginTransition()
}

// SnoozeCurrent hides the current task until the snooze window passes.
func (c *Controller) SnoozeCurrent() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	task, ok := c.nav.Current()
	if !ok {
		return []Event{Notice{Text: "No task selected"}}
	}
	until := c.now().Add(c.opts.SnoozeFor)
	events := []Event{
		TaskMutationRequested{TaskID: task.ID, Update: TaskUpdate{SnoozedUntil: &until}},
		Notice{Text: fmt.Sprintf("Snoozed %q until %s", task.Title, until.Format("15:04"))},
	}
	return append(events, c.beginTransition()...)
}

// PostponeCurrent pushes the current task's due date out.
func (c *Controller) PostponeCurrent() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	task, ok := c.nav.Current()
	if !ok {
		return []Event{Notice{Text: "No task selected"}}
	}
	due := c.now().Add(c.opts.PostponeFor)
	events := []Event{
		TaskMutationRequested{TaskID: task.ID, Update: TaskUpdate{Due: &due}},
		Notice{Text: fmt.Sprintf("Postponed %q to %s", task.Title, due.Format("Mon 2 Jan"))},
	}
	return append(events, c.beginTransition()...)
}

// ToggleLock flips the Guard. The lock action never vetoes itself, so this
// stays reachable while everything else is refused.
func (c *Controller) ToggleLock() []Event {
	locked := c.guard.Toggle()
	text := "Focus lock disabled"
	if locked {
		text = "Focus lock enabled — exits are vetoed until you unlock"
	}
	return []Event{LockChanged{Locked: locked}, Notice{Text: text}}
}

// RequestExit drives Active -> Summary, guarded by the lock. A vetoed exit
// changes nothing and surfaces a user-visible refusal.
func (c *Controller) RequestExit() []Event {
	if c.screen != ScreenActive {
		return nil
	}
	if !c.guard.IsExitAllowed() {
		return []Event{
			ExitVetoed{},
			Notice{Text: "Focus lock is on — unlock before leaving the session", IsErr: true},
		}
	}
	return c.end()
}

// EndSession drives any of the done screens (and EmptyAtEntry) to the
// summary. Calling it again once there is a no-op. Leaving the Active
// screen goes through RequestExit only, so the Guard check can't be
// sidestepped.
func (c *Controller) EndSession() []Event {
	switch c.screen {
	case ScreenSingleTaskDone, ScreenAllDoneWasLocked, ScreenAllDoneNotLocked,
		ScreenEmptyAtEntry:
		return c.end()
	}
	return nil
}

// DismissSummary hands control back to the host application.
func (c *Controller) DismissSummary() []Event {
	if c.screen != ScreenSummary {
		return nil
	}
	return []Event{ExitRequested{}}
}

// TransitionElapsed is the host's echo of TransitionScheduled. Stale
// sequence numbers belong to cancelled timers and are ignored.
func (c *Controller) TransitionElapsed(seq int) []Event {
	if c.screen != ScreenTransition || seq != c.transitionSeq {
		return nil
	}
	c.screen = ScreenActive
	return nil
}

// SessionCreateResult reports the outcome of the background create+verify.
// A failure never rolls back the UI: the session proceeds and the summary
// falls back to a client-side estimate.
func (c *Controller) SessionCreateResult(id string, err error) []Event {
	var events []Event
	if err != nil {
		// The id may still be usable when only the verification failed;
		// keep it so the end write gets its chance.
		c.createFailed = true
		events = append(events, Notice{
			Text:  "Couldn't confirm the session start — continuing; the summary may be an estimate",
			IsErr: true,
		})
	}
	if id == "" {
		return events
	}
	c.sessionID = id
	if c.endIssued && !c.endDispatched {
		// The user was already on the summary before the create landed;
		// issue the deferred end write now.
		c.endDispatched = true
		events = append(events, c.endRequest())
	}
	return events
}

// SessionEndResult reports the outcome of the background end+verify.
func (c *Controller) SessionEndResult(err error) []Event {
	if err != nil {
		return []Event{Notice{
			Text:  "Couldn't save the session record — the summary duration is an estimate",
			IsErr: true,
		}}
	}
	c.endVerified = true
	return []Event{Notice{Text: "Session saved"}}
}

// Summary builds the final report. Duration is the client-side clock
// either way; Estimated marks it as unconfirmed by the gateway.
func (c *Controller) Summary() Summary {
	return Summary{
		CompletedTasks:  len(c.completed),
		TotalTasks:      len(c.snapshot),
		DurationMinutes: c.durationMinutes(),
		Pomodoros:       c.pomodoros(),
		Estimated:       !c.endVerified,
	}
}

// SessionID returns the gateway-assigned record id, empty until the create
// lands (or forever, on the empty-entry path).
func (c *Controller) SessionID() string { return c.sessionID }

func (c *Controller) beginTransition() []Event {
	c.screen = ScreenTransition
	c.transitionSeq++
	return []Event{TransitionScheduled{Seq: c.transitionSeq}}
}

// allDone branches on the Guard at the instant the snapshot completes. The
// auto-unlock is applied and announced before the all-done screen exists.
func (c *Controller) allDone() []Event {
	var events []Event
	if c.guard.Locked() {
		c.guard.Disable()
		events = append(events,
			LockChanged{Locked: false},
			Notice{Text: "All tasks done — focus lock auto-unlocked"},
		)
		c.screen = ScreenAllDoneWasLocked
		return events
	}
	c.screen = ScreenAllDoneNotLocked
	return events
}

// end performs the single idempotent end transition. The EndSessionRequested
// event goes out at most once per session; reaching the summary never waits
// on it.
func (c *Controller) end() []Event {
	if c.screen == ScreenSummary {
		return nil
	}
	started := !c.startedAt.IsZero()
	c.screen = ScreenSummary
	if started && c.endedAt.IsZero() {
		c.endedAt = c.now()
	}

	if !started || c.endIssued {
		return nil
	}
	c.endIssued = true
	if c.sessionID == "" {
		// Create hasn't landed (or failed). SessionCreateResult issues the
		// deferred end if the id still arrives.
		return nil
	}
	c.endDispatched = true
	return []Event{c.endRequest()}
}

func (c *Controller) endRequest() EndSessionRequested {
	return EndSessionRequested{
		SessionID:       c.sessionID,
		DurationMinutes: c.durationMinutes(),
		Notes:           c.Notes(),
		Pomodoros:       c.pomodoros(),
	}
}

func (c *Controller) durationMinutes() int {
	if c.startedAt.IsZero() {
		return 0
	}
	mins := int(c.elapsed().Minutes())
	if mins < 0 {
		mins = 0
	}
	return mins
}

func (c *Controller) pomodoros() int {
	if c.startedAt.IsZero() {
		return 0
	}
	return int(c.elapsed() / c.opts.PomodoroLength)
}

// elapsed freezes at the end transition so the summary doesn't keep
// counting while it is on screen.
func (c *Controller) elapsed() time.Duration {
	end := c.endedAt
	if end.IsZero() {
		end = c.now()
	}
	return end.Sub(c.startedAt)
}
