package engine

// Events are what the Controller returns instead of performing side effects
// itself. The engine runs on the host's single event loop; everything that
// touches the network, the task store, or a timer is handed back as an
// Event for the host to run in the background. State transitions never wait
// on an Event's outcome.

// Event is a marker interface over the engine's outbound effects.
type Event interface{ isEvent() }

// Notice is a user-visible, non-blocking message (toast/status bar).
type Notice struct {
	Text  string
	IsErr bool
}

// LockChanged fires on every Guard transition, including auto-unlock.
// Hosts use it to dim or restore chrome outside the engine's own screens.
type LockChanged struct {
	Locked bool
}

// ExitVetoed reports an exit attempt refused by the Guard. Not an error;
// state is unchanged.
type ExitVetoed struct{}

// CreateSessionRequested asks the host to open a session record at the
// gateway. The engine does not wait for the id; the host reports back via
// Controller.SessionCreateResult.
type CreateSessionRequested struct {
	TaskID     string
	Intention  string
	Background string
}

// EndSessionRequested asks the host to close the session record. Emitted at
// most once per session. SessionID is empty if the create never landed, in
// which case the host skips the write and the summary stays estimated.
type EndSessionRequested struct {
	SessionID       string
	DurationMinutes int
	Notes           []string
	Pomodoros       int
}

// TaskMutationRequested asks the owning application to apply a partial
// update to a task. The engine never writes to the task store directly.
type TaskMutationRequested struct {
	TaskID string
	Update TaskUpdate
}

// TransitionScheduled asks the host to start the interstitial auto-return
// timer. Seq identifies the timer generation: the host echoes it back via
// Controller.TransitionElapsed and stale generations are ignored, so a
// cancelled timer can never fire its callback late.
type TransitionScheduled struct {
	Seq int
}

// ExitRequested signals the host to navigate away. Fired only when the user
// dismisses the session summary.
type ExitRequested struct{}

func (Notice) isEvent()                 {}
func (LockChanged) isEvent()            {}
func (ExitVetoed) isEvent()             {}
func (CreateSessionRequested) isEvent() {}
func (EndSessionRequested) isEvent()    {}
func (TaskMutationRequested) isEvent()  {}
func (TransitionScheduled) isEvent()    {}
func (ExitRequested) isEvent()          {}
