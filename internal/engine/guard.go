package engine

// Guard is the focus-lock safety gate. While locked, exit-class transitions
// are vetoed by the actions that would perform them; the Guard itself never
// vetoes its own toggle, so the unlock shortcut stays reachable.
type Guard struct {
	locked bool
}

// Enable turns the lock on. Always succeeds.
func (g *Guard) Enable() { g.locked = true }

// Disable turns the lock off. Always succeeds.
func (g *Guard) Disable() { g.locked = false }

// Toggle flips the lock and returns the new state.
func (g *Guard) Toggle() bool {
	g.locked = !g.locked
	return g.locked
}

// IsExitAllowed reports whether exit-class transitions may proceed.
func (g *Guard) IsExitAllowed() bool { return !g.locked }

// Locked reports the raw lock state.
func (g *Guard) Locked() bool { return g.locked }
