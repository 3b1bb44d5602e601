// Package engine implements the focus session core: the lifecycle
// controller and its screens, the task queue navigator, the focus lock
// guard, and the priority keyboard dispatcher.
//
// The engine is deliberately host-agnostic. Everything runs on the caller's
// single event loop; side effects (gateway writes, task mutations, timers)
// are returned as Event values for the host to execute in the background
// and report back. No screen transition ever waits on one of them.
package engine
