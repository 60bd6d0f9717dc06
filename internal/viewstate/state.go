// Package viewstate tracks the loading / error / data tuple of a page.
package viewstate

import (
	"context"
	"sync"

	"github.com/creatorverse/creatorverse/internal/remote"
)

// Mode is what a page renders for a given state.
type Mode int

const (
	// ModeLoading renders the loading indicator.
	ModeLoading Mode = iota
	// ModeError renders the not-found or error presentation.
	ModeError
	// ModePopulated renders the data.
	ModePopulated
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	case ModePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// State is a snapshot of one page's view-state.
// Error is empty when absent; Data is meaningful only when HasData is set.
type State[T any] struct {
	Loading bool
	Error   string
	Failure remote.Failure
	Data    T
	HasData bool
}

// Failed reports whether the last completed operation failed.
func (s State[T]) Failed() bool {
	return s.Failure != remote.FailureNone
}

// NotFound reports whether the last completed operation was a failed key lookup.
func (s State[T]) NotFound() bool {
	return s.Failure == remote.FailureNotFound
}

// Mode applies the fixed rendering precedence: loading wins, then an error
// or missing required data, then the populated state.
func (s State[T]) Mode(requireData bool) Mode {
	switch {
	case s.Loading:
		return ModeLoading
	case s.Failed() || (requireData && !s.HasData):
		return ModeError
	default:
		return ModePopulated
	}
}

// Observer is called with every new state, in transition order.
type Observer[T any] func(State[T])

// Controller drives a State through remote calls. It is safe for
// concurrent use; when calls overlap, the last one to resolve wins.
type Controller[T any] struct {
	mu        sync.Mutex
	state     State[T]
	inFlight  int
	observers []Observer[T]
}

// NewLoading returns a controller whose fetch starts on page entry.
func NewLoading[T any]() *Controller[T] {
	return &Controller[T]{state: State[T]{Loading: true}}
}

// NewIdle returns a controller with nothing outstanding.
func NewIdle[T any]() *Controller[T] {
	return &Controller[T]{}
}

// Observe registers fn for subsequent transitions.
func (c *Controller[T]) Observe(fn Observer[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin marks an operation as started and clears the previous error.
func (c *Controller[T]) Begin() {
	c.mu.Lock()
	c.inFlight++
	c.state.Loading = true
	c.state.Error = ""
	c.state.Failure = remote.FailureNone
	snap, observers := c.state, c.observers
	c.mu.Unlock()

	notify(observers, snap)
}

// Resolve completes an operation started with Begin. A failure keeps the
// previous data.
func (c *Controller[T]) Resolve(res remote.Result[T]) State[T] {
	c.mu.Lock()
	if c.inFlight > 0 {
		c.inFlight--
	}
	c.state.Loading = c.inFlight > 0
	if res.OK() {
		c.state.Data = res.Value
		c.state.HasData = true
		c.state.Error = ""
		c.state.Failure = remote.FailureNone
	} else {
		c.state.Error = res.Message
		c.state.Failure = res.Failure
	}
	snap, observers := c.state, c.observers
	c.mu.Unlock()

	notify(observers, snap)
	return snap
}

// Fail resolves an operation that never reached the remote collection.
func (c *Controller[T]) Fail(msg string) State[T] {
	return c.Resolve(remote.Err[T](msg))
}

// Run begins op, awaits it and resolves with its result.
func (c *Controller[T]) Run(ctx context.Context, op func(ctx context.Context) remote.Result[T]) State[T] {
	c.Begin()
	return c.Resolve(op(ctx))
}

func notify[T any](observers []Observer[T], s State[T]) {
	for _, fn := range observers {
		fn(s)
	}
}
