// Package fetch tracks the state of a repeatable, non-cancellable fetch and
// drops results that arrive after a newer request has started.
package fetch

import (
	"sync"

	"ColdStore.wms/internal/models"
)

// State is a copy of the tracker's view of the latest fetch.
type State[T any] struct {
	Data    T
	HasData bool
	Status  models.LoadingState
	Error   string
}

// Ticket identifies one request. Only the newest ticket may resolve.
type Ticket uint64

// Tracker is safe for concurrent use.
type Tracker[T any] struct {
	mu     sync.Mutex
	gen    uint64
	closed bool
	state  State[T]

	// status and error in effect before the latest Begin
	prevStatus models.LoadingState
	prevError  string
}

// NewTracker returns an idle tracker.
func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{state: State[T]{Status: models.StateIdle}}
}

// Begin starts a request, superseding any outstanding one.
func (t *Tracker[T]) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if !t.closed {
		if t.state.Status != models.StateLoading {
			t.prevStatus = t.state.Status
			t.prevError = t.state.Error
		}
		t.state.Status = models.StateLoading
		t.state.Error = ""
	}
	return Ticket(t.gen)
}

// Resolve records the outcome of ticket's request. It returns false and leaves
// the state untouched when the ticket is stale or the tracker is closed.
// Previous data is kept on error.
func (t *Tracker[T]) Resolve(ticket Ticket, data T, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || uint64(ticket) != t.gen {
		return false
	}
	if err != nil {
		t.state.Status = models.StateError
		t.state.Error = err.Error()
		return true
	}
	t.state.Data = data
	t.state.HasData = true
	t.state.Status = models.StateSuccess
	t.state.Error = ""
	return true
}

// Abandon withdraws ticket's request without an outcome, for a caller that
// went away mid-fetch. The state returns to what it was before the request.
func (t *Tracker[T]) Abandon(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || uint64(ticket) != t.gen {
		return false
	}
	t.state.Status = t.prevStatus
	t.state.Error = t.prevError
	return true
}

// Current reports whether ticket is still the newest request.
func (t *Tracker[T]) Current(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed && uint64(ticket) == t.gen
}

// Close makes every outstanding ticket stale. Later Begin calls still hand out
// tickets but nothing resolves.
func (t *Tracker[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// State returns a snapshot.
func (t *Tracker[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
