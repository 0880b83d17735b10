package flow

import (
	"log/slog"
	"sync"
)

// State enumerates the session-gated navigation states.
type State int

const (
	// Unauthenticated is the resting state; no session exists.
	Unauthenticated State = iota
	// AuthenticatedNoProfile means a session exists but nothing was submitted.
	AuthenticatedNoProfile
	// AuthenticatedWithProfile unlocks the results view.
	AuthenticatedWithProfile
)

func (s State) String() string {
	switch s {
	case AuthenticatedNoProfile:
		return "authenticated_no_profile"
	case AuthenticatedWithProfile:
		return "authenticated_with_profile"
	default:
		return "unauthenticated"
	}
}

// Listener observes per-user state transitions.
type Listener func(userID int64, state State)

// Flow is the explicit state machine gating navigation per user session:
// session acquisition moves Unauthenticated to AuthenticatedNoProfile, a
// successful submit unlocks the results view, and session loss drops any
// state back to Unauthenticated. There is no terminal state.
type Flow struct {
	logger *slog.Logger

	mu        sync.Mutex
	states    map[int64]State
	listeners map[int64]Listener
	nextID    int64
}

// New constructs an empty flow.
func New(logger *slog.Logger) *Flow {
	return &Flow{
		logger:    logger.With("component", "flow"),
		states:    make(map[int64]State),
		listeners: make(map[int64]Listener),
	}
}

// SessionStarted records session acquisition for the user. Starting a session
// that already exists keeps the current state.
func (f *Flow) SessionStarted(userID int64) {
	f.mu.Lock()
	if _, ok := f.states[userID]; ok {
		f.mu.Unlock()
		return
	}
	f.states[userID] = AuthenticatedNoProfile
	f.mu.Unlock()
	f.notify(userID, AuthenticatedNoProfile)
}

// ProfileSubmitted unlocks the results view for an authenticated user.
// Without a session the submit cannot have happened; it is ignored.
func (f *Flow) ProfileSubmitted(userID int64) {
	f.mu.Lock()
	state, ok := f.states[userID]
	if !ok {
		f.mu.Unlock()
		return
	}
	if state == AuthenticatedWithProfile {
		f.mu.Unlock()
		return
	}
	f.states[userID] = AuthenticatedWithProfile
	f.mu.Unlock()
	f.notify(userID, AuthenticatedWithProfile)
}

// SessionEnded drops the user back to Unauthenticated from any state.
func (f *Flow) SessionEnded(userID int64) {
	f.mu.Lock()
	_, ok := f.states[userID]
	delete(f.states, userID)
	f.mu.Unlock()
	if ok {
		f.notify(userID, Unauthenticated)
	}
}

// State reports the current state for the user.
func (f *Flow) State(userID int64) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[userID]
}

// CanViewResults reports whether navigation to the results view is allowed.
func (f *Flow) CanViewResults(userID int64) bool {
	return f.State(userID) == AuthenticatedWithProfile
}

// Subscribe registers a listener for state transitions and returns the
// release function. Owners must call it on teardown or the listener leaks.
func (f *Flow) Subscribe(listener Listener) func() {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.listeners[id] = listener
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *Flow) notify(userID int64, state State) {
	f.mu.Lock()
	snapshot := make([]Listener, 0, len(f.listeners))
	for _, listener := range f.listeners {
		snapshot = append(snapshot, listener)
	}
	f.mu.Unlock()

	f.logger.Debug("session state changed", "user_id", userID, "state", state.String())
	for _, listener := range snapshot {
		listener(userID, state)
	}
}
