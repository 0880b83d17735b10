package flow

import (
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"
)

func newTestFlow() *Flow {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFlowStartsUnauthenticated(t *testing.T) {
	f := newTestFlow()

	require.Equal(t, Unauthenticated, f.State(1))
	require.False(t, f.CanViewResults(1))
}

func TestFlowSessionUnlocksEditingNotResults(t *testing.T) {
	f := newTestFlow()

	f.SessionStarted(1)
	require.Equal(t, AuthenticatedNoProfile, f.State(1))
	require.False(t, f.CanViewResults(1))
}

func TestFlowSubmitUnlocksResults(t *testing.T) {
	f := newTestFlow()

	f.SessionStarted(1)
	f.ProfileSubmitted(1)
	require.Equal(t, AuthenticatedWithProfile, f.State(1))
	require.True(t, f.CanViewResults(1))
}

func TestFlowSubmitWithoutSessionIgnored(t *testing.T) {
	f := newTestFlow()

	f.ProfileSubmitted(1)
	require.Equal(t, Unauthenticated, f.State(1))
}

func TestFlowSessionEndDropsAnyState(t *testing.T) {
	f := newTestFlow()

	f.SessionStarted(1)
	f.ProfileSubmitted(1)
	f.SessionEnded(1)
	require.Equal(t, Unauthenticated, f.State(1))
	require.False(t, f.CanViewResults(1))

	// A fresh session starts locked again.
	f.SessionStarted(1)
	require.Equal(t, AuthenticatedNoProfile, f.State(1))
}

func TestFlowRepeatedSessionStartKeepsState(t *testing.T) {
	f := newTestFlow()

	f.SessionStarted(1)
	f.ProfileSubmitted(1)
	f.SessionStarted(1)
	require.Equal(t, AuthenticatedWithProfile, f.State(1))
}

func TestFlowStatesAreIndependentPerUser(t *testing.T) {
	f := newTestFlow()

	f.SessionStarted(1)
	f.SessionStarted(2)
	f.ProfileSubmitted(2)

	require.Equal(t, AuthenticatedNoProfile, f.State(1))
	require.Equal(t, AuthenticatedWithProfile, f.State(2))
}

func TestFlowSubscribeObservesTransitions(t *testing.T) {
	f := newTestFlow()

	type event struct {
		userID int64
		state  State
	}
	var events []event
	release := f.Subscribe(func(userID int64, state State) {
		events = append(events, event{userID: userID, state: state})
	})

	f.SessionStarted(1)
	f.ProfileSubmitted(1)
	f.SessionEnded(1)

	require.Equal(t, []event{
		{1, AuthenticatedNoProfile},
		{1, AuthenticatedWithProfile},
		{1, Unauthenticated},
	}, events)

	release()
	f.SessionStarted(1)
	require.Len(t, events, 3)
}

func TestFlowNoNotificationWithoutTransition(t *testing.T) {
	f := newTestFlow()

	var count int
	f.Subscribe(func(int64, State) { count++ })

	f.SessionEnded(1)
	f.ProfileSubmitted(1)
	require.Zero(t, count)

	f.SessionStarted(1)
	f.SessionStarted(1)
	require.Equal(t, 1, count)

	f.ProfileSubmitted(1)
	f.ProfileSubmitted(1)
	require.Equal(t, 2, count)
}
