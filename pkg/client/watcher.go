package client

import (
	"context"
	"time"

	"ride-hailing/internal/models"
)

const (
	DefaultPollInterval  = 3 * time.Second
	DefaultSearchTimeout = 30 * time.Second
)

// State is what the rider's screen shows while a request is followed.
type State string

const (
	StateSearching State = "SEARCHING"
	StateAccepted  State = "ACCEPTED"
	StateNoDrivers State = "NO_DRIVERS"
	StateCancelled State = "CANCELLED"
	StateCompleted State = "COMPLETED"
	StateError     State = "ERROR"
)

// Terminal reports whether the watcher stops after reaching s.
func (s State) Terminal() bool {
	return s != StateSearching
}

type Update struct {
	State       State
	RideRequest *models.RideRequestView // last polled snapshot, nil before the first poll
	Err         error
}

// StatusSource is the part of Client the Watcher needs.
type StatusSource interface {
	GetRideRequest(ctx context.Context, id string) (*models.RideRequestView, error)
}

// Watcher polls a ride request until a driver accepts it, it ends, or the search
// times out. The search timeout runs from Run's start, independent of polling.
type Watcher struct {
	Source        StatusSource
	PollInterval  time.Duration
	SearchTimeout time.Duration
	// OnUpdate, when set, is called from Run's goroutine for every poll and for the
	// final outcome.
	OnUpdate func(Update)
}

func NewWatcher(source StatusSource) *Watcher {
	return &Watcher{
		Source:        source,
		PollInterval:  DefaultPollInterval,
		SearchTimeout: DefaultSearchTimeout,
	}
}

// Run blocks until a terminal state or ctx is done; both timers are stopped on return.
// A cancelled ctx returns the last state seen with ctx.Err().
func (w *Watcher) Run(ctx context.Context, id string) Update {
	poll := time.NewTicker(w.PollInterval)
	defer poll.Stop()
	timeout := time.NewTimer(w.SearchTimeout)
	defer timeout.Stop()

	last := Update{State: StateSearching}
	for {
		select {
		case <-ctx.Done():
			last.Err = ctx.Err()
			return last

		case <-timeout.C:
			last.State = StateNoDrivers
			w.emit(last)
			return last

		case <-poll.C:
			view, err := w.Source.GetRideRequest(ctx, id)
			if err != nil {
				if ctx.Err() != nil {
					last.Err = ctx.Err()
					return last
				}
				last = Update{State: StateError, RideRequest: last.RideRequest, Err: err}
				w.emit(last)
				return last
			}
			last = Update{State: stateOf(view.Status), RideRequest: view}
			w.emit(last)
			if last.State.Terminal() {
				return last
			}
		}
	}
}

func (w *Watcher) emit(u Update) {
	if w.OnUpdate != nil {
		w.OnUpdate(u)
	}
}

func stateOf(status models.RideRequestStatus) State {
	switch status {
	case models.RideRequestAccepted, models.RideRequestInProgress:
		return StateAccepted
	case models.RideRequestCancelled:
		return StateCancelled
	case models.RideRequestCompleted:
		return StateCompleted
	case models.RideRequestRejected:
		return StateNoDrivers
	}
	return StateSearching
}
