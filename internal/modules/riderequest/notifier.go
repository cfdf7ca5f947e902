package riderequest

import (
	"sync"

	"ride-hailing/internal/models"
)

const subscriberBuffer = 8

// Notifier fans status changes out to in-process subscribers (websocket connections),
// keyed by ride request id.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[chan models.RideRequestView]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan models.RideRequestView]struct{})}
}

// Subscribe returns a channel of updates for one ride request and a function that
// unsubscribes and closes it.
func (n *Notifier) Subscribe(id string) (<-chan models.RideRequestView, func()) {
	ch := make(chan models.RideRequestView, subscriberBuffer)

	n.mu.Lock()
	if n.subs[id] == nil {
		n.subs[id] = make(map[chan models.RideRequestView]struct{})
	}
	n.subs[id][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[id], ch)
			if len(n.subs[id]) == 0 {
				delete(n.subs, id)
			}
			n.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers view to every subscriber of its id. A subscriber whose buffer is
// full misses the update; the next one carries the full state anyway.
func (n *Notifier) Publish(view models.RideRequestView) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.subs[view.ID] {
		select {
		case ch <- view:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions for id.
func (n *Notifier) Subscribers(id string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[id])
}
