package riderequest

import (
	"sync"
	"time"
)

// Scheduler runs one-shot jobs keyed by ride request id. A job can be cancelled
// until it starts; Stop cancels everything pending and waits for running jobs.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	running sync.WaitGroup
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arranges for fn to run once after delay. Scheduling an id that already has
// a pending job replaces it. It is a no-op after Stop.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if old, ok := s.timers[id]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.timers[id] != t {
			// cancelled or replaced after the timer already fired
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.running.Add(1)
		s.mu.Unlock()

		defer s.running.Done()
		fn()
	})
	s.timers[id] = t
}

// Cancel drops the pending job for id. It reports whether a job was still pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, id)
	return true
}

// Pending returns the number of jobs that have not started yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.running.Wait()
}
