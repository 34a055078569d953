package assessment

import (
	"sync"
	"time"
)

// AdvanceScheduler defers cursor advancement so a just-answered question
// stays visible for a beat before the next one appears. At most one timer is
// pending per run: scheduling again supersedes the previous timer, and any
// explicit navigation cancels it.
type AdvanceScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewAdvanceScheduler() *AdvanceScheduler {
	return &AdvanceScheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arms (or re-arms) the advance timer for a run. With a
// non-positive delay fn runs synchronously.
func (s *AdvanceScheduler) Schedule(runID string, delay time.Duration, fn func()) {
	if delay <= 0 {
		s.Cancel(runID)
		fn()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[runID]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// A superseding Schedule swaps the map entry before this fires;
		// only the current timer may clear it and run.
		if s.timers[runID] == t {
			delete(s.timers, runID)
			s.mu.Unlock()
			fn()
			return
		}
		s.mu.Unlock()
	})
	s.timers[runID] = t
}

// Cancel stops any pending advance for a run. Safe to call when none is
// pending.
func (s *AdvanceScheduler) Cancel(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[runID]; ok {
		t.Stop()
		delete(s.timers, runID)
	}
}

// Stop cancels every pending timer; used on shutdown.
func (s *AdvanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
