package timer

import (
	"sync"
	"time"
)

// Manual is a Scheduler that only fires when told to. Tests and the
// headless simulator use it to step time deterministically.
type Manual struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	f       func()
	stopped bool
}

func (e *manualEntry) Stop() bool {
	if e.stopped {
		return false
	}
	e.stopped = true
	return true
}

func (m *Manual) AfterFunc(_ time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &manualEntry{f: f}
	m.pending = append(m.pending, e)
	return &manualStopper{m: m, e: e}
}

type manualStopper struct {
	m *Manual
	e *manualEntry
}

func (s *manualStopper) Stop() bool {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.e.Stop()
}

// Pending returns the number of callbacks waiting to fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.pending {
		if !e.stopped {
			n++
		}
	}
	return n
}

// Step fires every callback that is pending now, in scheduling order.
// Callbacks scheduled while stepping wait for the next Step. It returns
// the number of callbacks fired.
func (m *Manual) Step() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	fired := 0
	for _, e := range batch {
		m.mu.Lock()
		live := !e.stopped
		e.stopped = true
		m.mu.Unlock()
		if live {
			e.f()
			fired++
		}
	}
	return fired
}

// Advance calls Step n times, standing in for n elapsed seconds.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.Step()
	}
}
