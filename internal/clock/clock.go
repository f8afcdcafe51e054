// Package clock schedules the engine's delayed transitions.
//
// Real wraps time.AfterFunc for production. Manual is a deterministic
// scheduler for tests: nothing fires until Advance moves its virtual time.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop reports whether it prevented the call.
type Handle interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Real schedules on the runtime timer heap.
type Real struct{}

// AfterFunc implements Scheduler.
func (Real) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

// Manual is a virtual-time Scheduler.
//
// Thread-safety: safe for concurrent use. Callbacks run on the goroutine that
// calls Advance, with the internal mutex released, so they may schedule more work.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int64
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	at  time.Duration
	seq int64 // insertion order breaks ties between equal deadlines
	f   func()
}

// NewManual creates a scheduler at virtual time 0.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Stop removes the timer if it has not fired.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves virtual time forward by d, firing every callback that falls
// due on the way in deadline order, including ones scheduled by earlier callbacks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		m.mu.Unlock()

		next.f()
	}
}

// nextDue pops the earliest timer due at or before target. Caller holds mu.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	first := m.pending[0]
	if first.at > target {
		return nil
	}
	m.pending = m.pending[1:]
	return first
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks waiting to fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
