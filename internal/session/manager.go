// internal/session/manager.go
//
// Manager keeps the running games, keyed by game id.
//
// Characteristics:
//   - One live game per player: starting a new one closes the previous runner.
//   - Concurrency-safe via RWMutex (concurrent lookups allowed, writes exclusive).
//   - Games idle for longer than the configured timeout are closed and dropped.
//   - Games are lost when the process restarts; only records are persisted.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/codememory/internal/clock"
	"github.com/robalobadob/codememory/internal/records"
)

// ErrNotFound is returned for unknown game ids and for games owned by someone else.
var ErrNotFound = errors.New("session: game not found")

// Manager is the registry of running games.
type Manager struct {
	mu      sync.RWMutex
	games   map[string]*Runner // keyed by game id
	byOwner map[string]string  // player -> current game id
	sched   clock.Scheduler
	repo    *records.Repo
	idle    time.Duration
}

// NewManager constructs an empty registry. A game with no selection or restart
// for idle is closed and forgotten; idle <= 0 keeps games until replaced.
func NewManager(sched clock.Scheduler, repo *records.Repo, idle time.Duration) *Manager {
	return &Manager{
		games:   make(map[string]*Runner),
		byOwner: make(map[string]string),
		sched:   sched,
		repo:    repo,
		idle:    idle,
	}
}

// Start deals a new game for owner, closing the one they had.
func (m *Manager) Start(owner string, deal DealFunc) *Runner {
	r := NewRunner(owner, deal, m.sched, m.repo)
	if m.idle > 0 {
		r.expireAfter(m.idle, m.evict)
	}

	m.mu.Lock()
	prev, hadPrev := m.games[m.byOwner[owner]]
	if hadPrev {
		delete(m.games, prev.ID())
	}
	m.games[r.ID()] = r
	m.byOwner[owner] = r.ID()
	m.mu.Unlock()

	if hadPrev {
		prev.Close()
	}
	return r
}

// Get returns owner's game with id.
func (m *Manager) Get(owner, id string) (*Runner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.games[id]
	if !ok || r.Owner() != owner {
		return nil, ErrNotFound
	}
	return r, nil
}

// evict drops r if it is still registered, then closes it.
func (m *Manager) evict(r *Runner) {
	m.mu.Lock()
	if cur, ok := m.games[r.ID()]; ok && cur == r {
		delete(m.games, r.ID())
	}
	if m.byOwner[r.Owner()] == r.ID() {
		delete(m.byOwner, r.Owner())
	}
	m.mu.Unlock()
	r.Close()
}

// Records exposes the records repo shared by every game.
func (m *Manager) Records() *records.Repo { return m.repo }

// Len is the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Close stops every game.
func (m *Manager) Close() {
	m.mu.Lock()
	games := m.games
	m.games = make(map[string]*Runner)
	m.byOwner = make(map[string]string)
	m.mu.Unlock()

	for _, r := range games {
		r.Close()
	}
}
