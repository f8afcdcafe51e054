package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codememory/assets"
	"github.com/robalobadob/codememory/internal/catalog"
	"github.com/robalobadob/codememory/internal/clock"
	"github.com/robalobadob/codememory/internal/records"
	"github.com/robalobadob/codememory/internal/store"
)

const testIdle = time.Minute

func newTestManager(t *testing.T) (*Manager, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual()
	m := NewManager(sched, records.NewRepo(store.NewMemoryStore()), testIdle)
	t.Cleanup(m.Close)
	return m, sched
}

func TestManager_GetChecksOwner(t *testing.T) {
	m, _ := newTestManager(t)
	r := m.Start("alice", orderedDeal(8))

	got, err := m.Get("alice", r.ID())
	require.NoError(t, err)
	assert.Same(t, r, got)

	_, err = m.Get("bob", r.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get("alice", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_StartReplacesPlayersGame(t *testing.T) {
	m, sched := newTestManager(t)
	first := m.Start("alice", orderedDeal(8))
	first.Select(0)
	first.Select(1)
	other := m.Start("bob", orderedDeal(8))

	second := m.Start("alice", orderedDeal(8))
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, m.Len())

	_, err := m.Get("alice", first.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get("bob", other.ID())
	assert.NoError(t, err)

	sched.Advance(time.Second)
	assert.Equal(t, 0, first.State().Game.Matched, "closed game receives no timers")
}

func TestManager_Close(t *testing.T) {
	m, sched := newTestManager(t)
	r := m.Start("alice", orderedDeal(8))
	r.Select(0)

	m.Close()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, sched.Pending())
}

func TestManager_EvictsIdleGames(t *testing.T) {
	m, sched := newTestManager(t)
	var ids []string
	for i := 0; i < 10; i++ {
		r := m.Start(fmt.Sprintf("anon-%d", i), orderedDeal(8))
		r.Select(0)
		ids = append(ids, r.ID())
	}
	require.Equal(t, 10, m.Len())

	sched.Advance(testIdle - time.Second)
	assert.Equal(t, 10, m.Len(), "not idle long enough yet")

	sched.Advance(time.Second)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, sched.Pending(), "evicted games stop ticking")
	_, err := m.Get("anon-0", ids[0])
	assert.ErrorIs(t, err, ErrNotFound)

	sched.Advance(24 * time.Hour)
	assert.Equal(t, 0, sched.Pending())
}

func TestManager_ActivityKeepsGameAlive(t *testing.T) {
	m, sched := newTestManager(t)
	r := m.Start("alice", orderedDeal(8))

	sched.Advance(testIdle - time.Second)
	r.Select(0)
	sched.Advance(testIdle - time.Second)
	_, err := m.Get("alice", r.ID())
	require.NoError(t, err, "the selection reset the idle timer")

	r.Restart()
	sched.Advance(testIdle - time.Second)
	_, err = m.Get("alice", r.ID())
	require.NoError(t, err, "so did the restart")

	sched.Advance(time.Second)
	_, err = m.Get("alice", r.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, sched.Pending())
}

func TestManager_ReplacedGameDoesNotEvictSuccessor(t *testing.T) {
	m, sched := newTestManager(t)
	m.Start("alice", orderedDeal(8))
	sched.Advance(testIdle / 2)
	second := m.Start("alice", orderedDeal(8))

	sched.Advance(testIdle / 2)
	_, err := m.Get("alice", second.ID())
	assert.NoError(t, err)
}

func TestManager_ZeroIdleKeepsGames(t *testing.T) {
	sched := clock.NewManual()
	m := NewManager(sched, records.NewRepo(store.NewMemoryStore()), 0)
	t.Cleanup(m.Close)
	m.Start("alice", orderedDeal(8))

	sched.Advance(24 * time.Hour)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, sched.Pending())
}

func TestDeals(t *testing.T) {
	raw, err := assets.Catalog()
	require.NoError(t, err)
	langs, err := catalog.Parse(raw)
	require.NoError(t, err)

	day := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return day }
	a := DailyDeal(langs, "salt", now)()
	b := DailyDeal(langs, "salt", now)()
	assert.Equal(t, a, b, "same day, same layout")
	assert.Len(t, a, 16)

	random := RandomDeal(langs)
	assert.ElementsMatch(t, a, random(), "same cards whatever the order")
}
