package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderedDeck lays out pairs side by side: ids 2k and 2k+1 share pair k+1.
func orderedDeck(pairs int) []Card {
	deck := make([]Card, 0, pairs*2)
	for k := 0; k < pairs; k++ {
		name := fmt.Sprintf("lang%d", k+1)
		deck = append(deck,
			Card{UniqueID: 2 * k, PairID: k + 1, Name: name},
			Card{UniqueID: 2*k + 1, PairID: k + 1, Name: name},
		)
	}
	return deck
}

func timerOf(t *testing.T, s Step, kind TimerKind) Timer {
	t.Helper()
	for _, tm := range s.Timers {
		if tm.Kind == kind {
			return tm
		}
	}
	require.FailNow(t, "missing timer", "no %s timer in %+v", kind, s)
	return Timer{}
}

func hasTimer(s Step, kind TimerKind) bool {
	for _, tm := range s.Timers {
		if tm.Kind == kind {
			return true
		}
	}
	return false
}

// flipTwo selects a then b and fires the resolve timer.
func flipTwo(t *testing.T, g *Game, a, b int) Step {
	t.Helper()
	require.Equal(t, EventFlip, g.Select(a).Event)
	s := g.Select(b)
	require.Equal(t, EventFlip, s.Event)
	return g.Fire(timerOf(t, s, TimerResolve))
}

func TestMatchPoints(t *testing.T) {
	assert.Equal(t, 100, MatchPoints(1))
	assert.Equal(t, 150, MatchPoints(2))
	assert.Equal(t, 200, MatchPoints(3))
	assert.Equal(t, 450, MatchPoints(8))
}

func TestSelect_FirstFlip(t *testing.T) {
	g := New(orderedDeck(8))
	assert.Equal(t, PhaseIdle, g.Phase())
	assert.True(t, g.CanFlip)
	assert.False(t, g.Playing)

	s := g.Select(0)
	assert.Equal(t, EventFlip, s.Event)
	assert.True(t, hasTimer(s, TimerTick))
	assert.False(t, hasTimer(s, TimerResolve))
	assert.Equal(t, PhaseOneFlipped, g.Phase())
	assert.Equal(t, FaceUp, g.Face(0))
	assert.True(t, g.Playing)
	assert.Equal(t, 0, g.Moves)
}

func TestSelect_SecondFlipClosesGate(t *testing.T) {
	g := New(orderedDeck(8))
	g.Select(0)
	s := g.Select(5)

	assert.Equal(t, EventFlip, s.Event)
	assert.False(t, hasTimer(s, TimerTick), "clock starts only once")
	resolve := timerOf(t, s, TimerResolve)
	assert.Equal(t, ResolveDelay, resolve.Delay)

	assert.Equal(t, 1, g.Moves)
	assert.False(t, g.CanFlip)
	assert.Equal(t, PhaseResolving, g.Phase())
	assert.Equal(t, []int{0, 5}, g.Flipped())
}

func TestSelect_ThirdCardIgnored(t *testing.T) {
	g := New(orderedDeck(8))
	g.Select(0)
	g.Select(3)
	before := BuildView(g)

	s := g.Select(6)
	assert.Equal(t, EventNone, s.Event)
	assert.Empty(t, s.Timers)
	assert.Equal(t, before, BuildView(g))
}

func TestSelect_FlippedMatchedOrUnknownIgnored(t *testing.T) {
	g := New(orderedDeck(8))

	assert.Equal(t, EventNone, g.Select(99).Event, "unknown id")
	assert.False(t, g.Playing, "ignored selection must not start the clock")

	g.Select(0)
	assert.Equal(t, EventNone, g.Select(0).Event, "already flipped")
	assert.Equal(t, []int{0}, g.Flipped())

	s := g.Select(1)
	g.Fire(timerOf(t, s, TimerResolve))
	require.Equal(t, 2, g.MatchedCount())

	before := BuildView(g)
	assert.Equal(t, EventNone, g.Select(0).Event, "already matched")
	assert.Equal(t, EventNone, g.Select(1).Event, "already matched")
	assert.Equal(t, before, BuildView(g))
}

func TestExample_MatchThenMismatch(t *testing.T) {
	g := New(orderedDeck(8))

	s := flipTwo(t, g, 0, 1) // A, B share pair 1
	assert.Equal(t, EventMatch, s.Event)
	assert.Equal(t, FaceMatched, g.Face(0))
	assert.Equal(t, FaceMatched, g.Face(1))
	assert.Equal(t, 1, g.Combo)
	assert.Equal(t, 100, g.Score)
	assert.True(t, g.CanFlip, "gate reopens immediately on a match")
	assert.Empty(t, g.Flipped())
	assert.False(t, hasTimer(s, TimerComboHide), "no banner for a streak of one")

	s = flipTwo(t, g, 2, 4) // C pair 2, D pair 3
	assert.Equal(t, EventMismatch, s.Event)
	assert.Equal(t, 0, g.Combo)
	assert.Equal(t, 100, g.Score)
	assert.False(t, g.CanFlip, "gate stays closed until the revert")
	assert.Equal(t, FaceUp, g.Face(2))
	assert.Equal(t, FaceUp, g.Face(4))
	assert.Equal(t, EventNone, g.Select(6).Event)

	revert := timerOf(t, s, TimerRevert)
	assert.Equal(t, RevertDelay, revert.Delay)
	s = g.Fire(revert)
	assert.Equal(t, EventRevert, s.Event)
	assert.Equal(t, FaceDown, g.Face(2))
	assert.Equal(t, FaceDown, g.Face(4))
	assert.True(t, g.CanFlip)
	assert.Equal(t, PhaseIdle, g.Phase())
	assert.Equal(t, 2, g.Moves)
	assert.Equal(t, 2, g.MatchedCount())
}

func TestStreakScoreAndWin(t *testing.T) {
	g := New(orderedDeck(8))
	var last Step
	for k := 0; k < 8; k++ {
		last = flipTwo(t, g, 2*k, 2*k+1)
		require.Equal(t, EventMatch, last.Event)

		n := k + 1
		assert.Equal(t, 100*n+25*n*(n-1), g.Score, "streak of %d", n)
		assert.Equal(t, n, g.Combo)
		assert.Equal(t, 2*n, g.MatchedCount())
		if n < 8 {
			assert.False(t, g.Complete())
			assert.False(t, hasTimer(last, TimerWin), "win must not trigger at %d matched", 2*n)
		}
	}

	require.True(t, g.Complete())
	assert.False(t, g.Won, "win waits for WinDelay")
	win := timerOf(t, last, TimerWin)
	assert.Equal(t, WinDelay, win.Delay)

	s := g.Fire(win)
	assert.Equal(t, EventWin, s.Event)
	assert.True(t, g.Won)
	assert.False(t, g.Playing)
	assert.Equal(t, PhaseWon, g.Phase())
	assert.Equal(t, Result{Score: 2200, Moves: 8, Combo: 8, PeakCombo: 8}, g.Result())

	assert.Equal(t, EventNone, g.Fire(win).Event, "win fires once")
}

func TestMismatchResetsLongStreak(t *testing.T) {
	g := New(orderedDeck(8))
	for k := 0; k < 5; k++ {
		flipTwo(t, g, 2*k, 2*k+1)
	}
	require.Equal(t, 5, g.Combo)

	s := flipTwo(t, g, 10, 12)
	require.Equal(t, EventMismatch, s.Event)
	assert.Equal(t, 0, g.Combo)
	assert.Equal(t, 5, g.PeakCombo)
	g.Fire(timerOf(t, s, TimerRevert))

	flipTwo(t, g, 10, 11)
	assert.Equal(t, 1, g.Combo)
	assert.Equal(t, 5, g.PeakCombo)
}

func TestClockStartsOnceAndStopsAtWin(t *testing.T) {
	g := New(orderedDeck(2))
	s := g.Select(0)
	tick := timerOf(t, s, TimerTick)
	assert.Equal(t, TickInterval, tick.Delay)

	s = g.Fire(tick)
	assert.Equal(t, EventTick, s.Event)
	assert.Equal(t, 1, g.Elapsed)
	tick = timerOf(t, s, TimerTick)

	s = g.Select(1)
	assert.False(t, hasTimer(s, TimerTick))
	g.Fire(timerOf(t, s, TimerResolve))

	s = flipTwo(t, g, 2, 3)
	g.Fire(timerOf(t, s, TimerWin))
	require.True(t, g.Won)

	s = g.Fire(tick)
	assert.Equal(t, EventNone, s.Event)
	assert.Empty(t, s.Timers, "the clock is not rescheduled after the win")
	assert.Equal(t, 1, g.Elapsed)
	assert.Equal(t, EventNone, g.Select(0).Event)
}

func TestReset_DropsStaleTimers(t *testing.T) {
	g := New(orderedDeck(8))
	id := g.ID
	tick := timerOf(t, g.Select(0), TimerTick)
	resolve := timerOf(t, g.Select(1), TimerResolve)

	s := g.Reset(orderedDeck(8))
	assert.Equal(t, EventRestart, s.Event)
	assert.Equal(t, id, g.ID)
	assert.Equal(t, uint64(1), g.Epoch)

	assert.Equal(t, EventNone, g.Fire(resolve).Event)
	assert.Equal(t, EventNone, g.Fire(tick).Event)
	assert.Equal(t, 0, g.MatchedCount())
	assert.Equal(t, 0, g.Moves)
	assert.Equal(t, 0, g.Elapsed)
	assert.False(t, g.Playing)
	assert.True(t, g.CanFlip)
	assert.Equal(t, PhaseIdle, g.Phase())

	// The fresh board starts its own clock.
	assert.True(t, hasTimer(g.Select(0), TimerTick))
}

func TestReset_DropsPendingWin(t *testing.T) {
	g := New(orderedDeck(1))
	s := flipTwo(t, g, 0, 1)
	win := timerOf(t, s, TimerWin)

	g.Reset(orderedDeck(1))
	assert.Equal(t, EventNone, g.Fire(win).Event)
	assert.False(t, g.Won)
}

func TestReset_DropsPendingRevert(t *testing.T) {
	g := New(orderedDeck(8))
	s := flipTwo(t, g, 0, 2)
	revert := timerOf(t, s, TimerRevert)

	g.Reset(orderedDeck(8))
	g.Select(4)
	assert.Equal(t, EventNone, g.Fire(revert).Event)
	assert.Equal(t, FaceUp, g.Face(4))
}

func TestComboBanner(t *testing.T) {
	g := New(orderedDeck(8))
	flipTwo(t, g, 0, 1)
	assert.Equal(t, 0, g.Banner())

	s := flipTwo(t, g, 2, 3)
	assert.Equal(t, 2, g.Banner())
	firstHide := timerOf(t, s, TimerComboHide)
	assert.Equal(t, ComboShowDelay, firstHide.Delay)
	assert.Equal(t, "2x COMBO!", BuildView(g).Banner)

	s = flipTwo(t, g, 4, 5)
	assert.Equal(t, 3, g.Banner())
	secondHide := timerOf(t, s, TimerComboHide)

	assert.Equal(t, EventNone, g.Fire(firstHide).Event, "an older banner's timer leaves the newer one up")
	assert.Equal(t, 3, g.Banner())

	assert.Equal(t, EventComboHidden, g.Fire(secondHide).Event)
	assert.Equal(t, 0, g.Banner())
	assert.Empty(t, BuildView(g).Banner)
}

func TestDuplicateResolveIgnored(t *testing.T) {
	g := New(orderedDeck(8))
	g.Select(0)
	resolve := timerOf(t, g.Select(2), TimerResolve)

	require.Equal(t, EventMismatch, g.Fire(resolve).Event)
	assert.Equal(t, EventNone, g.Fire(resolve).Event)
}

func TestBuildView_HidesFaceDownCards(t *testing.T) {
	g := New(orderedDeck(2))
	g.Select(2)

	v := BuildView(g)
	require.Len(t, v.Cards, 4)
	for _, c := range v.Cards {
		if c.UniqueID == 2 {
			assert.Equal(t, FaceUp, c.State)
			require.NotNil(t, c.PairID)
			assert.Equal(t, 2, *c.PairID)
			assert.Equal(t, "lang2", c.Name)
			continue
		}
		assert.Equal(t, FaceDown, c.State)
		assert.Nil(t, c.PairID)
		assert.Empty(t, c.Name)
	}
	assert.Equal(t, "0:00", v.Clock)
	assert.Equal(t, "-", v.ComboLabel)
	assert.Equal(t, PhaseOneFlipped, v.Phase)
}
