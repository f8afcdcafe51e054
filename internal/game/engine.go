// internal/game/engine.go
//
// Turn engine for a single memory game.
// Responsibilities:
//   - Accept card selections and enforce the flip gate (at most two unresolved cards up).
//   - Resolve a flipped pair after ResolveDelay: match grows the matched set and the combo,
//     mismatch resets the combo and flips both cards back after RevertDelay.
//   - Score matches with the combo bonus and detect the win once every card is matched.
//   - Run the game clock one tick per second from the first valid selection to the win.
//
// Notes:
//   - The engine never sleeps or schedules anything itself. Every delayed transition is
//     returned as a Timer and takes effect only when the caller hands it back to Fire.
//   - Reset bumps Epoch; Fire drops timers from any other epoch.
package game

import (
	"time"

	"github.com/google/uuid"
)

// Score awarded for the first match of a streak, and per streak level after it.
const (
	baseMatchPoints = 100
	comboStepPoints = 50
)

// New constructs a game over deck. The deck is copied.
func New(deck []Card) *Game {
	g := &Game{ID: uuid.NewString()}
	g.load(deck)
	return g
}

// Reset deals a fresh board under the same game ID and invalidates every
// outstanding timer.
func (g *Game) Reset(deck []Card) Step {
	g.Epoch++
	g.load(deck)
	return Step{Event: EventRestart}
}

func (g *Game) load(deck []Card) {
	g.Moves, g.Elapsed, g.Score = 0, 0, 0
	g.Combo, g.PeakCombo = 0, 0
	g.Playing, g.Won, g.started, g.reverting = false, false, false, false
	g.CanFlip = true

	g.deck = append([]Card(nil), deck...)
	g.index = make(map[int]int, len(g.deck))
	for i, c := range g.deck {
		g.index[c.UniqueID] = i
	}
	g.flipped = nil
	g.matched = make(map[int]bool, len(g.deck))
	g.banner = 0
}

// MatchPoints is the score for a match that brings the streak to combo.
func MatchPoints(combo int) int {
	if combo > 1 {
		return baseMatchPoints + (combo-1)*comboStepPoints
	}
	return baseMatchPoints
}

// Select turns the card with uniqueID face-up.
// Selections are ignored (EventNone, no state change) while the gate is closed,
// when two cards are already up, after the win, and for unknown, flipped or
// matched cards.
func (g *Game) Select(uniqueID int) Step {
	if g.Won || !g.CanFlip || len(g.flipped) >= 2 {
		return Step{}
	}
	if _, ok := g.index[uniqueID]; !ok || g.matched[uniqueID] || g.isFlipped(uniqueID) {
		return Step{}
	}

	g.flipped = append(g.flipped, uniqueID)
	step := Step{Event: EventFlip}

	if !g.started {
		g.started, g.Playing = true, true
		step.Timers = append(step.Timers, g.timer(TimerTick, TickInterval))
	}
	if len(g.flipped) == 2 {
		g.Moves++
		g.CanFlip = false
		step.Timers = append(step.Timers, g.timer(TimerResolve, ResolveDelay))
	}
	return step
}

// Fire applies a timer previously returned by Select or Fire.
func (g *Game) Fire(t Timer) Step {
	if t.Epoch != g.Epoch {
		return Step{}
	}
	switch t.Kind {
	case TimerTick:
		return g.tick()
	case TimerResolve:
		return g.resolve()
	case TimerRevert:
		return g.revert()
	case TimerWin:
		return g.win()
	case TimerComboHide:
		return g.hideBanner(t.Seq)
	}
	return Step{}
}

func (g *Game) tick() Step {
	if !g.Playing {
		return Step{}
	}
	g.Elapsed++
	return Step{Event: EventTick, Timers: []Timer{g.timer(TimerTick, TickInterval)}}
}

func (g *Game) resolve() Step {
	if len(g.flipped) != 2 || g.reverting {
		return Step{}
	}
	a := g.deck[g.index[g.flipped[0]]]
	b := g.deck[g.index[g.flipped[1]]]

	if a.PairID != b.PairID {
		g.Combo = 0
		g.reverting = true
		return Step{Event: EventMismatch, Timers: []Timer{g.timer(TimerRevert, RevertDelay)}}
	}

	g.matched[a.UniqueID] = true
	g.matched[b.UniqueID] = true
	g.flipped = nil
	g.CanFlip = true

	g.Combo++
	if g.Combo > g.PeakCombo {
		g.PeakCombo = g.Combo
	}
	g.Score += MatchPoints(g.Combo)

	step := Step{Event: EventMatch}
	if g.Combo > 1 {
		g.bannerSeq++
		g.banner = g.Combo
		hide := g.timer(TimerComboHide, ComboShowDelay)
		hide.Seq = g.bannerSeq
		step.Timers = append(step.Timers, hide)
	}
	if g.Complete() {
		step.Timers = append(step.Timers, g.timer(TimerWin, WinDelay))
	}
	return step
}

func (g *Game) revert() Step {
	if !g.reverting {
		return Step{}
	}
	g.flipped = nil
	g.reverting = false
	g.CanFlip = true
	return Step{Event: EventRevert}
}

func (g *Game) win() Step {
	if g.Won || !g.Complete() {
		return Step{}
	}
	g.Won = true
	g.Playing = false
	return Step{Event: EventWin}
}

func (g *Game) hideBanner(seq uint64) Step {
	if g.banner == 0 || seq != g.bannerSeq {
		return Step{}
	}
	g.banner = 0
	return Step{Event: EventComboHidden}
}

func (g *Game) timer(kind TimerKind, d time.Duration) Timer {
	return Timer{Kind: kind, Delay: d, Epoch: g.Epoch}
}

func (g *Game) isFlipped(id int) bool {
	for _, f := range g.flipped {
		if f == id {
			return true
		}
	}
	return false
}

// Phase reports the turn state.
func (g *Game) Phase() Phase {
	if g.Won {
		return PhaseWon
	}
	switch len(g.flipped) {
	case 0:
		return PhaseIdle
	case 1:
		return PhaseOneFlipped
	}
	return PhaseResolving
}

// Face reports how the card with uniqueID is showing.
func (g *Game) Face(uniqueID int) Face {
	if g.matched[uniqueID] {
		return FaceMatched
	}
	if g.isFlipped(uniqueID) {
		return FaceUp
	}
	return FaceDown
}

// Flipped returns the unresolved face-up ids in selection order.
func (g *Game) Flipped() []int { return append([]int(nil), g.flipped...) }

// MatchedCount is the size of the matched set.
func (g *Game) MatchedCount() int { return len(g.matched) }

// Complete reports whether every card is matched. The win follows after WinDelay.
func (g *Game) Complete() bool { return len(g.deck) > 0 && len(g.matched) == len(g.deck) }

// Banner is the combo currently announced, or 0.
func (g *Game) Banner() int { return g.banner }

// Result summarizes the game for the win screen and the records ledger.
func (g *Game) Result() Result {
	return Result{
		Score:     g.Score,
		Elapsed:   g.Elapsed,
		Moves:     g.Moves,
		Combo:     g.Combo,
		PeakCombo: g.PeakCombo,
	}
}
