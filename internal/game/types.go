// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - Card: one physical card on the board.
//   - Face / Phase: per-card and per-game states.
//   - Timer / Step: the timed transitions the engine asks its caller to schedule.
//   - Game: state for a single in-progress or finished game.

package game

import "time"

// Card is one physical card. Two cards share each PairID.
type Card struct {
	UniqueID int    `json:"uniqueId"`
	PairID   int    `json:"pairId"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// Face is what the player currently sees of a card.
type Face string

const (
	FaceDown    Face = "down"
	FaceUp      Face = "up"
	FaceMatched Face = "matched"
)

// Phase is the turn state of a game.
type Phase string

const (
	PhaseIdle       Phase = "idle"        // no unresolved card face-up
	PhaseOneFlipped Phase = "one_flipped" // waiting for the second card
	PhaseResolving  Phase = "resolving"   // two cards up, gate closed
	PhaseWon        Phase = "won"
)

// Delays between a trigger and its scheduled transition.
const (
	ResolveDelay   = 600 * time.Millisecond
	RevertDelay    = 1000 * time.Millisecond
	WinDelay       = 500 * time.Millisecond
	ComboShowDelay = 1000 * time.Millisecond
	TickInterval   = time.Second
)

// TimerKind names a scheduled transition.
type TimerKind int

const (
	TimerTick TimerKind = iota
	TimerResolve
	TimerRevert
	TimerWin
	TimerComboHide
)

func (k TimerKind) String() string {
	switch k {
	case TimerTick:
		return "tick"
	case TimerResolve:
		return "resolve"
	case TimerRevert:
		return "revert"
	case TimerWin:
		return "win"
	case TimerComboHide:
		return "combo_hide"
	}
	return "unknown"
}

// Timer is a transition the caller must feed back through Game.Fire after Delay.
// Epoch ties it to the board it was issued for; Seq identifies the combo banner
// a TimerComboHide belongs to.
type Timer struct {
	Kind  TimerKind
	Delay time.Duration
	Epoch uint64
	Seq   uint64
}

// Event reports what a Select or Fire call did.
type Event string

const (
	EventNone        Event = ""
	EventFlip        Event = "flip"
	EventMatch       Event = "match"
	EventMismatch    Event = "mismatch"
	EventRevert      Event = "revert"
	EventTick        Event = "tick"
	EventComboHidden Event = "combo_hidden"
	EventWin         Event = "win"
	EventRestart     Event = "restart"
)

// Step is the outcome of one transition.
type Step struct {
	Event  Event
	Timers []Timer
}

// Result is the summary shown when a game is won.
type Result struct {
	Score     int `json:"score"`
	Elapsed   int `json:"elapsed"`
	Moves     int `json:"moves"`
	Combo     int `json:"combo"`     // streak at the moment of the win
	PeakCombo int `json:"peakCombo"` // highest streak reached during the game
}

// Game holds the state of a single board.
// Counters are exported for reading; mutate only through Select, Fire and Reset.
type Game struct {
	ID    string // Unique game identifier (uuid), stable across restarts.
	Epoch uint64 // Bumped by Reset; timers from older epochs are ignored.

	Moves     int  // Completed two-card attempts.
	Elapsed   int  // Seconds since the first valid flip.
	Combo     int  // Current consecutive-match streak.
	PeakCombo int  // Highest Combo this game.
	Score     int  // Cumulative score.
	Playing   bool // Clock running.
	CanFlip   bool // Flip gate.
	Won       bool

	deck    []Card
	index   map[int]int // uniqueId -> position in deck
	flipped []int       // Flip Set, in selection order
	matched map[int]bool

	started   bool // first valid selection seen; the clock starts once
	reverting bool // mismatch shown, waiting for TimerRevert

	banner    int    // combo shown in the banner; 0 when hidden
	bannerSeq uint64 // identifies the current banner for its hide timer
}
