// internal/session/runner.go
//
// Runner drives one game against a clock.
// Responsibilities:
//   - Serialize selections and timer callbacks on a single mutex.
//   - Schedule the timers the engine returns and feed them back when they fire.
//   - Cancel every pending timer on restart/close, so nothing from an old board
//     reaches a new one. The engine's epoch check catches a callback that was
//     already waiting on the mutex when Stop ran.
//   - Submit the result to the records repo on win and fan updates out to subscribers.
//   - Optionally expire after a period without selections or restarts, so an
//     abandoned game stops ticking (see expireAfter).

package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/clock"
	"github.com/robalobadob/codememory/internal/game"
	"github.com/robalobadob/codememory/internal/records"
)

// recordsTimeout bounds the records write made when a game is won.
const recordsTimeout = 5 * time.Second

// subscriberBuffer is how many updates a slow subscriber may lag before updates are dropped.
const subscriberBuffer = 64

// DealFunc returns a freshly shuffled deck.
type DealFunc func() []game.Card

// Summary is the win screen: final score, time and moves, and the records it set.
type Summary struct {
	Score    int              `json:"score"`
	Elapsed  int              `json:"elapsed"`
	Time     string           `json:"time"`
	Moves    int              `json:"moves"`
	Improved records.Improved `json:"improved"`
	Records  *records.View    `json:"records,omitempty"` // nil when the records could not be updated
}

// Update is pushed to subscribers after every transition.
type Update struct {
	Type   game.Event `json:"type"`
	Game   game.View  `json:"game"`
	Result *Summary   `json:"result,omitempty"`
}

// Runner owns one game for one player.
type Runner struct {
	mu      sync.Mutex
	g       *game.Game
	owner   string
	deal    DealFunc
	sched   clock.Scheduler
	repo    *records.Repo
	handles map[uint64]clock.Handle
	nextID  uint64
	subs    map[chan Update]struct{}
	summary *Summary
	closed  bool
	log     zerolog.Logger

	idle     time.Duration // 0 disables expiry
	onIdle   func(*Runner)
	idleStop clock.Handle
	idleGen  uint64 // identifies the current idle timer
}

// NewRunner deals a first board. Nothing is scheduled until the first selection.
func NewRunner(owner string, deal DealFunc, sched clock.Scheduler, repo *records.Repo) *Runner {
	g := game.New(deal())
	return &Runner{
		g:       g,
		owner:   owner,
		deal:    deal,
		sched:   sched,
		repo:    repo,
		handles: make(map[uint64]clock.Handle),
		subs:    make(map[chan Update]struct{}),
		log:     log.With().Str("game", g.ID).Str("player", owner).Logger(),
	}
}

// ID is the game id. It does not change across restarts.
func (r *Runner) ID() string { return r.g.ID }

// Owner is the player the game belongs to.
func (r *Runner) Owner() string { return r.owner }

// State returns the current board without changing it.
func (r *Runner) State() Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(game.EventNone)
}

// Select forwards a card selection to the engine. Ignored selections return
// the unchanged state and notify nobody.
func (r *Runner) Select(uniqueID int) Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.snapshot(game.EventNone)
	}
	r.touch()
	step := r.g.Select(uniqueID)
	r.apply(step)
	return r.snapshot(step.Event)
}

// Restart cancels everything pending and deals a new board.
func (r *Runner) Restart() Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.snapshot(game.EventNone)
	}
	r.touch()
	r.stopAll()
	r.summary = nil
	step := r.g.Reset(r.deal())
	r.apply(step)
	r.log.Debug().Uint64("epoch", r.g.Epoch).Msg("restarted")
	return r.snapshot(step.Event)
}

// Close cancels pending timers and ends every subscription. Further calls are no-ops.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.stopAll()
	if r.idleStop != nil {
		r.idleStop.Stop()
	}
	for ch := range r.subs {
		close(ch)
		delete(r.subs, ch)
	}
}

// Subscribe returns the current board, a channel of the updates that follow it,
// and a function that ends the subscription. The snapshot and the registration
// happen under one lock, so the channel holds exactly the updates newer than it.
// The channel is closed when cancel is called or the runner closes.
func (r *Runner) Subscribe() (Update, <-chan Update, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.snapshot(game.EventNone)
	ch := make(chan Update, subscriberBuffer)
	if r.closed {
		close(ch)
		return now, ch, func() {}
	}
	r.subs[ch] = struct{}{}
	return now, ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[ch]; ok {
			delete(r.subs, ch)
			close(ch)
		}
	}
}

// apply schedules step's timers, settles a win, and notifies subscribers. Caller holds mu.
func (r *Runner) apply(step game.Step) {
	if step.Event == game.EventNone {
		return
	}
	for _, t := range step.Timers {
		r.schedule(t)
	}
	if step.Event == game.EventWin {
		r.finish()
	}
	r.publish(r.snapshot(step.Event))
}

// expireAfter arms the idle timer: fn runs once d passes without a selection
// or restart. Call before the runner is shared.
func (r *Runner) expireAfter(d time.Duration, fn func(*Runner)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle, r.onIdle = d, fn
	r.touch()
}

// touch restarts the idle timer. Caller holds mu.
func (r *Runner) touch() {
	if r.idle <= 0 || r.closed {
		return
	}
	if r.idleStop != nil {
		r.idleStop.Stop()
	}
	r.idleGen++
	gen := r.idleGen
	r.idleStop = r.sched.AfterFunc(r.idle, func() { r.expire(gen) })
}

func (r *Runner) expire(gen uint64) {
	r.mu.Lock()
	if r.closed || gen != r.idleGen {
		r.mu.Unlock()
		return
	}
	fn := r.onIdle
	r.mu.Unlock()

	r.log.Info().Dur("idle", r.idle).Msg("game expired")
	fn(r)
}

func (r *Runner) schedule(t game.Timer) {
	r.nextID++
	id := r.nextID
	r.handles[id] = r.sched.AfterFunc(t.Delay, func() { r.fire(id, t) })
}

func (r *Runner) fire(id uint64, t game.Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	delete(r.handles, id)
	step := r.g.Fire(t)
	if step.Event == game.EventNone {
		r.log.Debug().Stringer("timer", t.Kind).Uint64("epoch", t.Epoch).Msg("stale timer ignored")
		return
	}
	r.apply(step)
}

func (r *Runner) stopAll() {
	for id, h := range r.handles {
		h.Stop()
		delete(r.handles, id)
	}
}

// finish records the win. A failed records write is logged; the win stands.
func (r *Runner) finish() {
	res := r.g.Result()
	sum := &Summary{
		Score:   res.Score,
		Elapsed: res.Elapsed,
		Time:    game.FormatTime(res.Elapsed),
		Moves:   res.Moves,
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordsTimeout)
	defer cancel()
	rec, imp, err := r.repo.Submit(ctx, r.owner, records.OutcomeOf(res))
	if err != nil {
		r.log.Error().Err(err).Msg("submit records")
	} else {
		view := records.BuildView(rec)
		sum.Improved = imp
		sum.Records = &view
	}
	r.summary = sum

	r.log.Info().
		Int("score", res.Score).
		Int("elapsed", res.Elapsed).
		Int("moves", res.Moves).
		Bool("new_record", imp.Any()).
		Msg("game won")
}

func (r *Runner) publish(u Update) {
	for ch := range r.subs {
		select {
		case ch <- u:
		default:
			r.log.Warn().Str("event", string(u.Type)).Msg("subscriber lagging, update dropped")
		}
	}
}

func (r *Runner) snapshot(ev game.Event) Update {
	return Update{Type: ev, Game: game.BuildView(r.g), Result: r.summary}
}
