package records

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/store"
)

// Keys the three records are stored under, one set per player.
const (
	KeyHighScore = "codeMemoryHighScore"
	KeyBestTime  = "codeMemoryBestTime"
	KeyMaxCombo  = "codeMemoryMaxCombo"
)

// Repo loads and saves records as decimal text in a key/value store.
// An unset best time is stored as an absent key.
type Repo struct {
	kv store.Store
	mu sync.Mutex // serializes read-modify-write in Submit and Reset
}

// NewRepo wraps kv.
func NewRepo(kv store.Store) *Repo {
	return &Repo{kv: kv}
}

// Load returns owner's records. Absent or unreadable keys fall back to the defaults.
func (r *Repo) Load(ctx context.Context, owner string) (Records, error) {
	rec := Default()
	var err error
	if rec.HighScore, err = r.loadInt(ctx, owner, KeyHighScore, 0); err != nil {
		return rec, err
	}
	if rec.BestTime, err = r.loadInt(ctx, owner, KeyBestTime, NoBestTime); err != nil {
		return rec, err
	}
	if rec.MaxCombo, err = r.loadInt(ctx, owner, KeyMaxCombo, 0); err != nil {
		return rec, err
	}
	return rec, nil
}

func (r *Repo) loadInt(ctx context.Context, owner, key string, def int) (int, error) {
	raw, ok, err := r.kv.Get(ctx, owner, key)
	if err != nil {
		return def, fmt.Errorf("records: load %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		log.Warn().Str("player", owner).Str("key", key).Str("value", raw).Msg("ignoring unreadable record")
		return def, nil
	}
	return n, nil
}

// Save writes all three records for owner in one batch: either every key
// changes or none does.
func (r *Repo) Save(ctx context.Context, owner string, rec Records) error {
	b := store.Batch{Puts: map[string]string{
		KeyHighScore: strconv.Itoa(rec.HighScore),
		KeyMaxCombo:  strconv.Itoa(rec.MaxCombo),
	}}
	if rec.HasBestTime() {
		b.Puts[KeyBestTime] = strconv.Itoa(rec.BestTime)
	} else {
		b.Deletes = []string{KeyBestTime}
	}
	if err := r.kv.Write(ctx, owner, b); err != nil {
		return fmt.Errorf("records: save: %w", err)
	}
	return nil
}

// Submit folds a finished game into owner's records and persists them when
// anything improved. It returns the records after the update.
func (r *Repo) Submit(ctx context.Context, owner string, o Outcome) (Records, Improved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.Load(ctx, owner)
	if err != nil {
		return cur, Improved{}, err
	}
	next, imp := Apply(cur, o)
	if !imp.Any() {
		return cur, imp, nil
	}
	if err := r.Save(ctx, owner, next); err != nil {
		return cur, Improved{}, err
	}
	return next, imp, nil
}

// Reset restores owner's records to the defaults.
func (r *Repo) Reset(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Save(ctx, owner, Default())
}
