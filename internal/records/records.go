// Package records tracks a player's best-ever results across games:
// high score, best (lowest) time and max combo.
package records

import (
	"fmt"
	"math"

	"github.com/robalobadob/codememory/internal/game"
)

// NoBestTime marks a best time that has never been set. It compares greater
// than any finite time, so the first finished game always improves on it.
const NoBestTime = math.MaxInt

// Records are the best values a player has reached.
type Records struct {
	HighScore int
	BestTime  int // seconds; NoBestTime when unset
	MaxCombo  int
}

// Default returns the records of a player who has never finished a game.
func Default() Records {
	return Records{BestTime: NoBestTime}
}

// HasBestTime reports whether a best time was recorded. Zero is a valid time.
func (r Records) HasBestTime() bool { return r.BestTime != NoBestTime }

// Outcome is what a finished game contributes to the records.
type Outcome struct {
	Score   int
	Seconds int
	Combo   int
}

// OutcomeOf maps a won game to its outcome. The combo is the peak streak of
// the game rather than the streak left standing when the last pair matched.
func OutcomeOf(res game.Result) Outcome {
	return Outcome{Score: res.Score, Seconds: res.Elapsed, Combo: res.PeakCombo}
}

// Improved flags the records an outcome beat.
type Improved struct {
	HighScore bool `json:"highScore"`
	BestTime  bool `json:"bestTime"`
	MaxCombo  bool `json:"maxCombo"`
}

// Any reports whether at least one record changed.
func (i Improved) Any() bool { return i.HighScore || i.BestTime || i.MaxCombo }

// Apply folds o into cur. Each record moves only on a strict improvement and
// independently of the other two.
func Apply(cur Records, o Outcome) (Records, Improved) {
	var imp Improved
	if o.Score > cur.HighScore {
		cur.HighScore = o.Score
		imp.HighScore = true
	}
	if o.Seconds < cur.BestTime {
		cur.BestTime = o.Seconds
		imp.BestTime = true
	}
	if o.Combo > cur.MaxCombo {
		cur.MaxCombo = o.Combo
		imp.MaxCombo = true
	}
	return cur, imp
}

// FormatBestTime renders the best time as m:ss, or "--:--" when unset.
func FormatBestTime(r Records) string {
	if !r.HasBestTime() {
		return "--:--"
	}
	return game.FormatTime(r.BestTime)
}

// FormatCombo renders a max combo as "<n>x".
func FormatCombo(n int) string {
	return fmt.Sprintf("%dx", n)
}

// View is the JSON shape of a player's records.
type View struct {
	HighScore    int    `json:"highScore"`
	BestTime     *int   `json:"bestTime"` // null when unset
	BestTimeText string `json:"bestTimeText"`
	MaxCombo     int    `json:"maxCombo"`
	MaxComboText string `json:"maxComboText"`
}

// BuildView renders r for the browser.
func BuildView(r Records) View {
	v := View{
		HighScore:    r.HighScore,
		BestTimeText: FormatBestTime(r),
		MaxCombo:     r.MaxCombo,
		MaxComboText: FormatCombo(r.MaxCombo),
	}
	if r.HasBestTime() {
		bt := r.BestTime
		v.BestTime = &bt
	}
	return v
}
