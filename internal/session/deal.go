package session

import (
	"math/rand/v2"
	"time"

	"github.com/robalobadob/codememory/internal/catalog"
	"github.com/robalobadob/codememory/internal/daily"
	"github.com/robalobadob/codememory/internal/game"
)

// Deal modes accepted when starting a game.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// RandomDeal shuffles with a fresh seed on every call.
func RandomDeal(langs []catalog.Language) DealFunc {
	return func() []game.Card {
		return game.NewDeck(langs, game.NewRand(rand.Uint64()))
	}
}

// DailyDeal deals the layout of the current UTC day; restarts replay it.
func DailyDeal(langs []catalog.Language, salt string, now func() time.Time) DealFunc {
	return func() []game.Card {
		return game.NewDeck(langs, game.NewRand(daily.Seed(now(), salt)))
	}
}
