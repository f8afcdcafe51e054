package game

import (
	"math/rand/v2"

	"github.com/robalobadob/codememory/internal/catalog"
)

// NewDeck deals two cards per catalog entry and shuffles them with rng.
// Entry i yields unique ids 2i and 2i+1, both carrying the entry id as PairID.
func NewDeck(langs []catalog.Language, rng *rand.Rand) []Card {
	deck := make([]Card, 0, len(langs)*2)
	for i, l := range langs {
		c := Card{PairID: l.ID, Name: l.Name, Icon: l.Icon, Color: l.Color}
		c.UniqueID = i * 2
		deck = append(deck, c)
		c.UniqueID = i*2 + 1
		deck = append(deck, c)
	}
	Shuffle(deck, rng)
	return deck
}

// Shuffle applies a Fisher-Yates permutation in place.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// NewRand returns a generator seeded with seed. Equal seeds deal equal decks.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
