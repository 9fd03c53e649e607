package poker

import (
	"errors"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when a card is requested from an empty deck.
var ErrDeckExhausted = errors.New("deck exhausted")

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Deck represents a deck of cards dealt from the top.
type Deck struct {
	cards []Card
	full  []Card // the deck composition restored by Reset
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled 52-card deck with an explicit RNG.
// A nil rng falls back to the global math/rand/v2 source.
func NewDeck(rng *rand.Rand) *Deck {
	full := make([]Card, 0, DeckSize)
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			full = append(full, NewCard(rank, suit))
		}
	}
	return NewDeckWithCards(rng, full)
}

// NewDeckWithCards creates a shuffled deck containing exactly the given cards.
// It is mostly useful for short decks in tests.
func NewDeckWithCards(rng *rand.Rand, cards []Card) *Deck {
	full := make([]Card, len(cards))
	copy(full, cards)

	d := &Deck{
		cards: make([]Card, len(full)),
		full:  full,
		rng:   rng,
	}
	d.Reset()
	return d
}

// Shuffle shuffles the remaining order using Fisher-Yates and rewinds to the top.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Reset restores every card to the deck and reshuffles it.
func (d *Deck) Reset() {
	copy(d.cards, d.full)
	d.Shuffle()
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return 0, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
