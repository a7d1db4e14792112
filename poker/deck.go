package poker

import (
	"errors"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain in the deck
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a standard 52-card deck
type Deck struct {
	cards [52]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck that deals the given cards first, in order,
// followed by the remaining cards shuffled with rng. Used to script hands in tests.
func NewStackedDeck(rng *rand.Rand, top ...Card) (*Deck, error) {
	d := NewDeck(rng)

	var seen CardSet
	for i, c := range top {
		if !c.Valid() || seen.Contains(c) {
			return nil, ErrInvalidHand
		}
		seen.Add(c)

		// Move c into position i
		for j := i; j < len(d.cards); j++ {
			if d.cards[j] == c {
				d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
				break
			}
		}
	}
	return d, nil
}

// Shuffle restores all 52 cards to the deck and shuffles using Fisher-Yates
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

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Deal deals n cards from the top of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Burn discards the top card
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Reset returns every card to the deck and reshuffles
func (d *Deck) Reset() {
	d.Shuffle()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
