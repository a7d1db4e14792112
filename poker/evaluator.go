package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidHand is returned when a card set cannot be evaluated
var ErrInvalidHand = errors.New("invalid hand")

// Category enumerates the categories of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the category label
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the strength of a poker hand. Higher values are stronger and equal
// values tie.
//
// Layout: bits 20-23 hold the Category, bits 0-19 hold up to five 4-bit ranks,
// most significant first (primary ranks, then kickers).
type HandRank uint32

const categoryShift = 20

// Category returns the hand category
func (hr HandRank) Category() Category {
	return Category(hr >> categoryShift)
}

// Ranks returns the encoded ranks, primary ranks first. Unused slots are omitted.
func (hr HandRank) Ranks() []Rank {
	ranks := make([]Rank, 0, 5)
	for i := range 5 {
		r := Rank(hr >> (16 - 4*i) & 0xF)
		if r == 0 {
			break
		}
		ranks = append(ranks, r)
	}
	return ranks
}

// String returns the category label, e.g. "Full House"
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Describe returns a human readable description, e.g. "Two Pair, Kings and Fives"
func (hr HandRank) Describe() string {
	r := hr.Ranks()
	if len(r) == 0 {
		return "Unknown"
	}
	switch hr.Category() {
	case HighCard:
		return fmt.Sprintf("High Card, %s", r[0].Name())
	case Pair:
		return fmt.Sprintf("Pair of %s", r[0].Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", r[0].Plural(), r[1].Plural())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", r[0].Plural())
	case Straight:
		return fmt.Sprintf("Straight, %s high", r[0].Name())
	case Flush:
		return fmt.Sprintf("Flush, %s high", r[0].Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", r[0].Plural(), r[1].Plural())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", r[0].Plural())
	case StraightFlush:
		if r[0] == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", r[0].Name())
	default:
		return "Unknown"
	}
}

// Compare returns 1 if a wins, -1 if b wins, 0 for a tie
func Compare(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func makeRank(cat Category, ranks []Rank) HandRank {
	hr := HandRank(cat) << categoryShift
	for i, r := range ranks {
		if i == 5 {
			break
		}
		hr |= HandRank(r) << (16 - 4*i)
	}
	return hr
}

// rankCounts is the tally every rule in the decision table reads from
type rankCounts struct {
	perRank  [Ace + 1]uint8
	perSuit  [4]uint8
	suitMask [4]uint16 // bit r set when rank r is present in that suit
	mask     uint16    // bit r set when rank r is present in any suit
}

func countCards(cards []Card) rankCounts {
	var c rankCounts
	for _, card := range cards {
		c.perRank[card.Rank]++
		c.perSuit[card.Suit]++
		c.suitMask[card.Suit] |= 1 << card.Rank
		c.mask |= 1 << card.Rank
	}
	return c
}

// withCount returns ranks appearing at least n times, highest first
func (c *rankCounts) withCount(n uint8) []Rank {
	var out []Rank
	for r := Ace; r >= Two; r-- {
		if c.perRank[r] >= n {
			out = append(out, r)
		}
	}
	return out
}

// flushMask returns the rank mask of a suit holding five or more cards
func (c *rankCounts) flushMask() (uint16, bool) {
	for s, n := range c.perSuit {
		if n >= 5 {
			return c.suitMask[s], true
		}
	}
	return 0, false
}

// topRanks returns the n highest ranks in mask, excluding the given ranks
func topRanks(mask uint16, n int, exclude ...Rank) []Rank {
	for _, r := range exclude {
		mask &^= 1 << r
	}
	out := make([]Rank, 0, n)
	for mask != 0 && len(out) < n {
		r := Rank(bits.Len16(mask) - 1)
		out = append(out, r)
		mask &^= 1 << r
	}
	return out
}

// straightHigh returns the high card of the best straight in mask, or 0.
// The ace also plays low, so A-2-3-4-5 reports Five.
func straightHigh(mask uint16) Rank {
	if mask&(1<<Ace) != 0 {
		mask |= 1 << 1
	}
	for high := Ace; high >= Five; high-- {
		window := uint16(0x1F) << (high - 4)
		if mask&window == window {
			return high
		}
	}
	return 0
}

// rule matches one category and yields the ranks that order hands within it
type rule struct {
	category Category
	match    func(c *rankCounts) ([]Rank, bool)
}

// rules is ordered strongest first; the first match wins
var rules = [...]rule{
	{StraightFlush, func(c *rankCounts) ([]Rank, bool) {
		fm, ok := c.flushMask()
		if !ok {
			return nil, false
		}
		high := straightHigh(fm)
		return []Rank{high}, high != 0
	}},
	{FourOfAKind, func(c *rankCounts) ([]Rank, bool) {
		quads := c.withCount(4)
		if len(quads) == 0 {
			return nil, false
		}
		return append([]Rank{quads[0]}, topRanks(c.mask, 1, quads[0])...), true
	}},
	{FullHouse, func(c *rankCounts) ([]Rank, bool) {
		trips := c.withCount(3)
		if len(trips) == 0 {
			return nil, false
		}
		for _, p := range c.withCount(2) {
			if p != trips[0] {
				return []Rank{trips[0], p}, true
			}
		}
		return nil, false
	}},
	{Flush, func(c *rankCounts) ([]Rank, bool) {
		fm, ok := c.flushMask()
		if !ok {
			return nil, false
		}
		return topRanks(fm, 5), true
	}},
	{Straight, func(c *rankCounts) ([]Rank, bool) {
		high := straightHigh(c.mask)
		return []Rank{high}, high != 0
	}},
	{ThreeOfAKind, func(c *rankCounts) ([]Rank, bool) {
		trips := c.withCount(3)
		if len(trips) == 0 {
			return nil, false
		}
		return append([]Rank{trips[0]}, topRanks(c.mask, 2, trips[0])...), true
	}},
	{TwoPair, func(c *rankCounts) ([]Rank, bool) {
		pairs := c.withCount(2)
		if len(pairs) < 2 {
			return nil, false
		}
		return append([]Rank{pairs[0], pairs[1]}, topRanks(c.mask, 1, pairs[0], pairs[1])...), true
	}},
	{Pair, func(c *rankCounts) ([]Rank, bool) {
		pairs := c.withCount(2)
		if len(pairs) == 0 {
			return nil, false
		}
		return append([]Rank{pairs[0]}, topRanks(c.mask, 3, pairs[0])...), true
	}},
	{HighCard, func(c *rankCounts) ([]Rank, bool) {
		return topRanks(c.mask, 5), true
	}},
}

// Evaluate scores the best five-card hand that can be made from 5 to 7 cards.
// The result does not depend on card order and the input is not modified.
func Evaluate(cards []Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidHand, len(cards))
	}
	var seen CardSet
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: invalid card %v", ErrInvalidHand, c)
		}
		if seen.Contains(c) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen.Add(c)
	}
	return evaluateUnchecked(cards), nil
}

// MustEvaluate is like Evaluate but panics on invalid input
func MustEvaluate(cards []Card) HandRank {
	hr, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return hr
}

func evaluateUnchecked(cards []Card) HandRank {
	c := countCards(cards)
	for _, r := range rules {
		if ranks, ok := r.match(&c); ok {
			return makeRank(r.category, ranks)
		}
	}
	// HighCard always matches
	panic("unreachable")
}

// BestHand returns the five cards forming the strongest hand along with its rank.
// When several five-card subsets tie, the first in input order is returned.
func BestHand(cards []Card) ([]Card, HandRank, error) {
	best, err := Evaluate(cards)
	if err != nil {
		return nil, 0, err
	}

	n := len(cards)
	five := make([]Card, 5)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						if evaluateUnchecked(five) == best {
							return five, best, nil
						}
					}
				}
			}
		}
	}
	return nil, 0, fmt.Errorf("%w: no five card subset matches", ErrInvalidHand)
}
