package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitLetters = [...]byte{'c', 'd', 'h', 's'}
var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

// String returns the single-letter form of the suit ("c", "d", "h", "s")
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitLetters[s])
}

// Symbol returns the unicode suit symbol
func (s Suit) Symbol() string {
	if s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank from Two (2) to Ace (14)
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the single-character form of the rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// Name returns the English name of the rank, e.g. "King"
func (r Rank) Name() string {
	names := [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	if !r.Valid() {
		return "Unknown"
	}
	return names[r-Two]
}

// Plural returns the plural English name of the rank, e.g. "Sixes"
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Valid reports whether r is within Two..Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Two cards are equal when rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether the card is one of the 52 standard cards
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit <= Spades
}

// String returns the two-character form, e.g. "As", "Td"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Symbol returns the card with a unicode suit, e.g. "A♠"
func (c Card) Symbol() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// index returns a unique 0-51 position for the card
func (c Card) index() uint {
	return uint(c.Suit)*13 + uint(c.Rank-Two)
}

// ParseCard parses a string like "As" or "10h" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 && s[:2] == "10" {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	idx := strings.IndexByte(rankLetters, upper(s[0]))
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(Two+Rank(idx), suit), nil
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
