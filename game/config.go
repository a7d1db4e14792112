package game

import (
	"fmt"
	"strings"
)

// MaxSeats is the hard limit of players at one table
const MaxSeats = 10

// Limit selects how bets and raises are sized
type Limit int

const (
	// FixedLimit bets one big blind preflop and on the flop, two on the turn
	// and river, with at most four bets per street.
	FixedLimit Limit = iota
	// NoLimit allows any raise of at least the previous raise, up to the stack.
	NoLimit
)

func (l Limit) String() string {
	switch l {
	case FixedLimit:
		return "fixed"
	case NoLimit:
		return "no-limit"
	default:
		return "unknown"
	}
}

// ParseLimit parses "fixed" or "no-limit"
func ParseLimit(s string) (Limit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed", "limit", "fixed-limit":
		return FixedLimit, nil
	case "no-limit", "nolimit", "nl":
		return NoLimit, nil
	}
	return 0, fmt.Errorf("%w: unknown limit %q", ErrConfig, s)
}

// Config holds the table parameters fixed at construction
type Config struct {
	Name       string
	SmallBlind int
	BigBlind   int
	MinPlayers int
	MaxPlayers int
	MinBuyIn   int
	MaxBuyIn   int
	Limit      Limit
}

// Validate reports the first problem with the config, wrapped in ErrConfig
func (c Config) Validate() error {
	switch {
	case c.MinPlayers < 2:
		return fmt.Errorf("%w: min players must be at least 2, got %d", ErrConfig, c.MinPlayers)
	case c.MaxPlayers > MaxSeats:
		return fmt.Errorf("%w: max players must be at most %d, got %d", ErrConfig, MaxSeats, c.MaxPlayers)
	case c.MinPlayers > c.MaxPlayers:
		return fmt.Errorf("%w: min players %d exceeds max players %d", ErrConfig, c.MinPlayers, c.MaxPlayers)
	case c.SmallBlind <= 0 || c.BigBlind <= 0:
		return fmt.Errorf("%w: blinds must be positive", ErrConfig)
	case c.SmallBlind > c.BigBlind:
		return fmt.Errorf("%w: small blind %d exceeds big blind %d", ErrConfig, c.SmallBlind, c.BigBlind)
	case c.MinBuyIn <= 0 || c.MinBuyIn > c.MaxBuyIn:
		return fmt.Errorf("%w: buy-in range [%d, %d] is empty", ErrConfig, c.MinBuyIn, c.MaxBuyIn)
	case c.Limit != FixedLimit && c.Limit != NoLimit:
		return fmt.Errorf("%w: unknown limit %d", ErrConfig, c.Limit)
	}
	return nil
}
