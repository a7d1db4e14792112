package game

import "github.com/lox/holdem/poker"

// PlayerState is a read-only view of a seated player
type PlayerState struct {
	Name     string
	Seat     int
	Chips    int
	Bet      int // chips committed on the current street
	TotalBet int
	InHand   bool
	Folded   bool
	AllIn    bool
	Hole     []poker.Card // only populated for the viewing player
}

// TableState is a read-only view of the table for decision making.
// Hole cards are only included for the viewer.
type TableState struct {
	Name            string
	HandID          string
	HandNumber      int
	Street          Street
	Board           []poker.Card
	Pot             int // collected from finished streets and folds
	TotalPot        int // Pot plus the bets of the current street
	Pots            []Pot
	CurrentBet      int
	ToCall          int // for the viewer
	SmallBlind      int
	BigBlind        int
	Limit           Limit
	Button          string
	Players         []PlayerState
	ActingPlayer    string
	ActingPlayerIdx int // index into Players, -1 when nobody is due to act
	Viewer          string
}

// Player returns the state of the named player
func (s TableState) Player(name string) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerState{}, false
}

// Winner is a player's total take from a settled hand
type Winner struct {
	Name   string
	Amount int
	Rank   poker.HandRank // zero when the hand ended without a showdown
	Best   []poker.Card
}

// ShownHand is a hand revealed at showdown
type ShownHand struct {
	Name string
	Hole []poker.Card
	Rank poker.HandRank
	Best []poker.Card
}

// HandResult is the outcome of a settled hand
type HandResult struct {
	HandID     string
	HandNumber int
	Board      []poker.Card
	Showdown   bool
	Pots       []PotAward
	Winners    []Winner
	Losers     []string
	Hands      []ShownHand
	Stacks     map[string]int // chip counts after settlement
}

// Won returns the chips the named player won
func (r HandResult) Won(name string) int {
	for _, w := range r.Winners {
		if w.Name == name {
			return w.Amount
		}
	}
	return 0
}

// TotalPot returns the sum of all settled pots
func (r HandResult) TotalPot() int {
	total := 0
	for _, p := range r.Pots {
		total += p.Amount
	}
	return total
}
