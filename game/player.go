package game

import "github.com/lox/holdem/poker"

// Player represents a seated player and their state in the current hand
type Player struct {
	Name     string
	Seat     int
	Chips    int
	Hole     []poker.Card
	Folded   bool
	AllIn    bool
	Acted    bool // acted since the last bet or raise on this street
	TotalBet int  // chips committed this hand, across all streets
}

// CanAct returns true if the player can still make betting decisions
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

func (p *Player) resetHand() {
	p.Hole = nil
	p.Folded = false
	p.AllIn = false
	p.Acted = false
	p.TotalBet = 0
}
