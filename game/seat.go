package game

import "github.com/lox/holdem/poker"

// Seat is a handle for acting on behalf of one player
type Seat struct {
	table *Table
	name  string
}

// Seat returns a handle for the named player. The player does not need to be
// seated yet; errors surface when the handle is used.
func (t *Table) Seat(name string) *Seat {
	return &Seat{table: t, name: name}
}

func (s *Seat) Name() string { return s.name }

func (s *Seat) Fold() error  { return s.table.PerformAction(s.name, Fold, 0) }
func (s *Seat) Check() error { return s.table.PerformAction(s.name, Check, 0) }
func (s *Seat) Call() error  { return s.table.PerformAction(s.name, Call, 0) }
func (s *Seat) AllIn() error { return s.table.PerformAction(s.name, AllIn, 0) }

// Bet opens the betting. Under fixed limit an amount of 0 bets the fixed size.
func (s *Seat) Bet(amount int) error { return s.table.PerformAction(s.name, Bet, amount) }

// Raise raises to the given street total
func (s *Seat) Raise(to int) error { return s.table.PerformAction(s.name, Raise, to) }

// Leave stands the player up, after the current hand if they are in it
func (s *Seat) Leave() error { return s.table.RemovePlayer(s.name) }

// State returns the player's view of the table
func (s *Seat) State() TableState { return s.table.Snapshot(s.name) }

// HoleCards returns the player's private cards
func (s *Seat) HoleCards() ([]poker.Card, error) { return s.table.HoleCards(s.name) }

// IsTurn reports whether the player is due to act
func (s *Seat) IsTurn() bool {
	name, ok := s.table.CurrentPlayer()
	return ok && name == s.name
}
