package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/poker"
)

// State returns the table lifecycle state
func (t *Table) State() State {
	return t.state
}

// HandNumber returns the number of hands dealt so far
func (t *Table) HandNumber() int {
	return t.handCount
}

// HandID returns the identifier of the current or most recent hand
func (t *Table) HandID() string {
	if t.hand == nil {
		return ""
	}
	return t.hand.id
}

// Board returns the community cards of the current or most recent hand
func (t *Table) Board() []poker.Card {
	if t.hand == nil {
		return nil
	}
	return slices.Clone(t.hand.board)
}

// Pot returns the chips collected from finished streets and folds
func (t *Table) Pot() int {
	if t.state != HandInProgress {
		return 0
	}
	return t.hand.pot
}

// TotalPot returns the pot plus the bets of the current street
func (t *Table) TotalPot() int {
	if t.state != HandInProgress {
		return 0
	}
	return t.hand.pot + sum(t.hand.round.Bets)
}

// Pots returns the main pot and side pots as they would be split now
func (t *Table) Pots() []Pot {
	if t.state != HandInProgress {
		return nil
	}
	stakes := make([]Stake, len(t.hand.players))
	for i, p := range t.hand.players {
		stakes[i] = Stake{Name: p.Name, Committed: p.TotalBet, Folded: p.Folded, AllIn: p.AllIn}
	}
	return SidePots(stakes)
}

// CurrentBet returns the highest street total in the current betting round
func (t *Table) CurrentBet() int {
	if t.state != HandInProgress {
		return 0
	}
	return t.hand.round.CurrentBet
}

// Street returns the street being played, or Showdown once the hand is over
func (t *Table) Street() Street {
	if t.hand == nil {
		return Preflop
	}
	return t.hand.round.Street
}

// CurrentPlayer returns the name of the player due to act
func (t *Table) CurrentPlayer() (string, bool) {
	if t.state != HandInProgress || t.hand.round.Turn < 0 {
		return "", false
	}
	return t.hand.players[t.hand.round.Turn].Name, true
}

// Button returns the name of the player on the button
func (t *Table) Button() string {
	if t.hand == nil {
		return ""
	}
	return t.hand.players[t.hand.button].Name
}

// ValidActions returns the actions open to the player due to act
func (t *Table) ValidActions() []ValidAction {
	if t.state != HandInProgress || t.hand.round.Turn < 0 {
		return nil
	}
	return t.hand.round.ValidActions(t.hand.players, t.hand.round.Turn)
}

// Players returns the public state of every seated player, in seat order
func (t *Table) Players() []PlayerState {
	var seated []*Player
	for _, p := range t.seats {
		if p != nil {
			seated = append(seated, p)
		}
	}
	var round *BettingRound
	if t.state == HandInProgress {
		round = t.hand.round
	}
	return t.playerStates(seated, round, "")
}

// HoleCards returns a player's private cards for the current or last hand
func (t *Table) HoleCards(name string) ([]poker.Card, error) {
	p := t.find(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	return slices.Clone(p.Hole), nil
}

// LastResult returns the outcome of the most recently settled hand
func (t *Table) LastResult() (HandResult, bool) {
	if t.last == nil {
		return HandResult{}, false
	}
	return *t.last, true
}

// Snapshot returns the table as seen by viewer. Only the viewer's hole cards
// are included; an empty viewer sees none.
func (t *Table) Snapshot(viewer string) TableState {
	state := TableState{
		Name:            t.cfg.Name,
		SmallBlind:      t.cfg.SmallBlind,
		BigBlind:        t.cfg.BigBlind,
		Limit:           t.cfg.Limit,
		HandNumber:      t.handCount,
		ActingPlayerIdx: -1,
		Viewer:          viewer,
	}
	if t.hand == nil {
		state.Players = t.Players()
		return state
	}

	h := t.hand
	state.HandID = h.id
	state.Street = h.round.Street
	state.Board = slices.Clone(h.board)
	state.Button = h.players[h.button].Name
	state.Pot = t.Pot()
	state.TotalPot = t.TotalPot()
	state.Pots = t.Pots()
	state.CurrentBet = t.CurrentBet()

	var round *BettingRound
	if t.state == HandInProgress {
		round = h.round
		if i := h.index(viewer); i >= 0 {
			state.ToCall = round.ToCall(i)
		}
	}
	state.Players = t.playerStates(h.players, round, viewer)
	if name, ok := t.CurrentPlayer(); ok {
		state.ActingPlayer = name
		state.ActingPlayerIdx = slices.IndexFunc(state.Players, func(p PlayerState) bool { return p.Name == name })
	}
	return state
}

// playerStates builds views of players. Street bets come from round when it
// is non-nil and players is the hand's player list.
func (t *Table) playerStates(players []*Player, round *BettingRound, viewer string) []PlayerState {
	states := make([]PlayerState, len(players))
	for i, p := range players {
		ps := PlayerState{
			Name:     p.Name,
			Seat:     p.Seat,
			Chips:    p.Chips,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
		}
		if t.hand != nil {
			if j := t.hand.index(p.Name); j >= 0 {
				ps.InHand = t.state == HandInProgress && !p.Folded
				if round != nil {
					ps.Bet = round.Bets[j]
				}
			}
		}
		if viewer != "" && p.Name == viewer {
			ps.Hole = slices.Clone(p.Hole)
		}
		states[i] = ps
	}
	return states
}
