package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseAction parses an action name such as "call" or "all-in"
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "k", "x":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "allin", "all-in", "all", "a":
		return AllIn, nil
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrIllegalAction, s)
}

// maxBets caps bets and raises per street under fixed limit
const maxBets = 4

// BetName names the nth bet of a street: "bet", "raise", "re-raise" and "cap"
func BetName(n int) string {
	switch {
	case n <= 1:
		return "bet"
	case n == 2:
		return "raise"
	case n < maxBets:
		return "re-raise"
	default:
		return "cap"
	}
}

// ValidAction represents an action that a player can legally take.
// Amounts are raise-to totals for the street, not increments.
type ValidAction struct {
	Action    Action
	MinAmount int
	MaxAmount int
}

// BettingRound holds the betting state of one street. Players are addressed
// by their index in the hand's player list.
type BettingRound struct {
	Street     Street
	Bets       []int // chips committed on this street
	CurrentBet int   // highest street total any player has reached
	LastRaise  int   // size of the last full bet or raise
	Raises     int   // bets and raises so far; the big blind counts preflop
	Turn       int   // index of the player to act, -1 when nobody can

	limit    Limit
	bigBlind int
}

// NewBettingRound creates an empty betting round for a street
func NewBettingRound(street Street, numPlayers, bigBlind int, limit Limit) *BettingRound {
	return &BettingRound{
		Street:    street,
		Bets:      make([]int, numPlayers),
		LastRaise: bigBlind,
		Turn:      -1,
		limit:     limit,
		bigBlind:  bigBlind,
	}
}

// BetSize returns the fixed-limit bet size for the street
func (br *BettingRound) BetSize() int {
	if br.Street >= Turn {
		return 2 * br.bigBlind
	}
	return br.bigBlind
}

// Capped reports whether fixed-limit betting has reached its cap
func (br *BettingRound) Capped() bool {
	return br.limit == FixedLimit && br.Raises >= maxBets
}

// ToCall returns the chips player i needs to add to match the current bet
func (br *BettingRound) ToCall(i int) int {
	return max(br.CurrentBet-br.Bets[i], 0)
}

// post commits a forced bet such as a blind. It does not mark the player as acted.
func (br *BettingRound) post(p *Player, i, amount int) int {
	amount = min(amount, p.Chips)
	br.commit(p, i, br.Bets[i]+amount)
	return amount
}

// commit moves chips from the stack so the player's street total becomes to
func (br *BettingRound) commit(p *Player, i, to int) int {
	delta := to - br.Bets[i]
	p.Chips -= delta
	p.TotalBet += delta
	br.Bets[i] = to
	if p.Chips == 0 {
		p.AllIn = true
	}
	return delta
}

// minRaiseTo returns the smallest legal full raise total
func (br *BettingRound) minRaiseTo() int {
	if br.limit == FixedLimit {
		return br.CurrentBet + br.BetSize()
	}
	return br.CurrentBet + max(br.LastRaise, br.bigBlind)
}

// ActionResult describes an accepted action as it was applied
type ActionResult struct {
	Requested Action
	Action    Action // may differ from Requested, e.g. a short call becomes AllIn
	Added     int    // chips moved from the stack
	Total     int    // the player's street total afterwards
	Folded    int    // street chips forfeited by a fold
	Raise     bool   // whether the action raised the current bet
	BetNumber int    // bets so far on this street when Raise is set
}

// Apply validates and applies an action by player i. Nothing is modified when
// an error is returned.
func (br *BettingRound) Apply(players []*Player, i int, action Action, amount int) (ActionResult, error) {
	p := players[i]
	res := ActionResult{Requested: action, Action: action}
	if !p.CanAct() {
		return res, fmt.Errorf("%w: %s cannot act", ErrIllegalAction, p.Name)
	}

	target, err := br.target(p, i, &res, amount)
	if err != nil {
		return res, err
	}

	p.Acted = true
	if res.Action == Fold {
		p.Folded = true
		res.Folded = br.Bets[i]
		br.Bets[i] = 0
		return res, nil
	}

	res.Added = br.commit(p, i, target)
	res.Total = target
	if p.AllIn {
		res.Action = AllIn
	}
	if target > br.CurrentBet {
		if target >= br.minRaiseTo() {
			br.LastRaise = target - br.CurrentBet
			br.Raises++
		}
		br.CurrentBet = target
		res.Raise = true
		res.BetNumber = br.Raises
		for j, o := range players {
			if j != i {
				o.Acted = false
			}
		}
	}
	return res, nil
}

// target resolves the street total an action moves the player to, normalising
// res.Action. It must not modify any state.
func (br *BettingRound) target(p *Player, i int, res *ActionResult, amount int) (int, error) {
	bet := br.Bets[i]
	allIn := bet + p.Chips
	toCall := br.ToCall(i)

	switch res.Action {
	case Fold:
		return bet, nil

	case Check:
		if toCall > 0 {
			return 0, fmt.Errorf("%w: cannot check, %d to call", ErrIllegalAction, toCall)
		}
		return bet, nil

	case Call:
		if toCall == 0 {
			res.Action = Check
			return bet, nil
		}
		if toCall >= p.Chips {
			res.Action = AllIn
			return allIn, nil
		}
		return br.CurrentBet, nil

	case Bet, Raise:
		res.Action = Raise
		if br.CurrentBet == 0 {
			res.Action = Bet
		}
		if allIn <= br.CurrentBet {
			res.Action = AllIn
			return allIn, nil
		}
		if br.Capped() {
			return 0, fmt.Errorf("%w: betting is capped at %d bets", ErrIllegalAction, maxBets)
		}
		minTo := br.minRaiseTo()
		if allIn <= minTo {
			res.Action = AllIn
			return allIn, nil
		}
		if br.limit == FixedLimit {
			if amount != 0 && amount != minTo {
				return 0, fmt.Errorf("%w: fixed limit %s must be to %d", ErrIllegalAction, res.Action, minTo)
			}
			return minTo, nil
		}
		if amount >= allIn {
			res.Action = AllIn
			return allIn, nil
		}
		if amount < minTo {
			return 0, fmt.Errorf("%w: %s to %d is below the minimum of %d", ErrIllegalAction, res.Action, amount, minTo)
		}
		return amount, nil

	case AllIn:
		if br.limit == FixedLimit && allIn > br.CurrentBet {
			if br.Capped() {
				return 0, fmt.Errorf("%w: betting is capped at %d bets", ErrIllegalAction, maxBets)
			}
			if allIn > br.minRaiseTo() {
				return 0, fmt.Errorf("%w: all-in for %d exceeds the fixed raise to %d", ErrIllegalAction, allIn, br.minRaiseTo())
			}
		}
		return allIn, nil
	}

	return 0, fmt.Errorf("%w: unknown action %d", ErrIllegalAction, res.Action)
}

// ValidActions returns the actions player i may take
func (br *BettingRound) ValidActions(players []*Player, i int) []ValidAction {
	p := players[i]
	if !p.CanAct() {
		return nil
	}
	bet := br.Bets[i]
	allIn := bet + p.Chips
	toCall := br.ToCall(i)

	actions := []ValidAction{{Action: Fold}}
	switch {
	case toCall == 0:
		actions = append(actions, ValidAction{Action: Check, MinAmount: bet, MaxAmount: bet})
	case toCall >= p.Chips:
		return append(actions, ValidAction{Action: AllIn, MinAmount: allIn, MaxAmount: allIn})
	default:
		actions = append(actions, ValidAction{Action: Call, MinAmount: br.CurrentBet, MaxAmount: br.CurrentBet})
	}

	if br.Capped() {
		return actions
	}
	raise := Raise
	if br.CurrentBet == 0 {
		raise = Bet
	}
	minTo := br.minRaiseTo()
	switch {
	case allIn <= minTo:
		actions = append(actions, ValidAction{Action: AllIn, MinAmount: allIn, MaxAmount: allIn})
	case br.limit == FixedLimit:
		actions = append(actions, ValidAction{Action: raise, MinAmount: minTo, MaxAmount: minTo})
	default:
		actions = append(actions,
			ValidAction{Action: raise, MinAmount: minTo, MaxAmount: allIn},
			ValidAction{Action: AllIn, MinAmount: allIn, MaxAmount: allIn})
	}
	return actions
}

// IsClosed reports whether betting on this street is finished: every player
// who can still act has acted and committed exactly the current bet. A lone player who
// can act closes the street once they match, since nobody is left to bet against.
func (br *BettingRound) IsClosed(players []*Player) bool {
	live := 0
	for i, p := range players {
		if !p.CanAct() {
			continue
		}
		live++
		if br.Bets[i] != br.CurrentBet {
			return false
		}
	}
	if live <= 1 {
		return true
	}
	for _, p := range players {
		if p.CanAct() && !p.Acted {
			return false
		}
	}
	return true
}

// NextTurn returns the first player after index from, clockwise, who can act
func (br *BettingRound) NextTurn(players []*Player, from int) int {
	n := len(players)
	for k := 1; k <= n; k++ {
		i := (from + k) % n
		if players[i].CanAct() {
			return i
		}
	}
	return -1
}

// Collect sweeps the street bets and returns the total. Acted flags are
// cleared for the next street.
func (br *BettingRound) Collect(players []*Player) int {
	total := 0
	for i, p := range players {
		total += br.Bets[i]
		br.Bets[i] = 0
		p.Acted = false
	}
	return total
}
