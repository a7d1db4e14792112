package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/poker"
)

// TightBot plays few hands and bets the ones it plays. Preflop it goes by
// starting hand category; after the flop by made hand strength.
type TightBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTightBot creates a new TightBot instance
func NewTightBot(rng *rand.Rand, logger *log.Logger) *TightBot {
	return &TightBot{rng: rng, logger: logger}
}

func (t *TightBot) MakeDecision(state game.TableState, validActions []game.ValidAction) game.Decision {
	me, _ := state.Player(state.Viewer)
	if len(me.Hole) != 2 {
		return game.Passive(validActions)
	}

	if state.Street == game.Preflop {
		return t.preflop(state, me, validActions)
	}
	return t.postflop(state, me, validActions)
}

func (t *TightBot) preflop(state game.TableState, me game.PlayerState, validActions []game.ValidAction) game.Decision {
	category := poker.CategorizeHoleCards(me.Hole[0], me.Hole[1])
	t.logger.Debug("Preflop hand", "player", me.Name, "hole", poker.FormatCards(me.Hole), "category", category)

	switch category {
	case poker.CategoryPremium:
		if va, ok := aggressive(validActions); ok {
			return choose(validActions, va.Action, va.MinAmount*2, fmt.Sprintf("raising %s hand", category))
		}
		return t.continueHand(validActions, "premium hand")
	case poker.CategoryStrong:
		if va, ok := aggressive(validActions); ok && state.CurrentBet <= state.BigBlind {
			return choose(validActions, va.Action, va.MinAmount, "opening strong hand")
		}
		return t.continueHand(validActions, "strong hand")
	case poker.CategoryMedium:
		if state.ToCall <= state.BigBlind {
			return t.continueHand(validActions, "medium hand for one bet")
		}
	case poker.CategoryWeak:
		if state.ToCall <= state.BigBlind && t.rng.Float64() < 0.3 {
			return t.continueHand(validActions, "speculative hand")
		}
	}
	return choose(validActions, game.Check, 0, fmt.Sprintf("folding %s hand", category))
}

func (t *TightBot) postflop(state game.TableState, me game.PlayerState, validActions []game.ValidAction) game.Decision {
	rank, err := poker.Evaluate(append(append([]poker.Card{}, me.Hole...), state.Board...))
	if err != nil {
		return game.Passive(validActions)
	}
	reason := rank.Describe()

	switch {
	case rank.Category() >= poker.TwoPair:
		if va, ok := aggressive(validActions); ok {
			return choose(validActions, va.Action, va.MinAmount, "value bet with "+reason)
		}
		return t.continueHand(validActions, reason)
	case rank.Category() == poker.Pair:
		if state.ToCall <= state.TotalPot/2 {
			return t.continueHand(validActions, reason)
		}
	}
	return choose(validActions, game.Check, 0, "giving up with "+reason)
}

// continueHand checks or calls, including calling all-in
func (t *TightBot) continueHand(validActions []game.ValidAction, reason string) game.Decision {
	if _, ok := game.Find(validActions, game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "checking " + reason}
	}
	if va, ok := game.Find(validActions, game.Call); ok {
		return game.Decision{Action: game.Call, Amount: va.MinAmount, Reasoning: "calling with " + reason}
	}
	return choose(validActions, game.AllIn, 0, "calling all-in with "+reason)
}
