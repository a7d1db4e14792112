package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
)

// ManiacBot is an extremely aggressive bot that bets and raises whenever it can
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) MakeDecision(state game.TableState, validActions []game.ValidAction) game.Decision {
	me, _ := state.Player(state.Viewer)
	shortStacked := me.Chips <= 10*state.BigBlind

	if va, ok := aggressive(validActions); ok {
		if shortStacked || m.rng.Float64() < 0.25 {
			if allIn, ok := game.Find(validActions, game.AllIn); ok {
				return game.Decision{Action: game.AllIn, Amount: allIn.MinAmount, Reasoning: "maniac shove"}
			}
			return game.Decision{Action: va.Action, Amount: va.MaxAmount, Reasoning: "maniac max raise"}
		}
		if m.rng.Float64() < 0.85 {
			size := va.MinAmount + (va.MaxAmount-va.MinAmount)/4
			return game.Decision{Action: va.Action, Amount: size, Reasoning: "maniac raise"}
		}
	}

	if state.ToCall == 0 {
		return choose(validActions, game.Check, 0, "maniac checking")
	}
	if m.rng.Float64() < 0.8 {
		if _, ok := game.Find(validActions, game.Call); ok {
			return choose(validActions, game.Call, 0, "maniac call")
		}
		return choose(validActions, game.AllIn, 0, "maniac calling all-in")
	}
	return game.Decision{Action: game.Fold, Reasoning: "maniac fold"}
}
