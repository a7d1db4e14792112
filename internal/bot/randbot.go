package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(_ game.TableState, validActions []game.ValidAction) game.Decision {
	if len(validActions) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	va := validActions[r.rng.IntN(len(validActions))]
	amount := va.MinAmount
	if va.MaxAmount > va.MinAmount {
		amount += r.rng.IntN(va.MaxAmount - va.MinAmount + 1)
	}
	return game.Decision{Action: va.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
