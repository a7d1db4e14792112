package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
)

// CallBot checks or calls every street and never raises
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) MakeDecision(state game.TableState, validActions []game.ValidAction) game.Decision {
	if _, ok := game.Find(validActions, game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "call-bot checking"}
	}
	if va, ok := game.Find(validActions, game.Call); ok {
		return game.Decision{Action: game.Call, Amount: va.MinAmount, Reasoning: "call-bot calling"}
	}
	// Calling would put us all in
	if va, ok := game.Find(validActions, game.AllIn); ok && state.ToCall > 0 {
		c.logger.Debug("Calling all-in", "player", state.Viewer, "to_call", state.ToCall)
		return game.Decision{Action: game.AllIn, Amount: va.MinAmount, Reasoning: "call-bot calling all-in"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "call-bot forced fold"}
}
