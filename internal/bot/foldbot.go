package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) MakeDecision(_ game.TableState, validActions []game.ValidAction) game.Decision {
	if _, ok := game.Find(validActions, game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "fold-bot checking"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}
