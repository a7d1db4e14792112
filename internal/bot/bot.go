// Package bot provides computer players for a game.Table.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
)

// Strategy names accepted by New
const (
	StrategyCall   = "call"
	StrategyFold   = "fold"
	StrategyRandom = "random"
	StrategyManiac = "maniac"
	StrategyTight  = "tight"
)

var constructors = map[string]func(rng *rand.Rand, logger *log.Logger) game.Agent{
	StrategyCall:   func(_ *rand.Rand, l *log.Logger) game.Agent { return NewCallBot(l) },
	StrategyFold:   func(_ *rand.Rand, l *log.Logger) game.Agent { return NewFoldBot(l) },
	StrategyRandom: func(r *rand.Rand, l *log.Logger) game.Agent { return NewRandBot(r, l) },
	StrategyManiac: func(r *rand.Rand, l *log.Logger) game.Agent { return NewManiacBot(r, l) },
	StrategyTight:  func(r *rand.Rand, l *log.Logger) game.Agent { return NewTightBot(r, l) },
}

// New creates a bot playing the named strategy
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	ctor, ok := constructors[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", strategy, Strategies())
	}
	return ctor(rng, logger.WithPrefix(strategy)), nil
}

// Strategies lists the known strategy names
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// choose returns the preferred action if it is valid, falling back to a
// passive action otherwise.
func choose(validActions []game.ValidAction, preferred game.Action, amount int, reasoning string) game.Decision {
	va, ok := game.Find(validActions, preferred)
	if !ok {
		d := game.Passive(validActions)
		d.Reasoning = "fallback: " + reasoning
		return d
	}
	if amount < va.MinAmount {
		amount = va.MinAmount
	}
	if va.MaxAmount > 0 && amount > va.MaxAmount {
		amount = va.MaxAmount
	}
	return game.Decision{Action: preferred, Amount: amount, Reasoning: reasoning}
}

// aggressive returns the bet or raise on offer, if any
func aggressive(validActions []game.ValidAction) (game.ValidAction, bool) {
	if va, ok := game.Find(validActions, game.Raise); ok {
		return va, true
	}
	return game.Find(validActions, game.Bet)
}
