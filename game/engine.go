package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Engine drives a table with agents until hands complete. It shares one loop
// between interactive play, simulation and tests.
type Engine struct {
	table        *Table
	agents       map[string]Agent
	defaultAgent Agent
	logger       *log.Logger
}

// NewEngine creates an engine. Players without an agent of their own use
// defaultAgent.
func NewEngine(table *Table, defaultAgent Agent, logger *log.Logger) *Engine {
	return &Engine{
		table:        table,
		agents:       make(map[string]Agent),
		defaultAgent: defaultAgent,
		logger:       logger,
	}
}

// Table returns the table being driven
func (e *Engine) Table() *Table {
	return e.table
}

// SetAgent assigns the agent deciding for a player
func (e *Engine) SetAgent(name string, agent Agent) {
	e.agents[name] = agent
}

func (e *Engine) agentFor(name string) Agent {
	if a, ok := e.agents[name]; ok {
		return a
	}
	return e.defaultAgent
}

// PlayHand deals a hand if none is running and plays it to completion
func (e *Engine) PlayHand(ctx context.Context) (HandResult, error) {
	t := e.table
	if t.State() != HandInProgress {
		if err := t.NextRound(); err != nil {
			return HandResult{}, err
		}
	}

	number := t.HandNumber()
	before := -1
	if t.State() == HandInProgress {
		before = 0
		for _, p := range t.hand.players {
			before += p.Chips + p.TotalBet
		}
	}

	for t.State() == HandInProgress && t.HandNumber() == number {
		if err := ctx.Err(); err != nil {
			return HandResult{}, err
		}
		if err := e.Step(); err != nil {
			return HandResult{}, err
		}
	}

	result, ok := t.LastResult()
	if !ok || result.HandNumber != number {
		return HandResult{}, fmt.Errorf("hand %d finished without a result", number)
	}
	after := 0
	for _, chips := range result.Stacks {
		after += chips
	}
	if before >= 0 && before != after {
		return result, fmt.Errorf("chip conservation violated in hand %d: %d before, %d after", number, before, after)
	}
	return result, nil
}

// Step asks the agent of the player due to act for a decision and applies
// it, falling back to a passive action when the decision is rejected.
func (e *Engine) Step() error {
	t := e.table
	name, ok := t.CurrentPlayer()
	if !ok {
		return errors.New("no player is due to act")
	}
	valid := t.ValidActions()
	decision := e.agentFor(name).MakeDecision(t.Snapshot(name), valid)

	err := t.PerformAction(name, decision.Action, decision.Amount)
	if err == nil {
		e.logger.Debug("Player action", "player", name, "action", decision.Action, "amount", decision.Amount, "reasoning", decision.Reasoning)
		return nil
	}

	e.logger.Warn("Rejected agent decision", "player", name, "action", decision.Action, "amount", decision.Amount, "error", err)
	fallback := Passive(valid)
	if err := t.PerformAction(name, fallback.Action, 0); err != nil {
		return fmt.Errorf("fallback for %s failed: %w", name, err)
	}
	return nil
}

// Run plays up to hands hands, stopping early when the table runs short of
// players or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, hands int, onResult func(HandResult)) (int, error) {
	played := 0
	for played < hands {
		result, err := e.PlayHand(ctx)
		if errors.Is(err, ErrNotEnoughPlayers) {
			e.logger.Info("Not enough players to continue", "played", played)
			return played, nil
		}
		if err != nil {
			return played, err
		}
		played++
		if onResult != nil {
			onResult(result)
		}
	}
	return played, nil
}
