// Package shotclock enforces a decision deadline on a game.Table.
//
// The table itself is synchronous and has no notion of time. A Clock wraps a
// table, serializes every host call behind one mutex, and arms a timer each
// time a player becomes due to act. When the timer fires before the player
// acts, the Clock checks for them if checking is free and folds them
// otherwise.
//
// All access to the wrapped table must go through Act or Do once a Clock is
// attached.
package shotclock

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/game"
)

// Timeout describes an action taken on behalf of a player who ran out of time
type Timeout struct {
	HandID string
	Player string
	Street game.Street
	Action game.Action
	Err    error
}

// Option configures a Clock
type Option func(*Clock)

// WithClock sets the time source used for timers
func WithClock(clock quartz.Clock) Option {
	return func(c *Clock) { c.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Clock) { c.logger = logger.WithPrefix("shotclock") }
}

// OnTimeout registers a callback invoked after every timed-out action. It
// runs with the Clock's lock held and must not call Act or Do.
func OnTimeout(fn func(Timeout)) Option {
	return func(c *Clock) { c.onTimeout = fn }
}

// Clock wraps a table with a per-decision shot clock
type Clock struct {
	mu        sync.Mutex
	table     *game.Table
	clock     quartz.Clock
	logger    *log.Logger
	limit     time.Duration
	onTimeout func(Timeout)

	timer       *quartz.Timer
	turn        uint64
	waiting     game.TurnEvent
	unsubscribe func()
}

// New attaches a shot clock of the given duration to table. A limit of zero
// or less never times anyone out and only serializes access.
func New(table *game.Table, limit time.Duration, opts ...Option) *Clock {
	c := &Clock{
		table:  table,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		limit:  limit,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.unsubscribe = table.Subscribe(c)
	return c
}

// Act performs an action for a player
func (c *Clock) Act(name string, action game.Action, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.PerformAction(name, action, amount)
}

// Do runs fn with exclusive access to the table. Use it for seating, queries
// and starting hands.
func (c *Clock) Do(fn func(t *game.Table) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.table)
}

// Waiting returns the player the clock is currently running for
func (c *Clock) Waiting() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return "", false
	}
	return c.waiting.Player, true
}

// Stop detaches the clock from the table and cancels any running timer
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// OnEvent implements game.EventSubscriber. Events are only published from
// inside Act, Do or a timer callback, so the lock is already held.
func (c *Clock) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.TurnEvent:
		c.arm(e)
	case game.PlayerActionEvent, game.GameOverEvent:
		c.cancel()
	}
}

func (c *Clock) arm(e game.TurnEvent) {
	c.cancel()
	if c.limit <= 0 {
		return
	}
	c.turn++
	c.waiting = e
	turn := c.turn
	c.timer = c.clock.AfterFunc(c.limit, func() { c.expire(turn) }, "shotclock", e.Player)
	c.logger.Debug("Clock started", "player", e.Player, "street", e.Street, "limit", c.limit)
}

func (c *Clock) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Clock) expire(turn uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The player acted, or the clock moved on, while this callback was queued
	if turn != c.turn || c.timer == nil {
		return
	}
	c.timer = nil

	e := c.waiting
	action := game.Fold
	if _, ok := game.Find(e.ValidActions, game.Check); ok {
		action = game.Check
	}

	c.logger.Warn("Shot clock expired", "player", e.Player, "street", e.Street, "action", action)
	err := c.table.PerformAction(e.Player, action, 0)
	if err != nil {
		c.logger.Error("Timed out action rejected", "player", e.Player, "error", err)
	}
	if c.onTimeout != nil {
		c.onTimeout(Timeout{HandID: e.HandID, Player: e.Player, Street: e.Street, Action: action, Err: err})
	}
}
