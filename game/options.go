package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

// Option configures a Table during creation.
type Option func(*tableOptions)

type tableOptions struct {
	rng         *rand.Rand
	logger      *log.Logger
	clock       quartz.Clock
	bus         EventBus
	newID       func() string
	deckFor     func(hand int, rng *rand.Rand) *poker.Deck
	autoNext    bool
	manualStart bool
}

func defaultOptions() *tableOptions {
	return &tableOptions{
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		newID:  gameid.Generate,
	}
}

// WithRNG sets the random source used to shuffle the deck.
// Without it the table seeds itself from the operating system.
func WithRNG(rng *rand.Rand) Option {
	return func(o *tableOptions) {
		o.rng = rng
	}
}

// WithSeed is WithRNG with a deterministic source derived from seed
func WithSeed(seed int64) Option {
	return func(o *tableOptions) {
		o.rng = randutil.New(seed)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *tableOptions) {
		o.logger = logger
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(o *tableOptions) {
		o.clock = clock
	}
}

// WithEventBus shares an existing bus instead of creating one per table
func WithEventBus(bus EventBus) Option {
	return func(o *tableOptions) {
		o.bus = bus
	}
}

// WithHandIDs overrides how hand identifiers are generated
func WithHandIDs(next func() string) Option {
	return func(o *tableOptions) {
		o.newID = next
	}
}

// WithDecks supplies the deck for each hand, numbered from 1. Tests use it to
// stack the cards; returning nil falls back to a fresh shuffle.
func WithDecks(deckFor func(hand int, rng *rand.Rand) *poker.Deck) Option {
	return func(o *tableOptions) {
		o.deckFor = deckFor
	}
}

// WithAutoNextRound starts the next hand as soon as one finishes, as long as
// enough players remain.
func WithAutoNextRound() Option {
	return func(o *tableOptions) {
		o.autoNext = true
	}
}

// WithManualStart stops AddPlayer from dealing the first hand once enough
// players are seated. The host calls StartGame instead.
func WithManualStart() Option {
	return func(o *tableOptions) {
		o.manualStart = true
	}
}
