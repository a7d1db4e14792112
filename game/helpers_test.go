package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/sanity-io/litter"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/poker"
)

func testConfig() Config {
	return Config{
		Name:       "test",
		SmallBlind: 10,
		BigBlind:   20,
		MinPlayers: 2,
		MaxPlayers: 6,
		MinBuyIn:   100,
		MaxBuyIn:   2000,
		Limit:      FixedLimit,
	}
}

// sequentialIDs returns hand IDs "hand-1", "hand-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("hand-%d", n)
	}
}

// stacked deals the given cards first in every hand. Hole cards go one at a
// time starting left of the button, then a burn before each street.
func stacked(t *testing.T, cards string) Option {
	t.Helper()
	top := poker.MustParseCards(cards)
	return WithDecks(func(_ int, rng *rand.Rand) *poker.Deck {
		d, err := poker.NewStackedDeck(rng, top...)
		require.NoError(t, err)
		return d
	})
}

func newTestTable(t *testing.T, cfg Config, opts ...Option) (*Table, *EventRecorder) {
	t.Helper()
	rec := &EventRecorder{}
	opts = append([]Option{WithSeed(42), WithHandIDs(sequentialIDs())}, opts...)
	table, err := NewTable(cfg, opts...)
	require.NoError(t, err)
	table.Subscribe(rec)
	return table, rec
}

// seatAll adds players with equal stacks
func seatAll(t *testing.T, table *Table, chips int, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, table.AddPlayer(name, chips))
	}
}

// totalChips counts every chip at the table, including those in play
func totalChips(table *Table) int {
	total := 0
	for _, p := range table.seats {
		if p != nil {
			total += p.Chips
		}
	}
	return total + table.TotalPot()
}

func act(t *testing.T, table *Table, name string, action Action, amount int) {
	t.Helper()
	require.NoError(t, table.PerformAction(name, action, amount), "state: %s", litter.Sdump(table.Snapshot("")))
}

func eventsOf[E GameEvent](rec *EventRecorder) []E {
	var out []E
	for _, e := range rec.Events() {
		if ev, ok := e.(E); ok {
			out = append(out, ev)
		}
	}
	return out
}
