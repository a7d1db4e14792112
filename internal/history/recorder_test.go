package history

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/poker"
)

func headsUpConfig() game.Config {
	return game.Config{
		Name:       "hist",
		SmallBlind: 10,
		BigBlind:   20,
		MinPlayers: 2,
		MaxPlayers: 6,
		MinBuyIn:   100,
		MaxBuyIn:   2000,
	}
}

func playCheckedDownHand(t *testing.T, writer Writer) *game.Table {
	t.Helper()

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC))
	top := poker.MustParseCards("Kc As Kd Ad 2c 7h 8s 3d 2d 9c 2h Jd")
	table, err := game.NewTable(headsUpConfig(),
		game.WithClock(clock),
		game.WithHandIDs(func() string { return "hand-1" }),
		game.WithDecks(func(_ int, rng *rand.Rand) *poker.Deck {
			d, err := poker.NewStackedDeck(rng, top...)
			require.NoError(t, err)
			return d
		}))
	require.NoError(t, err)

	table.Subscribe(NewRecorder(headsUpConfig(), writer, WithHoleCards(table.HoleCards)))
	require.NoError(t, table.AddPlayer("A", 1000))
	require.NoError(t, table.AddPlayer("B", 1000))

	require.NoError(t, table.Seat("A").Call())
	require.NoError(t, table.Seat("B").Check())
	for range 3 {
		require.NoError(t, table.Seat("B").Check())
		require.NoError(t, table.Seat("A").Check())
	}
	require.Equal(t, game.HandComplete, table.State())
	return table
}

func TestRecorderBuildsHandHistory(t *testing.T) {
	t.Parallel()

	mem := &MemoryWriter{}
	playCheckedDownHand(t, mem)

	hands := mem.Hands()
	require.Len(t, hands, 1)
	h := hands[0]

	assert.Equal(t, phh.FixedLimitHoldem, h.Variant)
	assert.Equal(t, 20, h.SmallBet)
	assert.Equal(t, 40, h.BigBet)
	assert.Equal(t, "hand-1", h.HandID)
	assert.Equal(t, []string{"B", "A"}, h.Players, "the big blind is first to the left of the button heads-up")
	assert.Equal(t, []int{2, 1}, h.Seats)
	assert.Equal(t, []int{20, 10}, h.BlindsOrStraddles)
	assert.Equal(t, []int{1000, 1000}, h.StartingStacks)
	assert.Equal(t, []int{980, 1020}, h.FinishingStacks)
	assert.Equal(t, []int{0, 40}, h.Winnings)
	assert.Equal(t, 2025, h.Year)
	assert.Equal(t, "09:30:00", h.Time)

	assert.Equal(t, []string{
		"d dh p1 KcKd",
		"d dh p2 AsAd",
		"p2 cc",
		"p1 cc",
		"d db 7h8s3d",
		"p1 cc",
		"p2 cc",
		"d db 9c",
		"p1 cc",
		"p2 cc",
		"d db Jd",
		"p1 cc",
		"p2 cc",
		"p1 sm KcKd",
		"p2 sm AsAd",
	}, h.Actions)
}

func TestRecorderFormatsRaisesAndFolds(t *testing.T) {
	t.Parallel()

	cfg := headsUpConfig()
	cfg.Limit = game.NoLimit
	mem := &MemoryWriter{}
	table, err := game.NewTable(cfg, game.WithSeed(1))
	require.NoError(t, err)
	table.Subscribe(NewRecorder(cfg, mem))
	require.NoError(t, table.AddPlayer("A", 1000))
	require.NoError(t, table.AddPlayer("B", 500))

	require.NoError(t, table.Seat("A").Raise(60))
	require.NoError(t, table.Seat("B").AllIn())
	require.NoError(t, table.Seat("A").Fold())

	hands := mem.Hands()
	require.Len(t, hands, 1)
	h := hands[0]
	assert.Equal(t, phh.NoLimitHoldem, h.Variant)
	assert.Equal(t, 20, h.MinBet)
	assert.Equal(t, []string{"d dh p1 ????", "d dh p2 ????", "p2 cbr 60", "p1 cbr 500", "p2 f"}, h.Actions)
	assert.Equal(t, []int{560, 0}, h.Winnings)
}

func TestDirWriterWritesDecodableFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "hands")
	playCheckedDownHand(t, DirWriter{Dir: dir})

	f, err := os.Open(filepath.Join(dir, "hand-1.phh"))
	require.NoError(t, err)
	defer f.Close()

	h, err := phh.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "hand-1", h.HandID)
	assert.Len(t, h.Actions, 15)
}
