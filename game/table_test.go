package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/poker"
)

func TestNewTableValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min players below two", func(c *Config) { c.MinPlayers = 1 }},
		{"too many seats", func(c *Config) { c.MaxPlayers = MaxSeats + 1 }},
		{"min above max", func(c *Config) { c.MinPlayers, c.MaxPlayers = 5, 4 }},
		{"zero blind", func(c *Config) { c.SmallBlind = 0 }},
		{"small blind above big", func(c *Config) { c.SmallBlind = 30 }},
		{"empty buy-in range", func(c *Config) { c.MinBuyIn = 3000 }},
		{"unknown limit", func(c *Config) { c.Limit = Limit(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewTable(cfg)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}

	table, err := NewTable(testConfig())
	require.NoError(t, err)
	assert.Equal(t, WaitingForPlayers, table.State())
	assert.Empty(t, table.Players())
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	l, err := ParseLimit("no-limit")
	require.NoError(t, err)
	assert.Equal(t, NoLimit, l)

	l, err = ParseLimit("")
	require.NoError(t, err)
	assert.Equal(t, FixedLimit, l)

	_, err = ParseLimit("pot-limit")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestAddPlayerValidation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxPlayers = 3
	cfg.MinPlayers = 3
	table, _ := newTestTable(t, cfg)

	assert.ErrorIs(t, table.AddPlayer("", 500), ErrConfig)
	assert.ErrorIs(t, table.AddPlayer("alice", 50), ErrBuyIn)
	assert.ErrorIs(t, table.AddPlayer("alice", 5000), ErrBuyIn)

	require.NoError(t, table.AddPlayer("alice", 500))
	assert.ErrorIs(t, table.AddPlayer("alice", 500), ErrDuplicatePlayer)

	require.NoError(t, table.AddPlayer("bob", 500))
	assert.Equal(t, WaitingForPlayers, table.State(), "two players are not enough for this table")

	require.NoError(t, table.AddPlayer("carol", 500))
	assert.Equal(t, HandInProgress, table.State())
	assert.ErrorIs(t, table.AddPlayer("dave", 500), ErrTableFull)
}

func TestHeadsUpBlindsAndFlop(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	require.Equal(t, HandInProgress, table.State())
	assert.Equal(t, "A", table.Button())
	assert.Equal(t, Preflop, table.Street())
	assert.Equal(t, 30, table.TotalPot())

	players := table.Players()
	assert.Equal(t, 990, players[0].Chips, "the button posts the small blind heads-up")
	assert.Equal(t, 980, players[1].Chips)

	name, ok := table.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, "A", name, "the small blind acts first preflop heads-up")

	act(t, table, "A", Call, 0)
	name, _ = table.CurrentPlayer()
	assert.Equal(t, "B", name, "the big blind has the option")

	act(t, table, "B", Check, 0)
	assert.Equal(t, Flop, table.Street())
	assert.Len(t, table.Board(), 3)
	assert.Equal(t, 40, table.Pot())
	assert.Equal(t, 40, table.TotalPot())

	name, _ = table.CurrentPlayer()
	assert.Equal(t, "B", name, "the big blind acts first after the flop heads-up")

	assert.Equal(t, []EventType{
		EventTypePlayerJoined,
		EventTypePlayerJoined,
		EventTypeNewRound,
		EventTypeDeal,
		EventTypeTurn,
		EventTypePlayerAction,
		EventTypeTurn,
		EventTypePlayerAction,
		EventTypeDeal,
		EventTypeTurn,
	}, rec.Types())

	round := eventsOf[NewRoundEvent](rec)[0]
	assert.Equal(t, "hand-1", round.HandID)
	assert.Equal(t, Blind{Player: "A", Amount: 10}, round.SmallBlind)
	assert.Equal(t, Blind{Player: "B", Amount: 20}, round.BigBlind)
	assert.Equal(t, 1000, round.Players[0].Chips)
}

func TestOutOfTurnActionIsRejectedWithoutSideEffects(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	before := table.Snapshot("B")
	events := len(rec.Events())

	err := table.PerformAction("B", Call, 0)
	assert.ErrorIs(t, err, ErrOutOfTurn)
	assert.ErrorIs(t, table.Seat("B").Fold(), ErrOutOfTurn)
	assert.ErrorIs(t, table.PerformAction("zed", Call, 0), ErrUnknownPlayer)
	assert.ErrorIs(t, table.PerformAction("A", Check, 0), ErrIllegalAction)

	assert.Equal(t, before, table.Snapshot("B"))
	assert.Len(t, rec.Events(), events, "rejected actions publish nothing")
}

func TestQueriesAreIdempotent(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")
	act(t, table, "A", Call, 0)
	act(t, table, "B", Check, 0)
	events := len(rec.Events())

	first := table.Snapshot("A")
	assert.Equal(t, first, table.Snapshot("A"))
	assert.Equal(t, table.Board(), table.Board())
	assert.Equal(t, table.Pot(), table.Pot())
	assert.Equal(t, table.Pots(), table.Pots())
	assert.Equal(t, table.ValidActions(), table.ValidActions())
	assert.Equal(t, table.Players(), table.Players())
	assert.Len(t, rec.Events(), events)

	// Returned slices are copies
	board := table.Board()
	board[0] = poker.Card{}
	assert.NotEqual(t, board[0], table.Board()[0])
}

func TestSnapshotHidesOtherHoleCards(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	state := table.Snapshot("A")
	a, ok := state.Player("A")
	require.True(t, ok)
	assert.Len(t, a.Hole, 2)
	b, _ := state.Player("B")
	assert.Empty(t, b.Hole)
	assert.Equal(t, "A", state.ActingPlayer)
	assert.Equal(t, 10, state.ToCall)

	for _, p := range table.Snapshot("").Players {
		assert.Empty(t, p.Hole)
	}

	hole, err := table.HoleCards("B")
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	_, err = table.HoleCards("zed")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestShowdownAwardsPotToBestHand(t *testing.T) {
	t.Parallel()

	// B is dealt first: B gets Kc Kd, A gets As Ad
	table, rec := newTestTable(t, testConfig(), stacked(t, "Kc As Kd Ad 2c 7h 8s 3d 2d 9c 2h Jd"))
	seatAll(t, table, 1000, "A", "B")

	act(t, table, "A", Call, 0)
	act(t, table, "B", Check, 0)
	for _, street := range []Street{Flop, Turn, River} {
		require.Equal(t, street, table.Street())
		act(t, table, "B", Check, 0)
		act(t, table, "A", Check, 0)
	}

	assert.Equal(t, HandComplete, table.State())
	assert.Equal(t, Showdown, table.Street())
	result, ok := table.LastResult()
	require.True(t, ok)
	assert.True(t, result.Showdown)
	assert.Equal(t, poker.MustParseCards("7h 8s 3d 9c Jd"), result.Board)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "A", result.Winners[0].Name)
	assert.Equal(t, 40, result.Winners[0].Amount)
	assert.Equal(t, poker.Pair, result.Winners[0].Rank.Category())
	assert.Len(t, result.Winners[0].Best, 5)
	assert.Equal(t, []string{"B"}, result.Losers)
	assert.Len(t, result.Hands, 2)
	assert.Equal(t, map[string]int{"A": 1020, "B": 980}, result.Stacks)

	over := eventsOf[GameOverEvent](rec)
	require.Len(t, over, 1)
	assert.Equal(t, result, over[0].Result)

	deals := eventsOf[DealEvent](rec)
	require.Len(t, deals, 4)
	assert.Equal(t, []string{"B", "A"}, deals[0].Dealt)
	assert.Equal(t, poker.MustParseCards("9c"), deals[2].Cards)
}

func TestFoldOutEndsHand(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MinPlayers = 3
	table, rec := newTestTable(t, cfg)
	seatAll(t, table, 1000, "a", "b", "c")

	name, _ := table.CurrentPlayer()
	require.Equal(t, "a", name, "under the gun is left of the big blind")
	act(t, table, "a", Fold, 0)
	act(t, table, "b", Fold, 0)

	result, ok := table.LastResult()
	require.True(t, ok)
	assert.False(t, result.Showdown)
	assert.Empty(t, result.Board)
	assert.Equal(t, []Winner{{Name: "c", Amount: 30}}, result.Winners)
	assert.ElementsMatch(t, []string{"a", "b"}, result.Losers)
	assert.Len(t, eventsOf[DealEvent](rec), 1, "no board is dealt after a fold-out")
	assert.Equal(t, Showdown, table.Street())

	stacks := map[string]int{}
	for _, p := range table.Players() {
		stacks[p.Name] = p.Chips
	}
	assert.Equal(t, map[string]int{"a": 1000, "b": 990, "c": 1010}, stacks)
}

func TestSidePotWonByShortAllIn(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limit = NoLimit
	cfg.MinBuyIn = 50
	cfg.MinPlayers = 3
	// Deal order is b, c, a
	table, _ := newTestTable(t, cfg, stacked(t, "Qc Ac Kc Qd Ad Kd 2s 7h 8s 3d 2d 9c 2h 4s"))
	require.NoError(t, table.AddPlayer("a", 1000))
	require.NoError(t, table.AddPlayer("b", 1000))
	require.NoError(t, table.AddPlayer("c", 50))

	act(t, table, "a", Raise, 100)
	act(t, table, "b", Call, 0)
	act(t, table, "c", Call, 0)

	pots := table.Pots()
	require.Len(t, pots, 2)
	assert.Equal(t, Pot{Amount: 150, Eligible: []string{"a", "b", "c"}}, pots[0])
	assert.Equal(t, Pot{Amount: 100, Eligible: []string{"a", "b"}}, pots[1])

	for range 3 {
		act(t, table, "b", Check, 0)
		act(t, table, "a", Check, 0)
	}

	result, ok := table.LastResult()
	require.True(t, ok)
	require.Len(t, result.Pots, 2)
	assert.Equal(t, []string{"c"}, result.Pots[0].Winners)
	assert.Equal(t, 150, result.Pots[0].Amount)
	assert.Equal(t, []string{"a"}, result.Pots[1].Winners)
	assert.Equal(t, map[string]int{"a": 1000, "b": 900, "c": 150}, result.Stacks)
}

func TestAllInRunsOutTheBoard(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limit = NoLimit
	table, rec := newTestTable(t, cfg, stacked(t, "Kc As Kd Ad 2c 7h 8s 3d 2d 9c 2h Jd"))
	seatAll(t, table, 500, "A", "B")

	act(t, table, "A", AllIn, 0)
	act(t, table, "B", Call, 0)

	assert.Len(t, eventsOf[DealEvent](rec), 4)
	result, ok := table.LastResult()
	require.True(t, ok)
	assert.True(t, result.Showdown)
	assert.Len(t, result.Board, 5)
	assert.Equal(t, 1000, result.Won("A"))

	left := eventsOf[PlayerLeftEvent](rec)
	require.Len(t, left, 1)
	assert.Equal(t, PlayerLeftEvent{Player: "B", Seat: 1, Chips: 0, Reason: LeftBusted, Time: left[0].Time}, left[0])
	assert.Equal(t, WaitingForPlayers, table.State())
	assert.ErrorIs(t, table.NextRound(), ErrNotEnoughPlayers)
}

func TestButtonRotates(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	table, _ := newTestTable(t, cfg, WithManualStart())
	seatAll(t, table, 1000, "a", "b", "c")
	assert.Equal(t, WaitingForPlayers, table.State())
	require.NoError(t, table.StartGame())
	assert.ErrorIs(t, table.StartGame(), ErrHandInProgress)

	for _, button := range []string{"a", "b", "c", "a"} {
		require.Equal(t, button, table.Button())
		for {
			name, ok := table.CurrentPlayer()
			if !ok {
				break
			}
			act(t, table, name, Fold, 0)
		}
		require.Equal(t, HandComplete, table.State())
		require.NoError(t, table.NextRound())
	}
}

func TestJoinAndLeaveTakeEffectBetweenHands(t *testing.T) {
	t.Parallel()

	table, rec := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	require.NoError(t, table.AddPlayer("C", 1000))
	assert.Len(t, table.Players(), 2, "C waits for the next hand")
	assert.ErrorIs(t, table.AddPlayer("C", 1000), ErrDuplicatePlayer)

	require.NoError(t, table.RemovePlayer("B"))
	assert.Len(t, table.Players(), 2, "B finishes the hand")
	act(t, table, "A", Call, 0)
	act(t, table, "B", Fold, 0)

	names := []string{}
	for _, p := range table.Players() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)
	assert.Equal(t, 1, table.Players()[1].Seat, "C takes the seat B left")

	left := eventsOf[PlayerLeftEvent](rec)
	require.Len(t, left, 1)
	assert.Equal(t, LeftVoluntarily, left[0].Reason)
	assert.Equal(t, 980, left[0].Chips)

	assert.ErrorIs(t, table.RemovePlayer("B"), ErrUnknownPlayer)
	require.NoError(t, table.RemovePlayer("C"))
	assert.Len(t, table.Players(), 1)
}

func TestAutoNextRound(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testConfig(), WithAutoNextRound())
	seatAll(t, table, 1000, "A", "B")

	act(t, table, "A", Fold, 0)
	assert.Equal(t, HandInProgress, table.State())
	assert.Equal(t, 2, table.HandNumber())
	assert.Equal(t, "B", table.Button())
	assert.Equal(t, "hand-2", table.HandID())

	result, ok := table.LastResult()
	require.True(t, ok)
	assert.Equal(t, 1, result.HandNumber)
	assert.Equal(t, 30, result.Won("B"))
}

func TestAddChipsBetweenHands(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")

	assert.ErrorIs(t, table.AddChips("A", 100), ErrHandInProgress)
	act(t, table, "A", Fold, 0)

	require.NoError(t, table.AddChips("A", 100))
	assert.Equal(t, 1090, table.Players()[0].Chips)
	assert.ErrorIs(t, table.AddChips("A", 5000), ErrBuyIn)
	assert.ErrorIs(t, table.AddChips("A", 0), ErrBuyIn)
	assert.ErrorIs(t, table.AddChips("zed", 10), ErrUnknownPlayer)
}

func TestSeatHandle(t *testing.T) {
	t.Parallel()

	table, _ := newTestTable(t, testConfig())
	seatAll(t, table, 1000, "A", "B")
	a, b := table.Seat("A"), table.Seat("B")

	assert.True(t, a.IsTurn())
	assert.False(t, b.IsTurn())
	require.NoError(t, a.Raise(40))
	require.NoError(t, b.Call())
	assert.Equal(t, Flop, table.Street())
	assert.Equal(t, 80, table.Pot())

	require.NoError(t, b.Bet(0))
	assert.Equal(t, 20, table.CurrentBet())
	require.NoError(t, a.Call())
	assert.Equal(t, Turn, table.Street())

	hole, err := a.HoleCards()
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	assert.Equal(t, "A", a.State().Viewer)
}

func TestChipsAreConservedThroughAHand(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limit = NoLimit
	cfg.MinPlayers = 4
	table, rec := newTestTable(t, cfg)
	seatAll(t, table, 1000, "a", "b", "c", "d")
	total := totalChips(table)

	script := []struct {
		action Action
		amount int
	}{
		{Raise, 60}, {Call, 0}, {Fold, 0}, {Raise, 200}, {Call, 0}, {Call, 0},
	}
	for _, s := range script {
		name, ok := table.CurrentPlayer()
		require.True(t, ok)
		act(t, table, name, s.action, s.amount)
		assert.Equal(t, total, totalChips(table))
	}
	for table.State() == HandInProgress {
		name, _ := table.CurrentPlayer()
		act(t, table, name, Check, 0)
	}
	assert.Equal(t, total, totalChips(table))

	for _, e := range eventsOf[PlayerActionEvent](rec) {
		if e.Action == Raise && e.Total == 200 {
			assert.Equal(t, "re-raise", e.BetName)
		}
	}
}
