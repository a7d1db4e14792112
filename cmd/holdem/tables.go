package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/history"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/render"
	"github.com/lox/holdem/internal/statistics"
)

// seatedTable is a table with its bots seated and an engine to drive them
type seatedTable struct {
	table  *game.Table
	engine *game.Engine
	tally  *tally
	stats  *statistics.Collector
}

// setupTable builds a table from its config, seats the configured bots and
// attaches hand-history recording when a history directory is set.
func setupTable(cfg *config.Config, tc config.TableConfig, seed int64, logger *log.Logger, opts ...game.Option) (*seatedTable, error) {
	gcfg, err := tc.GameConfig()
	if err != nil {
		return nil, err
	}
	logger = logger.With("table", tc.Name)

	opts = append([]game.Option{
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithManualStart(),
	}, opts...)
	table, err := game.NewTable(gcfg, opts...)
	if err != nil {
		return nil, err
	}

	st := &seatedTable{
		table:  table,
		engine: game.NewEngine(table, game.AgentFunc(func(_ game.TableState, valid []game.ValidAction) game.Decision { return game.Passive(valid) }), logger),
		tally:  newTally(),
		stats:  statistics.NewCollector(gcfg.BigBlind),
	}
	table.Subscribe(st.tally)
	table.Subscribe(st.stats)

	if dir := cfg.Settings.HistoryDir; dir != "" {
		dir = filepath.Join(dir, tc.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
		table.Subscribe(history.NewRecorder(gcfg, history.DirWriter{Dir: dir},
			history.WithHoleCards(table.HoleCards),
			history.WithLogger(logger)))
	}

	for i, b := range cfg.BotsForTable(tc.Name) {
		agent, err := bot.New(b.Strategy, randutil.New(randutil.Derive(seed, i+1)), logger)
		if err != nil {
			return nil, err
		}
		buyIn := b.BuyInFor(tc)
		if err := table.AddPlayer(b.Name, buyIn); err != nil {
			return nil, fmt.Errorf("seating %s: %w", b.Name, err)
		}
		st.engine.SetAgent(b.Name, agent)
	}
	return st, nil
}

// standings summarizes every player who sat at the table
func (st *seatedTable) standings() []render.Standing {
	stacks := map[string]int{}
	for _, p := range st.table.Players() {
		stacks[p.Name] = p.Chips
	}

	var rows []render.Standing
	for _, name := range slices.Sorted(maps.Keys(st.tally.buyIns)) {
		buyIn := st.tally.buyIns[name]
		chips, seated := stacks[name]
		if !seated {
			chips = st.tally.left[name]
		}
		row := render.Standing{
			Name:  name,
			Chips: chips,
			Net:   chips - buyIn,
		}
		if s := st.stats.Get(name); s != nil {
			row.Hands = s.Hands
			row.BBPer100 = s.BBPer100()
			row.Margin = 1.96 * s.StdError() * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// tally remembers buy-ins and the stacks players left with
type tally struct {
	buyIns map[string]int
	left   map[string]int
}

func newTally() *tally {
	return &tally{
		buyIns: map[string]int{},
		left:   map[string]int{},
	}
}

func (t *tally) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.PlayerJoinedEvent:
		if _, ok := t.buyIns[e.Player]; !ok {
			t.buyIns[e.Player] = e.Chips
		}
	case game.PlayerLeftEvent:
		t.left[e.Player] = e.Chips
	}
}

func seedFor(flag *int64, cfg *config.Config, logger *log.Logger) int64 {
	switch {
	case flag != nil:
		return *flag
	case cfg.Settings.Seed != 0:
		return cfg.Settings.Seed
	}
	seed := randutil.Seed()
	logger.Info("Using random seed", "seed", seed)
	return seed
}
