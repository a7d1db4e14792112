package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/render"
)

// SimulateCmd plays bot-only hands on every configured table at once
type SimulateCmd struct {
	Hands    int    `short:"n" help:"Hands per table (default from config)"`
	Seed     *int64 `help:"Deterministic RNG seed (default from config, else random)"`
	Parallel int    `default:"0" help:"Maximum tables running at once (0 = no limit)"`
	Table    string `help:"Only run this table"`
}

type tableSummary struct {
	name      string
	played    int
	elapsed   time.Duration
	standings []render.Standing
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	r := g.renderer()

	hands := c.Hands
	if hands <= 0 {
		hands = cfg.Settings.Hands
	}
	seed := seedFor(c.Seed, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		mu        sync.Mutex
		summaries = make([]tableSummary, len(cfg.Tables))
	)

	eg, ctx := errgroup.WithContext(ctx)
	if c.Parallel > 0 {
		eg.SetLimit(c.Parallel)
	}
	for i, tc := range cfg.Tables {
		if c.Table != "" && tc.Name != c.Table {
			continue
		}
		eg.Go(func() error {
			st, err := setupTable(cfg, tc, randutil.Derive(seed, i), logger)
			if err != nil {
				return fmt.Errorf("table %s: %w", tc.Name, err)
			}

			start := time.Now()
			played, err := st.engine.Run(ctx, hands, func(res game.HandResult) {
				logger.Debug("Hand complete", "table", tc.Name, "hand", res.HandNumber, "pot", res.TotalPot())
			})
			if err != nil {
				return fmt.Errorf("table %s: %w", tc.Name, err)
			}

			mu.Lock()
			summaries[i] = tableSummary{
				name:      tc.Name,
				played:    played,
				elapsed:   time.Since(start),
				standings: st.standings(),
			}
			mu.Unlock()
			logger.Info("Table finished", "table", tc.Name, "hands", played)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, s := range summaries {
		if s.name == "" {
			continue
		}
		title := fmt.Sprintf("%s: %d hands in %s", s.name, s.played, s.elapsed.Round(time.Millisecond))
		fmt.Println(r.Standings(title, s.standings))
		fmt.Println()
	}
	fmt.Println(r.Styles.Info.Render(fmt.Sprintf("seed %d", seed)))
	return nil
}
