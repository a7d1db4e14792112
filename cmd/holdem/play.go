package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/render"
	"github.com/lox/holdem/shotclock"
)

// PlayCmd plays hands at one table and prints them as they happen
type PlayCmd struct {
	Table     string        `help:"Table to play at (default: the first configured)"`
	Hands     int           `short:"n" help:"Number of hands (default from config)"`
	Seed      *int64        `help:"Deterministic RNG seed (default from config, else random)"`
	Name      string        `help:"Take a seat under this name and play from the terminal"`
	BuyIn     int           `help:"Buy-in for your seat (default: half the table maximum)"`
	ShotClock time.Duration `help:"Time allowed per decision (default from config, 0 = unlimited)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	r := g.renderer()

	tc := cfg.Tables[0]
	if c.Table != "" {
		t := cfg.Table(c.Table)
		if t == nil {
			return fmt.Errorf("unknown table %q", c.Table)
		}
		tc = *t
	}
	hands := c.Hands
	if hands <= 0 {
		hands = cfg.Settings.Hands
	}

	st, err := setupTable(cfg, tc, seedFor(c.Seed, cfg, logger), logger)
	if err != nil {
		return err
	}
	st.table.Subscribe(render.NewPrinter(os.Stdout, r))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println(r.Header(fmt.Sprintf("♠ ♥ %s: %d/%d %s ♦ ♣", tc.Name, tc.SmallBlind, tc.BigBlind, tc.Limit)))
	fmt.Println()

	if c.Name == "" {
		_, err := st.engine.Run(ctx, hands, func(game.HandResult) { fmt.Println() })
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else if err := c.playSeat(ctx, st, tc, hands, r); err != nil {
		return err
	}

	fmt.Println(r.Standings("Standings", st.standings()))
	return nil
}

// playSeat seats the terminal user and plays until hands are done, the user
// busts or stdin closes. Bots act immediately; the user is on the shot clock.
func (c *PlayCmd) playSeat(ctx context.Context, st *seatedTable, tc config.TableConfig, hands int, r *render.Renderer) error {
	buyIn := c.BuyIn
	if buyIn == 0 {
		buyIn = tc.BuyInMax / 2
	}
	if err := st.table.AddPlayer(c.Name, buyIn); err != nil {
		return err
	}

	limit := c.ShotClock
	if limit == 0 {
		var err error
		if limit, err = tc.ShotClockDuration(); err != nil {
			return err
		}
	}
	timeouts := make(chan shotclock.Timeout, 1)
	clock := shotclock.New(st.table, limit, shotclock.OnTimeout(func(to shotclock.Timeout) {
		select {
		case timeouts <- to:
		default:
		}
	}))
	defer clock.Stop()

	lines := readLines(ctx, os.Stdin)

	for played := 0; played < hands; played++ {
		var number int
		err := clock.Do(func(t *game.Table) error {
			if !slices.ContainsFunc(t.Players(), func(p game.PlayerState) bool { return p.Name == c.Name }) {
				return errBusted
			}
			if err := t.NextRound(); err != nil {
				return err
			}
			number = t.HandNumber()
			return nil
		})
		switch {
		case errors.Is(err, errBusted):
			fmt.Println(r.Styles.Warning.Render("You are out of chips"))
			return nil
		case errors.Is(err, game.ErrNotEnoughPlayers):
			return nil
		case err != nil:
			return err
		}

		for {
			var prompt string
			done := false
			err := clock.Do(func(t *game.Table) error {
				if t.State() != game.HandInProgress || t.HandNumber() != number {
					done = true
					return nil
				}
				if name, _ := t.CurrentPlayer(); name != c.Name {
					return st.engine.Step()
				}
				prompt = r.Seats(t.Snapshot(c.Name)) + "\n" + formatValid(t.ValidActions())
				return nil
			})
			if err != nil {
				return err
			}
			if done {
				break
			}
			if prompt == "" {
				continue
			}

			fmt.Println(prompt)
			fmt.Print("> ")
			select {
			case <-ctx.Done():
				return nil
			case to := <-timeouts:
				if to.Player == c.Name {
					fmt.Println()
					fmt.Println(r.Styles.Warning.Render("Time is up, you " + to.Action.String()))
				}
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				action, amount, err := parseCommand(line)
				if err == nil {
					err = clock.Act(c.Name, action, amount)
				}
				if err != nil {
					fmt.Println(r.Styles.Warning.Render(err.Error()))
				}
			}
		}
		fmt.Println()
	}
	return nil
}

var errBusted = errors.New("busted")

// readLines sends each line of r on the returned channel until EOF
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// parseCommand parses input such as "call", "raise 60" or "b 20"
func parseCommand(line string) (game.Action, int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, 0, errors.New("enter an action, e.g. call or raise 40")
	}
	action, err := game.ParseAction(fields[0])
	if err != nil {
		return 0, 0, err
	}
	amount := 0
	if len(fields) > 1 {
		if amount, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid amount %q", fields[1])
		}
	}
	return action, amount, nil
}

// formatValid lists the legal actions, e.g. "fold | call 10 | raise 40"
func formatValid(valid []game.ValidAction) string {
	parts := make([]string, len(valid))
	for i, va := range valid {
		switch {
		case va.Action == game.Fold || va.Action == game.Check:
			parts[i] = va.Action.String()
		case va.MinAmount == va.MaxAmount:
			parts[i] = fmt.Sprintf("%s %d", va.Action, va.MinAmount)
		default:
			parts[i] = fmt.Sprintf("%s %d-%d", va.Action, va.MinAmount, va.MaxAmount)
		}
	}
	return strings.Join(parts, " | ")
}
