// Package history records hands played at a table in PHH format.
package history

import (
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/poker"
)

// Writer persists finished hands
type Writer interface {
	WriteHand(hand *phh.HandHistory) error
}

// DirWriter writes each hand to <Dir>/<hand id>.phh
type DirWriter struct {
	Dir string
}

func (w DirWriter) WriteHand(hand *phh.HandHistory) error {
	path := filepath.Join(w.Dir, hand.HandID+".phh")
	return fileutil.WriteAtomic(path, 0o644, func(out io.Writer) error {
		return phh.Encode(out, hand)
	})
}

// Recorder is a game.EventSubscriber that builds a PHH record of each hand
// and hands it to a Writer once the hand is settled.
type Recorder struct {
	mu      sync.Mutex
	cfg     game.Config
	writer  Writer
	logger  *log.Logger
	holeFn  func(name string) ([]poker.Card, error)
	current *phh.HandHistory
	seats   map[string]int // player name to PHH position
}

// Option configures a Recorder
type Option func(*Recorder)

// WithHoleCards lets the recorder look up private hole cards. Without it
// hole cards are recorded as unknown until shown.
func WithHoleCards(fn func(name string) ([]poker.Card, error)) Option {
	return func(r *Recorder) {
		r.holeFn = fn
	}
}

// WithLogger sets the logger used to report write failures
func WithLogger(logger *log.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a recorder for a table with the given config
func NewRecorder(cfg game.Config, writer Writer, opts ...Option) *Recorder {
	r := &Recorder{
		cfg:    cfg,
		writer: writer,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.NewRoundEvent:
		r.start(e)
	case game.DealEvent:
		r.deal(e)
	case game.PlayerActionEvent:
		r.action(e)
	case game.GameOverEvent:
		r.finish(e)
	}
}

// start lays out the players from the first seat left of the button, which
// puts the blinds first as PHH expects.
func (r *Recorder) start(e game.NewRoundEvent) {
	n := len(e.Players)
	button := slices.IndexFunc(e.Players, func(p game.PlayerState) bool { return p.Name == e.Button })

	h := &phh.HandHistory{
		Table:             r.cfg.Name,
		SeatCount:         r.cfg.MaxPlayers,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		StartingStacks:    make([]int, n),
		Actions:           []string{},
		HandID:            e.HandID,
	}
	h.SetTime(e.Time)
	if r.cfg.Limit == game.NoLimit {
		h.Variant = phh.NoLimitHoldem
		h.MinBet = r.cfg.BigBlind
	} else {
		h.Variant = phh.FixedLimitHoldem
		h.SmallBet = r.cfg.BigBlind
		h.BigBet = 2 * r.cfg.BigBlind
	}

	r.seats = make(map[string]int, n)
	for k := range n {
		p := e.Players[(button+1+k)%n]
		r.seats[p.Name] = k
		h.Players = append(h.Players, p.Name)
		h.Seats = append(h.Seats, p.Seat+1)
		h.StartingStacks[k] = p.Chips
	}
	h.BlindsOrStraddles[r.seats[e.SmallBlind.Player]] = e.SmallBlind.Amount
	h.BlindsOrStraddles[r.seats[e.BigBlind.Player]] = e.BigBlind.Amount
	r.current = h
}

func (r *Recorder) deal(e game.DealEvent) {
	if r.current == nil || r.current.HandID != e.HandID {
		return
	}
	if e.Street != game.Preflop {
		r.current.Actions = append(r.current.Actions, phh.DealBoard(e.Cards))
		return
	}
	for _, name := range e.Dealt {
		var hole []poker.Card
		if r.holeFn != nil {
			hole, _ = r.holeFn(name)
		}
		r.current.Actions = append(r.current.Actions, phh.DealHole(r.seats[name], hole))
	}
}

func (r *Recorder) action(e game.PlayerActionEvent) {
	if r.current == nil || r.current.HandID != e.HandID {
		return
	}
	name := e.Action.String()
	if e.Action == game.AllIn && e.BetName == "" {
		name = "call"
	}
	if line, ok := phh.FormatAction(r.seats[e.Player], name, e.Total); ok {
		r.current.Actions = append(r.current.Actions, line)
	}
}

func (r *Recorder) finish(e game.GameOverEvent) {
	h := r.current
	if h == nil || h.HandID != e.Result.HandID {
		return
	}
	r.current = nil

	for _, shown := range e.Result.Hands {
		h.Actions = append(h.Actions, phh.ShowHand(r.seats[shown.Name], shown.Hole))
	}
	h.FinishingStacks = make([]int, len(h.Players))
	h.Winnings = make([]int, len(h.Players))
	for k, name := range h.Players {
		h.FinishingStacks[k] = e.Result.Stacks[name]
		h.Winnings[k] = e.Result.Won(name)
	}

	if err := r.writer.WriteHand(h); err != nil {
		r.logger.Error("Failed to write hand history", "hand", h.HandID, "error", err)
		return
	}
	r.logger.Debug("Hand history written", "hand", h.HandID)
}

// MemoryWriter keeps hands in memory
type MemoryWriter struct {
	mu    sync.Mutex
	hands []*phh.HandHistory
}

func (w *MemoryWriter) WriteHand(hand *phh.HandHistory) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hands = append(w.hands, hand)
	return nil
}

// Hands returns the hands written so far
func (w *MemoryWriter) Hands() []*phh.HandHistory {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.hands)
}
