// Package statistics tracks per-player results in big blinds across many hands.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/lox/holdem/game"
)

// HandResult is one player's outcome in a single hand
type HandResult struct {
	NetBB          float64 // big blinds won or lost
	WentToShowdown bool
	FinalPotSize   int
	StreetReached  game.Street
}

// Statistics accumulates a player's results
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for the median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // wins and losses at showdown
	NonShowdownBB   float64
	AllBB           float64

	MaxPotChips int
}

// Mean returns big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 returns big blinds won per hundred hands
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates one hand
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	s.MaxPotChips = max(s.MaxPotChips, result.FinalPotSize)
}

// Median returns the median result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated result at p, from 0.0 to 1.0
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that showdown and non-showdown results add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the internal consistency of the accumulated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	return nil
}

// Collector is a game.EventSubscriber that records every player's result
// for each hand played at a table.
type Collector struct {
	bigBlind int
	start    map[string]int
	street   game.Street
	players  map[string]*Statistics
}

// NewCollector creates a collector for a table with the given big blind
func NewCollector(bigBlind int) *Collector {
	return &Collector{
		bigBlind: bigBlind,
		players:  make(map[string]*Statistics),
	}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.NewRoundEvent:
		c.start = make(map[string]int, len(e.Players))
		for _, p := range e.Players {
			c.start[p.Name] = p.Chips
		}
		c.street = game.Preflop
	case game.DealEvent:
		c.street = e.Street
	case game.GameOverEvent:
		c.settle(e.Result)
	}
}

func (c *Collector) settle(res game.HandResult) {
	shown := make(map[string]bool, len(res.Hands))
	for _, h := range res.Hands {
		shown[h.Name] = true
	}
	street := c.street
	if res.Showdown {
		street = game.Showdown
	}
	for name, before := range c.start {
		after, ok := res.Stacks[name]
		if !ok {
			continue
		}
		s := c.players[name]
		if s == nil {
			s = &Statistics{}
			c.players[name] = s
		}
		s.Add(HandResult{
			NetBB:          float64(after-before) / float64(c.bigBlind),
			WentToShowdown: shown[name],
			FinalPotSize:   res.TotalPot(),
			StreetReached:  street,
		})
	}
	c.start = nil
}

// Players returns the names of every player with results, sorted
func (c *Collector) Players() []string {
	names := make([]string, 0, len(c.players))
	for name := range c.players {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a player's statistics, or nil if they never played a hand
func (c *Collector) Get(name string) *Statistics {
	return c.players[name]
}
