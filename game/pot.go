package game

import (
	"slices"
	"strings"

	"github.com/lox/holdem/poker"
)

// Stake is one player's claim on the pot at settlement
type Stake struct {
	Name      string
	Committed int
	Folded    bool
	AllIn     bool
	Rank      poker.HandRank
}

// Pot is a main or side pot and the players who can win it
type Pot struct {
	Amount   int
	Eligible []string
}

// PotAward is a settled pot. Shares is parallel to Winners.
type PotAward struct {
	Pot
	Winners []string
	Shares  []int
}

// SidePots splits the committed chips into a main pot and side pots.
//
// Each all-in contender caps a pot at their total; everything above the last
// cap forms the final pot. Folded players contribute but are never eligible.
// Chips no contender can claim are swept into the last eligible pot.
func SidePots(stakes []Stake) []Pot {
	var levels []int
	for _, s := range stakes {
		if !s.Folded && s.AllIn && s.Committed > 0 {
			levels = append(levels, s.Committed)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	highest := 0
	for _, s := range stakes {
		highest = max(highest, s.Committed)
	}
	if len(levels) == 0 || levels[len(levels)-1] < highest {
		levels = append(levels, highest)
	}

	var pots []Pot
	prev := 0
	for _, level := range levels {
		var pot Pot
		for _, s := range stakes {
			pot.Amount += max(min(s.Committed, level)-prev, 0)
			if !s.Folded && s.Committed > prev {
				pot.Eligible = append(pot.Eligible, s.Name)
			}
		}
		prev = level
		if pot.Amount == 0 {
			continue
		}
		if len(pot.Eligible) == 0 {
			if len(pots) > 0 {
				pots[len(pots)-1].Amount += pot.Amount
			}
			continue
		}
		pots = append(pots, pot)
	}
	return pots
}

// Settle divides the pots among the best ranked eligible stakes. Split pots
// are shared evenly with odd chips handed out one at a time in order, which
// lists player names clockwise from the seat left of the button.
func Settle(stakes []Stake, order []string) []PotAward {
	ranks := make(map[string]poker.HandRank, len(stakes))
	for _, s := range stakes {
		ranks[s.Name] = s.Rank
	}

	pots := SidePots(stakes)
	awards := make([]PotAward, 0, len(pots))
	for _, pot := range pots {
		var best poker.HandRank
		var winners []string
		for _, name := range pot.Eligible {
			switch r := ranks[name]; {
			case len(winners) == 0 || r > best:
				best, winners = r, []string{name}
			case r == best:
				winners = append(winners, name)
			}
		}
		winners = orderNames(winners, order)

		shares := make([]int, len(winners))
		each, odd := pot.Amount/len(winners), pot.Amount%len(winners)
		for i := range winners {
			shares[i] = each
			if i < odd {
				shares[i]++
			}
		}
		awards = append(awards, PotAward{Pot: pot, Winners: winners, Shares: shares})
	}
	return awards
}

// orderNames sorts names by their position in order. Names missing from
// order go last, alphabetically.
func orderNames(names, order []string) []string {
	pos := func(name string) int {
		if i := slices.Index(order, name); i >= 0 {
			return i
		}
		return len(order)
	}
	out := slices.Clone(names)
	slices.SortStableFunc(out, func(a, b string) int {
		if d := pos(a) - pos(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return out
}
