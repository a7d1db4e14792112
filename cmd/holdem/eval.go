package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/poker"
)

// EvalCmd ranks hands given on the command line
type EvalCmd struct {
	Hands []string `arg:"" name:"hand" help:"Cards such as \"As Ks Qs Js Ts\" (quote each hand)"`
}

func (c *EvalCmd) Run(g *Globals) error {
	r := g.renderer()

	ranks := make([]poker.HandRank, len(c.Hands))
	for i, h := range c.Hands {
		cards, err := poker.ParseCards(h)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		best, rank, err := poker.BestHand(cards)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		ranks[i] = rank
		fmt.Printf("%d. %s  %s  %s\n", i+1, r.Cards(cards), r.Styles.Info.Render("best"), r.Cards(best))
		fmt.Printf("   %s\n", rank.Describe())
	}

	if len(ranks) < 2 {
		return nil
	}
	var top poker.HandRank
	for _, hr := range ranks {
		top = max(top, hr)
	}
	var winners []string
	for i, hr := range ranks {
		if hr == top {
			winners = append(winners, fmt.Sprint(i+1))
		}
	}
	label := "Winner: hand "
	if len(winners) > 1 {
		label = "Split between hands "
	}
	fmt.Println(r.Styles.Winner.Render(label + strings.Join(winners, ", ")))
	return nil
}
