package phh

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/poker"
)

// FormatCards joins cards without separators, e.g. "AhKh"
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// DealHole records hole cards dealt to a player. Unknown cards are written as "??".
func DealHole(seat int, cards []poker.Card) string {
	if len(cards) == 0 {
		return fmt.Sprintf("d dh %s ????", player(seat))
	}
	return fmt.Sprintf("d dh %s %s", player(seat), FormatCards(cards))
}

// DealBoard records community cards
func DealBoard(cards []poker.Card) string {
	return "d db " + FormatCards(cards)
}

// ShowHand records a player showing their cards at showdown
func ShowHand(seat int, cards []poker.Card) string {
	return fmt.Sprintf("%s sm %s", player(seat), FormatCards(cards))
}

func player(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}
