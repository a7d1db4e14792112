package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/render"
)

// HistoryCmd prints PHH hand history files written by play or simulate
type HistoryCmd struct {
	Files []string `arg:"" name:"file" help:"PHH files to show"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	r := g.renderer()
	for _, path := range c.Files {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		hand, err := phh.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(formatHistory(r, hand))
		fmt.Println()
	}
	return nil
}

func formatHistory(r *render.Renderer, h *phh.HandHistory) string {
	var b strings.Builder
	title := fmt.Sprintf("%s hand %s", h.Variant, h.HandID)
	if h.Table != "" {
		title = h.Table + ": " + title
	}
	fmt.Fprintln(&b, r.Header(title))
	if h.Year != 0 {
		fmt.Fprintln(&b, r.Styles.Info.Render(fmt.Sprintf("%04d-%02d-%02d %s %s", h.Year, h.Month, h.Day, h.Time, h.TimeZone)))
	}

	for i, name := range h.Players {
		line := fmt.Sprintf("p%d %s starts with %d", i+1, r.Styles.Player.Render(name), at(h.StartingStacks, i))
		if won := at(h.Winnings, i); won > 0 {
			line += " " + r.Styles.Winner.Render(fmt.Sprintf("wins %d", won))
		}
		fmt.Fprintln(&b, line)
	}
	for _, action := range h.Actions {
		fmt.Fprintln(&b, "  "+r.Styles.Action.Render(action))
	}
	return strings.TrimRight(b.String(), "\n")
}

func at(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
