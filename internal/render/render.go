// Package render formats cards, table events and hand results for a terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/holdem/game"
	"github.com/lox/holdem/poker"
)

// Styles holds the styles used for each element
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Player    lipgloss.Style
	Action    lipgloss.Style
	Street    lipgloss.Style
	Winner    lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
}

// Renderer renders for a single output
type Renderer struct {
	lg     *lipgloss.Renderer
	Styles Styles
}

// New creates a renderer for w. When color is false every style renders as
// plain text.
func New(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if !color {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{lg: lg, Styles: defaultStyles(lg)}
}

func defaultStyles(lg *lipgloss.Renderer) Styles {
	return Styles{
		Header: lg.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		RedCard: lg.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lg.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Player: lg.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Action: lg.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Street: lg.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		Winner: lg.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Info: lg.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Warning: lg.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
	}
}

// Header renders a title bar
func (r *Renderer) Header(title string) string {
	return r.Styles.Header.Render(" " + title + " ")
}

// Card renders a card with its suit symbol, red or black
func (r *Renderer) Card(c poker.Card) string {
	if c.IsRed() {
		return r.Styles.RedCard.Render(c.Symbol())
	}
	return r.Styles.BlackCard.Render(c.Symbol())
}

// Cards renders cards in brackets, e.g. [A♠ K♥]. No cards renders as "".
func (r *Renderer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return ""
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Event renders a single table event as one or more lines. Events with
// nothing worth showing render as "".
func (r *Renderer) Event(event game.GameEvent) string {
	switch e := event.(type) {
	case game.NewRoundEvent:
		return fmt.Sprintf("%s button %s, blinds %s %d / %s %d",
			r.Styles.Street.Render(fmt.Sprintf("Hand #%d", e.HandNumber)),
			r.Styles.Player.Render(e.Button),
			r.Styles.Player.Render(e.SmallBlind.Player), e.SmallBlind.Amount,
			r.Styles.Player.Render(e.BigBlind.Player), e.BigBlind.Amount)
	case game.DealEvent:
		if e.Street == game.Preflop {
			return ""
		}
		return fmt.Sprintf("%s %s", r.Styles.Street.Render("*** "+strings.ToUpper(e.Street.String())+" ***"), r.Cards(e.Board))
	case game.PlayerActionEvent:
		return r.Action(e)
	case game.GameOverEvent:
		return r.Result(e.Result)
	case game.PlayerJoinedEvent:
		return r.Styles.Info.Render(fmt.Sprintf("%s joins seat %d with %d", e.Player, e.Seat+1, e.Chips))
	case game.PlayerLeftEvent:
		if e.Reason == game.LeftBusted {
			return r.Styles.Warning.Render(fmt.Sprintf("%s is busted", e.Player))
		}
		return r.Styles.Info.Render(fmt.Sprintf("%s leaves with %d", e.Player, e.Chips))
	}
	return ""
}

// Action renders a player action, naming the bet level for raises
func (r *Renderer) Action(e game.PlayerActionEvent) string {
	var what string
	switch {
	case e.BetName != "":
		what = fmt.Sprintf("%s to %d", e.BetName, e.Total)
		if e.Action == game.AllIn {
			what += " (all-in)"
		}
	case e.Action == game.AllIn:
		what = fmt.Sprintf("calls %d (all-in)", e.Added)
	case e.Action == game.Call:
		what = fmt.Sprintf("calls %d", e.Added)
	case e.Action == game.Check:
		what = "checks"
	case e.Action == game.Fold:
		what = "folds"
	default:
		what = e.Action.String()
	}
	return fmt.Sprintf("%s %s %s", r.Styles.Player.Render(e.Player), r.Styles.Action.Render(what), r.Styles.Info.Render(fmt.Sprintf("(pot %d)", e.PotAfter)))
}

// Result renders the shown hands and winners of a settled hand
func (r *Renderer) Result(res game.HandResult) string {
	var lines []string
	for _, h := range res.Hands {
		lines = append(lines, fmt.Sprintf("%s shows %s %s",
			r.Styles.Player.Render(h.Name), r.Cards(h.Hole), r.Styles.Info.Render(h.Rank.Describe())))
	}
	for _, w := range res.Winners {
		line := fmt.Sprintf("%s wins %d", w.Name, w.Amount)
		if res.Showdown && w.Rank != 0 {
			line += " with " + w.Rank.Describe()
		}
		lines = append(lines, r.Styles.Winner.Render(line))
	}
	return strings.Join(lines, "\n")
}

// Seats renders the players at the table, one row each, marking the button
// and the player due to act.
func (r *Renderer) Seats(state game.TableState) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seat", "Player", "Chips", "Bet", "Cards")
	for i, p := range state.Players {
		name := p.Name
		if name == state.Button {
			name += " (D)"
		}
		if i == state.ActingPlayerIdx {
			name = "> " + name
		}
		cards := r.Cards(p.Hole)
		switch {
		case p.Folded:
			cards = "folded"
		case p.InHand && cards == "":
			cards = "[? ?]"
		}
		t.Row(fmt.Sprint(p.Seat+1), name, fmt.Sprint(p.Chips), fmt.Sprint(p.Bet), cards)
	}

	board := "Board: " + r.Cards(state.Board)
	pot := fmt.Sprintf("Pot: %d", state.TotalPot)
	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), board, pot)
}

// Standing is one row of a chip-count summary
type Standing struct {
	Name     string
	Chips    int
	Hands    int
	Net      int
	BBPer100 float64
	Margin   float64 // half-width of the 95% interval, in bb/100
}

// Standings renders a summary table sorted by net result, best first
func (r *Renderer) Standings(title string, rows []Standing) string {
	sorted := append([]Standing(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Net > sorted[j].Net })

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Player", "Hands", "Chips", "Net", "bb/100")
	for _, s := range sorted {
		t.Row(s.Name, fmt.Sprint(s.Hands), fmt.Sprint(s.Chips), fmt.Sprintf("%+d", s.Net),
			fmt.Sprintf("%+.1f ± %.1f", s.BBPer100, s.Margin))
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.Header(title), t.Render())
}

// Printer is a game.EventSubscriber that writes rendered events to w
type Printer struct {
	w io.Writer
	r *Renderer
}

// NewPrinter creates a printer
func NewPrinter(w io.Writer, r *Renderer) *Printer {
	return &Printer{w: w, r: r}
}

// OnEvent implements game.EventSubscriber
func (p *Printer) OnEvent(event game.GameEvent) {
	if s := p.r.Event(event); s != "" {
		fmt.Fprintln(p.w, s)
	}
}
