package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/unogame/internal/api/response"
	"github.com/mcoot/unogame/internal/services/view"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	styles styles
}

type styles struct {
	cards  map[string]lipgloss.Style
	header lipgloss.Style
	turn   lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	// Colours only appear when w is a terminal
	r := lipgloss.NewRenderer(w)
	card := func(c string) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}
	return styles{
		cards: map[string]lipgloss.Style{
			"red":    card("9"),
			"yellow": card("11"),
			"green":  card("10"),
			"blue":   card("12"),
			"wild":   card("13"),
		},
		header: r.NewStyle().Bold(true),
		turn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		dim:    r.NewStyle().Faint(true),
	}
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w, styles: newStyles(w)}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.Health:
		_, _ = fmt.Fprintf(o.w, "Server status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

var valueLabels = map[string]string{
	"SKIP":           "Skip",
	"REVERSE":        "Reverse",
	"DRAW_TWO":       "+2",
	"WILD":           "Wild",
	"WILD_DRAW_FOUR": "Wild +4",
}

// CardLabel renders a card as "<colour> <value>", e.g. "red 7" or "wild +4"
func CardLabel(c view.Card) string {
	value, ok := valueLabels[c.Value]
	if !ok {
		value = c.Value
	}
	if c.Color == "wild" {
		return strings.ToLower(value)
	}
	return c.Color + " " + value
}

func (o *Output) card(c view.Card) string {
	label := "[" + CardLabel(c) + "]"
	if st, ok := o.styles.cards[c.Color]; ok {
		return st.Render(label)
	}
	return label
}

func (o *Output) printGame(g response.Game) {
	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(o.w, format, args...)
	}

	p("%s %s  round %d  %s\n", o.styles.header.Render("Game"), g.GameID, g.Round, g.Status)
	if g.Message != "" {
		p("%s\n", g.Message)
	}

	if g.DiscardTop != nil {
		p("\nTop: %s", o.card(*g.DiscardTop))
		if g.CurrentColor != nil && *g.CurrentColor != g.DiscardTop.Color {
			p("  colour: %s", o.styles.cards[*g.CurrentColor].Render(*g.CurrentColor))
		}
		p("\n")
	}
	direction := "clockwise"
	if g.Direction < 0 {
		direction = "anticlockwise"
	}
	p("Draw pile: %d  Direction: %s\n", g.DrawPileCount, direction)
	if g.PendingDraw > 0 {
		p("Pending draw: %d\n", g.PendingDraw)
	}

	p("\nPlayers:\n")
	for i, pl := range g.Players {
		marker := "  "
		if i == g.CurrentPlayerIndex && g.Status == "playing" {
			marker = o.styles.turn.Render("> ")
		}
		var tags []string
		if pl.IsAI {
			tags = append(tags, "AI")
		}
		if pl.IsYou {
			tags = append(tags, "you")
		}
		tag := ""
		if len(tags) > 0 {
			tag = " " + o.styles.dim.Render("("+strings.Join(tags, ", ")+")")
		}
		p("%s%s [%s]%s  %d cards  %d pts\n", marker, pl.Name, pl.ID, tag, pl.HandCount, pl.Score)
	}

	p("\nHand (%s):\n", g.You.PlayerID)
	if len(g.You.Hand) == 0 {
		p("  %s\n", o.styles.dim.Render("empty"))
	}
	for _, c := range g.You.Hand {
		drew := ""
		if g.LastDrawnCardID != nil && *g.LastDrawnCardID == c.ID {
			drew = o.styles.dim.Render("  (drawn)")
		}
		p("  %-14s %s%s\n", c.ID, o.card(c), drew)
	}

	if g.WinnerPlayerID != nil {
		p("\nWinner: %s\n", *g.WinnerPlayerID)
	}
}
