// Package console renders a match as text and lets a person play from a
// terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/flipseven/cards"
	"github.com/lox/flipseven/internal/game"
	"github.com/muesli/termenv"
)

// Option configures a Renderer
type Option func(*Renderer)

// WithNoColor strips all color and styling from the output
func WithNoColor() Option {
	return func(r *Renderer) {
		r.lg.SetColorProfile(termenv.Ascii)
	}
}

// WithPerspective highlights the named participant, usually the human
func WithPerspective(name string) Option {
	return func(r *Renderer) {
		r.perspective = name
	}
}

// Renderer is a game.EventSubscriber that writes one line per event
type Renderer struct {
	out         io.Writer
	lg          *lipgloss.Renderer
	styles      Styles
	perspective string
}

// NewRenderer creates a renderer writing to w. The color profile is detected
// from w, so output to a pipe or file is plain text.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out: w,
		lg:  lipgloss.NewRenderer(w),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = NewStyles(r.lg)
	return r
}

// Styles returns the styles in use
func (r *Renderer) Styles() Styles {
	return r.styles
}

// OnEvent renders a single event
func (r *Renderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Header.Render(fmt.Sprintf("Round %d", e.Round)))
		names := make([]string, len(e.Players))
		for i, name := range e.Players {
			names[i] = r.name(name)
		}
		fmt.Fprintln(r.out, r.styles.Info.Render("Players: ")+strings.Join(names, ", "))

	case game.CardDrawnEvent:
		verb := "draws"
		if e.Forced {
			verb = "is forced to draw"
		}
		fmt.Fprintf(r.out, "%s %s %s\n", r.name(e.Player), verb, r.Card(e.Card))

	case game.PlayerStayedEvent:
		line := fmt.Sprintf("%s stays with %d points", r.name(e.Player), e.Points)
		if e.Forced {
			line += r.styles.Info.Render(" (deck exhausted)")
		}
		fmt.Fprintln(r.out, r.styles.Stayed.Render("✓ ")+line)

	case game.PlayerBustedEvent:
		fmt.Fprintf(r.out, "%s %s busts on a duplicate %s\n",
			r.styles.Busted.Render("✗"), r.name(e.Player), r.Card(e.Card))

	case game.PlayerFrozenEvent:
		target := r.name(e.Player)
		if e.Seat == e.ActorSeat {
			target = "themself"
		}
		fmt.Fprintf(r.out, "%s %s freezes %s, banking %d points\n",
			r.styles.Frozen.Render("❄"), r.name(e.Actor), target, e.Points)

	case game.SecondChanceEvent:
		fmt.Fprintf(r.out, "%s discards %s and the duplicate %s\n",
			r.name(e.Player), r.Card(cards.NewAction(cards.SecondChance)), r.Card(e.Card))

	case game.ActionCardPlayedEvent:
		fmt.Fprintf(r.out, "%s plays %s on %s\n", r.name(e.Actor), r.Card(e.Card), r.name(e.Target))

	case game.DeckEmptyEvent:
		fmt.Fprintln(r.out, r.styles.Info.Render(fmt.Sprintf("The deck is empty, %s cannot draw", e.Player)))

	case game.RoundScoredEvent:
		r.renderScores(e)

	case game.MatchWonEvent:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Winner.Render(
			fmt.Sprintf("🏆 %s wins the match with %d points after %d rounds", e.Player, e.Total, e.Round)))
	}
}

func (r *Renderer) renderScores(e game.RoundScoredEvent) {
	width := 0
	for _, line := range e.Lines {
		width = max(width, len(line.Player))
	}

	fmt.Fprintln(r.out, r.styles.Info.Render(fmt.Sprintf("Round %d results", e.Round)))
	for _, line := range e.Lines {
		name := r.name(fmt.Sprintf("%-*s", width, line.Player))
		var result string
		if line.Busted {
			result = r.styles.Busted.Render("BUST (0 points)")
		} else {
			result = fmt.Sprintf("%d points", line.Points)
		}
		fmt.Fprintf(r.out, "  %s  %s  total %d\n", name, result, line.Total)
	}
}

// Card renders a single card
func (r *Renderer) Card(c cards.Card) string {
	if c.IsAction() {
		return r.styles.Action.Render(c.String())
	}
	return r.styles.Card.Render(c.String())
}

// Hand renders cards separated by spaces, or "empty"
func (r *Renderer) Hand(hand []cards.Card) string {
	if len(hand) == 0 {
		return r.styles.Info.Render("empty")
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) name(name string) string {
	if r.perspective != "" && strings.TrimSpace(name) == r.perspective {
		return r.styles.Highlight.Render(name)
	}
	return name
}

var _ game.EventSubscriber = (*Renderer)(nil)
