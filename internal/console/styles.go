package console

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for match output
type Styles struct {
	Header    lipgloss.Style // "Round 3"
	Info      lipgloss.Style
	Card      lipgloss.Style // number cards
	Action    lipgloss.Style // action cards
	Stayed    lipgloss.Style
	Busted    lipgloss.Style
	Frozen    lipgloss.Style
	Winner    lipgloss.Style
	Highlight lipgloss.Style // the perspective player's name
	Prompt    lipgloss.Style
}

// NewStyles creates the styles bound to a renderer, so the color profile of
// the output stream is respected.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Card: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Stayed: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Busted: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Frozen: r.NewStyle().
			Foreground(lipgloss.Color("#81ECEC")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Highlight: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
	}
}
