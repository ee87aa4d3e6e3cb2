package game

import "slices"

// ScoreLine is one participant's result for a scored round
type ScoreLine struct {
	Seat   int
	Player string
	Points int // Points banked this round, 0 when busted
	Busted bool
	Total  int // Cumulative total after this round
}

// ScoreBoard keeps cumulative totals for a match and detects the winner
type ScoreBoard struct {
	names  []string
	totals []int
	target int
}

// NewScoreBoard creates a board with every total at zero
func NewScoreBoard(names []string, target int) *ScoreBoard {
	return &ScoreBoard{
		names:  slices.Clone(names),
		totals: make([]int, len(names)),
		target: target,
	}
}

// ScoreRound adds each seat's round points to its total in seat order. The
// first seat whose total reaches the target wins and stops scoring for this
// call; later seats are left unscored. The returned lines cover the seats
// that were scored.
func (s *ScoreBoard) ScoreRound(state *RoundState) ([]ScoreLine, int, bool) {
	lines := make([]ScoreLine, 0, len(s.totals))
	for seat := range s.totals {
		busted := state.Status(seat) == Busted
		points := 0
		if !busted {
			points = state.Points(seat)
		}

		s.totals[seat] += points
		lines = append(lines, ScoreLine{
			Seat:   seat,
			Player: s.names[seat],
			Points: points,
			Busted: busted,
			Total:  s.totals[seat],
		})

		if s.totals[seat] >= s.target {
			return lines, seat, true
		}
	}
	return lines, -1, false
}

// Total returns the cumulative total for seat
func (s *ScoreBoard) Total(seat int) int {
	return s.totals[seat]
}

// Totals returns a copy of every cumulative total in seat order
func (s *ScoreBoard) Totals() []int {
	return slices.Clone(s.totals)
}

// Target returns the score needed to win
func (s *ScoreBoard) Target() int {
	return s.target
}
