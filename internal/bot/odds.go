package bot

import "github.com/lox/flipseven/internal/game"

// Odds hits while the success estimate is at least MinOdds, and never past
// the HitUntil cap.
type Odds struct {
	game.FirstEligible
	MinOdds  float64
	HitUntil int
}

// NewOdds creates an odds-driven bot
func NewOdds(minOdds float64, hitUntil int) *Odds {
	return &Odds{MinOdds: minOdds, HitUntil: hitUntil}
}

func (b *Odds) Decide(s game.Snapshot) game.Action {
	if s.Points >= b.HitUntil {
		return game.Stay
	}
	if s.DrawPileSize == 0 {
		// Hitting recycles the discard pile, which the estimate cannot see.
		return game.Hit
	}
	if s.SuccessProbability >= b.MinOdds {
		return game.Hit
	}
	return game.Stay
}

var _ game.Agent = (*Odds)(nil)
