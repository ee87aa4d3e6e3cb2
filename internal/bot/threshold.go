package bot

import "github.com/lox/flipseven/internal/game"

// Threshold hits until its round points reach HitUntil, then stays. It
// ignores the odds entirely.
type Threshold struct {
	game.FirstEligible
	HitUntil int
}

// NewThreshold creates a bot that stays once it holds hitUntil points
func NewThreshold(hitUntil int) *Threshold {
	return &Threshold{HitUntil: hitUntil}
}

func (b *Threshold) Decide(s game.Snapshot) game.Action {
	if s.Points < b.HitUntil {
		return game.Hit
	}
	return game.Stay
}

var _ game.Agent = (*Threshold)(nil)
