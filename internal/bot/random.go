package bot

import (
	rand "math/rand/v2"

	"github.com/lox/flipseven/internal/game"
)

// Random hits with a fixed probability and picks targets uniformly
type Random struct {
	HitChance float64
	rng       *rand.Rand
}

// NewRandom creates a random bot. A nil rng uses the global source.
func NewRandom(hitChance float64, rng *rand.Rand) *Random {
	return &Random{HitChance: hitChance, rng: rng}
}

func (b *Random) Decide(game.Snapshot) game.Action {
	if b.roll() < b.HitChance {
		return game.Hit
	}
	return game.Stay
}

func (b *Random) ChooseTarget(req game.TargetRequest) string {
	if len(req.Eligible) == 0 {
		return ""
	}
	return req.Eligible[b.pick(len(req.Eligible))]
}

func (b *Random) roll() float64 {
	if b.rng == nil {
		return rand.Float64()
	}
	return b.rng.Float64()
}

func (b *Random) pick(n int) int {
	if b.rng == nil {
		return rand.IntN(n)
	}
	return b.rng.IntN(n)
}

var _ game.Agent = (*Random)(nil)
