// Package bot provides computer-controlled participants.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/flipseven/internal/game"
)

// Strategy names accepted by New
const (
	StrategyThreshold = "threshold"
	StrategyOdds      = "odds"
	StrategyRandom    = "random"
)

// Defaults applied when a Spec leaves a field at zero
const (
	DefaultHitUntil  = 15
	DefaultOddsCap   = 25
	DefaultMinOdds   = 0.7
	DefaultHitChance = 0.5
)

// ErrUnknownStrategy is returned by New for an unrecognised strategy name
var ErrUnknownStrategy = errors.New("unknown bot strategy")

// Spec describes a bot to build. Zero fields take the strategy's default.
type Spec struct {
	Strategy  string
	HitUntil  int     // threshold: stop at this many points; odds: hard cap
	MinOdds   float64 // odds: lowest success estimate worth a hit
	HitChance float64 // random: probability of hitting
}

// Strategies lists every strategy New understands
func Strategies() []string {
	return []string{StrategyThreshold, StrategyOdds, StrategyRandom}
}

// IsStrategy reports whether name is a bot strategy
func IsStrategy(name string) bool {
	return slices.Contains(Strategies(), name)
}

// New builds the agent described by spec. rng is only used by strategies
// that need randomness; nil falls back to the global source.
func New(spec Spec, rng *rand.Rand) (game.Agent, error) {
	if spec.HitUntil < 0 {
		return nil, fmt.Errorf("hit_until must not be negative, given %d", spec.HitUntil)
	}
	if spec.MinOdds < 0 || spec.MinOdds > 1 {
		return nil, fmt.Errorf("min_odds must be between 0 and 1, given %g", spec.MinOdds)
	}
	if spec.HitChance < 0 || spec.HitChance > 1 {
		return nil, fmt.Errorf("hit_chance must be between 0 and 1, given %g", spec.HitChance)
	}

	switch spec.Strategy {
	case StrategyThreshold:
		return NewThreshold(orDefault(spec.HitUntil, DefaultHitUntil)), nil
	case StrategyOdds:
		return NewOdds(orDefault(spec.MinOdds, DefaultMinOdds), orDefault(spec.HitUntil, DefaultOddsCap)), nil
	case StrategyRandom:
		return NewRandom(orDefault(spec.HitChance, DefaultHitChance), rng), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, spec.Strategy, Strategies())
	}
}

func orDefault[T int | float64](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
