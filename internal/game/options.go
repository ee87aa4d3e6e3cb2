package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/flipseven/cards"
)

const (
	// MinPlayers is the smallest supported match
	MinPlayers = 3
	// MaxPlayers is the largest supported match
	MaxPlayers = 18
	// DefaultTargetScore is the total needed to win when none is configured
	DefaultTargetScore = 200
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

// engineConfig holds all configuration for creating an engine.
type engineConfig struct {
	rng       *rand.Rand
	deck      *cards.Deck // If provided, replaces the standard shuffled deck
	target    int
	logger    *log.Logger
	bus       EventBus
	matchID   string
	maxRounds int // 0 means unlimited
	estimator Estimator
}

// WithRNG sets the random source used to shuffle the standard deck.
// Without it the global source is used.
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) {
		c.rng = rng
	}
}

// WithDeck sets a specific deck, typically a preset one for deterministic
// testing. This overrides the RNG for deck creation.
func WithDeck(deck *cards.Deck) Option {
	return func(c *engineConfig) {
		c.deck = deck
	}
}

// WithTargetScore sets the cumulative total needed to win.
// Default is DefaultTargetScore.
func WithTargetScore(target int) Option {
	return func(c *engineConfig) {
		c.target = target
	}
}

// WithLogger sets the logger. Default discards all output.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus that every match event is published on
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) {
		c.bus = bus
	}
}

// WithMatchID sets the match identifier. Default is a random UUID.
func WithMatchID(id string) Option {
	return func(c *engineConfig) {
		c.matchID = id
	}
}

// WithMaxRounds caps how many rounds Play runs before giving up
func WithMaxRounds(n int) Option {
	return func(c *engineConfig) {
		c.maxRounds = n
	}
}

// WithEstimator replaces the success estimate shown to agents
func WithEstimator(estimator Estimator) Option {
	return func(c *engineConfig) {
		c.estimator = estimator
	}
}
