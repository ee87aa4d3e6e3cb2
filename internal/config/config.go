// Package config loads match settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/flipseven/internal/bot"
	"github.com/lox/flipseven/internal/game"
)

// StrategyHuman marks a player controlled from the terminal
const StrategyHuman = "human"

// EnvPrefix is prepended to every environment override
const EnvPrefix = "FLIPSEVEN_"

// Config represents a complete match configuration
type Config struct {
	Match   *MatchSettings `hcl:"match,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// MatchSettings contains match-level configuration
type MatchSettings struct {
	TargetScore     int    `hcl:"target_score,optional"`
	Seed            *int64 `hcl:"seed,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"` // Go duration, empty for none
	MaxRounds       int    `hcl:"max_rounds,optional"`       // 0 means unlimited
	LogLevel        string `hcl:"log_level,optional"`
}

// PlayerConfig defines one seat. Seats are filled in file order.
type PlayerConfig struct {
	Name      string  `hcl:"name,label"`
	Strategy  string  `hcl:"strategy"`
	HitUntil  int     `hcl:"hit_until,optional"`
	MinOdds   float64 `hcl:"min_odds,optional"`
	HitChance float64 `hcl:"hit_chance,optional"`
}

// envOverrides are read from FLIPSEVEN_* variables. Unset variables leave the
// file value alone.
type envOverrides struct {
	TargetScore     int    `env:"TARGET_SCORE"`
	Seed            *int64 `env:"SEED"`
	DecisionTimeout string `env:"DECISION_TIMEOUT"`
	MaxRounds       int    `env:"MAX_ROUNDS"`
	LogLevel        string `env:"LOG_LEVEL"`
}

// DefaultMatchSettings returns the settings used when nothing is configured
func DefaultMatchSettings() *MatchSettings {
	return &MatchSettings{
		TargetScore: game.DefaultTargetScore,
		LogLevel:    "info",
	}
}

// Default returns one human against two bots
func Default() *Config {
	return &Config{
		Match: DefaultMatchSettings(),
		Players: []PlayerConfig{
			{Name: "You", Strategy: StrategyHuman},
			{Name: "Bot-1", Strategy: bot.StrategyThreshold, HitUntil: bot.DefaultHitUntil},
			{Name: "Bot-2", Strategy: bot.StrategyOdds, MinOdds: bot.DefaultMinOdds},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Match == nil {
		config.Match = DefaultMatchSettings()
	}
	if config.Match.TargetScore == 0 {
		config.Match.TargetScore = game.DefaultTargetScore
	}
	if config.Match.LogLevel == "" {
		config.Match.LogLevel = "info"
	}
	for i := range config.Players {
		p := &config.Players[i]
		if p.Strategy == bot.StrategyThreshold && p.HitUntil == 0 {
			p.HitUntil = bot.DefaultHitUntil
		}
	}

	return &config, nil
}

// ApplyEnv overrides match settings from FLIPSEVEN_* variables. A nil
// environ reads the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.Match == nil {
		c.Match = DefaultMatchSettings()
	}
	if o.TargetScore != 0 {
		c.Match.TargetScore = o.TargetScore
	}
	if o.Seed != nil {
		c.Match.Seed = o.Seed
	}
	if o.DecisionTimeout != "" {
		c.Match.DecisionTimeout = o.DecisionTimeout
	}
	if o.MaxRounds != 0 {
		c.Match.MaxRounds = o.MaxRounds
	}
	if o.LogLevel != "" {
		c.Match.LogLevel = o.LogLevel
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	m := c.Match
	if m == nil {
		return fmt.Errorf("match settings are missing")
	}
	if m.TargetScore <= 0 {
		return fmt.Errorf("target score must be positive, got %d", m.TargetScore)
	}
	if m.MaxRounds < 0 {
		return fmt.Errorf("max rounds must not be negative, got %d", m.MaxRounds)
	}
	if _, err := m.Timeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(m.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", m.LogLevel)
	}

	if len(c.Players) < game.MinPlayers || len(c.Players) > game.MaxPlayers {
		return fmt.Errorf("between %d and %d players must be configured, got %d",
			game.MinPlayers, game.MaxPlayers, len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	humans := 0
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.IsHuman() {
			humans++
			continue
		}
		if _, err := bot.New(p.BotSpec(), nil); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human player is supported, got %d", humans)
	}

	return nil
}

// Timeout returns the parsed decision timeout, zero when unset
func (m *MatchSettings) Timeout() (time.Duration, error) {
	if m.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision timeout %q: %w", m.DecisionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("decision timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Level returns the parsed log level, info when invalid
func (m *MatchSettings) Level() log.Level {
	level, err := log.ParseLevel(m.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// IsHuman reports whether the seat is played from the terminal
func (p PlayerConfig) IsHuman() bool {
	return p.Strategy == StrategyHuman
}

// BotSpec converts the seat to a bot specification
func (p PlayerConfig) BotSpec() bot.Spec {
	return bot.Spec{
		Strategy:  p.Strategy,
		HitUntil:  p.HitUntil,
		MinOdds:   p.MinOdds,
		HitChance: p.HitChance,
	}
}

// Human returns the human seat, if any
func (c *Config) Human() (PlayerConfig, bool) {
	for _, p := range c.Players {
		if p.IsHuman() {
			return p, true
		}
	}
	return PlayerConfig{}, false
}
