package main

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/lox/flipseven/cmd/flipseven/shared"
	"github.com/lox/flipseven/internal/bot"
	"github.com/lox/flipseven/internal/config"
	"github.com/lox/flipseven/internal/console"
	"github.com/lox/flipseven/internal/game"
	"github.com/lox/flipseven/internal/randutil"
	"github.com/lox/flipseven/internal/timeout"
)

// PlayCmd runs a single interactive match
type PlayCmd struct {
	Config  string         `short:"c" type:"path" default:"flipseven.hcl" help:"Match configuration file (HCL); defaults apply when it does not exist"`
	Target  int            `help:"Target score (overrides config)"`
	Seed    *int64         `help:"Deterministic RNG seed (optional)"`
	Bots    int            `help:"Seat one human and this many bots instead of the configured players"`
	Human   string         `help:"Name of the human seat"`
	Timeout *time.Duration `help:"Decision timeout for the human, 0 disables (overrides config)"`
	NoColor bool           `help:"Disable colored output"`
	Debug   bool           `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(shared.Level(c.Debug, cfg.Match.Level()))

	seed, fixed := randutil.Seed(cfg.Match.Seed)
	if fixed {
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		logger.Debug("Using random seed", "seed", seed)
	}
	rng := randutil.New(seed)

	limit, err := cfg.Match.Timeout()
	if err != nil {
		return err
	}

	var rendererOpts []console.Option
	if c.NoColor {
		rendererOpts = append(rendererOpts, console.WithNoColor())
	}
	human, hasHuman := cfg.Human()
	if hasHuman {
		rendererOpts = append(rendererOpts, console.WithPerspective(human.Name))
	}
	renderer := console.NewRenderer(os.Stdout, rendererOpts...)

	ctx := shared.SetupSignalHandler(logger)

	players, err := seatPlayers(cfg, rng, func() game.Agent {
		h := console.NewHumanAgent(os.Stdin, os.Stdout, renderer)
		return boundAgent{ctx: ctx, agent: timeout.New(h, limit, nil, logger)}
	})
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	bus.Subscribe(renderer)

	engine, err := game.NewEngine(players,
		game.WithRNG(rng),
		game.WithTargetScore(cfg.Match.TargetScore),
		game.WithMaxRounds(cfg.Match.MaxRounds),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return err
	}

	logger.Debug("Starting match",
		"match", engine.ID(),
		"players", len(players),
		"target", cfg.Match.TargetScore,
		"decision_timeout", limit)

	result, err := engine.Play(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Match abandoned", "round", engine.Round(), "seed", seed)
		return nil
	}
	if err != nil {
		return fmt.Errorf("match %s (seed %d): %w", engine.ID(), seed, err)
	}

	logger.Debug("Match finished", "winner", result.Winner.Name, "rounds", result.Rounds, "seed", seed)
	return nil
}

// apply layers command line flags over the loaded configuration
func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Target > 0 {
		cfg.Match.TargetScore = c.Target
	}
	if c.Seed != nil {
		cfg.Match.Seed = c.Seed
	}
	if c.Timeout != nil {
		cfg.Match.DecisionTimeout = c.Timeout.String()
	}
	if c.Bots > 0 {
		cfg.Players = botTable(c.Bots)
	}
	if c.Human != "" {
		for i := range cfg.Players {
			if cfg.Players[i].IsHuman() {
				cfg.Players[i].Name = c.Human
			}
		}
	}
}

// botTable seats a human followed by n bots cycling through the strategies
func botTable(n int) []config.PlayerConfig {
	players := []config.PlayerConfig{{Name: "You", Strategy: config.StrategyHuman}}
	strategies := bot.Strategies()
	for i := range n {
		players = append(players, config.PlayerConfig{
			Name:     fmt.Sprintf("Bot-%d", i+1),
			Strategy: strategies[i%len(strategies)],
		})
	}
	return players
}

// seatPlayers builds participants in configured order. newHuman is called
// for the human seat, if any.
func seatPlayers(cfg *config.Config, rng *rand.Rand, newHuman func() game.Agent) ([]game.Participant, error) {
	players := make([]game.Participant, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		if p.IsHuman() {
			players = append(players, game.Participant{Name: p.Name, Agent: newHuman()})
			continue
		}
		agent, err := bot.New(p.BotSpec(), rng)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		players = append(players, game.Participant{Name: p.Name, Agent: agent})
	}
	return players, nil
}

// boundAgent answers through a context-aware agent using the command's
// context, so a pending prompt ends when the command is interrupted.
type boundAgent struct {
	ctx   context.Context
	agent timeout.ContextAgent
}

func (b boundAgent) Decide(s game.Snapshot) game.Action {
	return b.agent.DecideContext(b.ctx, s)
}

func (b boundAgent) ChooseTarget(req game.TargetRequest) string {
	return b.agent.ChooseTargetContext(b.ctx, req)
}
