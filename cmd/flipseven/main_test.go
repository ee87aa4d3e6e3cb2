package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/flipseven/internal/bot"
	"github.com/lox/flipseven/internal/config"
	"github.com/lox/flipseven/internal/game"
	"github.com/lox/flipseven/internal/randutil"
	"github.com/lox/flipseven/internal/simulator"
	"github.com/lox/flipseven/internal/statistics"
	"github.com/lox/flipseven/internal/timeout"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayApplyFlags(t *testing.T) {
	t.Parallel()

	seed := int64(7)
	limit := 20 * time.Second
	cmd := PlayCmd{Target: 90, Seed: &seed, Bots: 4, Human: "Sam", Timeout: &limit}

	cfg := config.Default()
	cmd.apply(cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 90, cfg.Match.TargetScore)
	assert.Equal(t, int64(7), *cfg.Match.Seed)
	assert.Equal(t, "20s", cfg.Match.DecisionTimeout)

	require.Len(t, cfg.Players, 5)
	human, ok := cfg.Human()
	require.True(t, ok)
	assert.Equal(t, "Sam", human.Name)
	assert.Equal(t, bot.StrategyThreshold, cfg.Players[1].Strategy)
	assert.Equal(t, bot.StrategyOdds, cfg.Players[2].Strategy)
	assert.Equal(t, bot.StrategyRandom, cfg.Players[3].Strategy)
	assert.Equal(t, bot.StrategyThreshold, cfg.Players[4].Strategy)
}

func TestPlayApplyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	(&PlayCmd{}).apply(cfg)
	assert.Equal(t, config.Default(), cfg)
}

func TestSeatPlayers(t *testing.T) {
	t.Parallel()

	humans := 0
	human := game.AgentFunc(func(game.Snapshot) game.Action { return game.Stay })

	players, err := seatPlayers(config.Default(), randutil.New(1), func() game.Agent {
		humans++
		return human
	})
	require.NoError(t, err)

	assert.Equal(t, 1, humans)
	require.Len(t, players, 3)
	assert.Equal(t, "You", players[0].Name)
	assert.IsType(t, &bot.Threshold{}, players[1].Agent)
	assert.IsType(t, &bot.Odds{}, players[2].Agent)
}

func TestBoundAgentStopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	inner := game.AgentFunc(func(game.Snapshot) game.Action { return game.Hit })
	b := boundAgent{ctx: ctx, agent: timeout.New(inner, 0, nil, nil)}

	assert.Equal(t, game.Stay, b.Decide(game.Snapshot{}))
	assert.Equal(t, "B", b.ChooseTarget(game.TargetRequest{Eligible: []string{"B"}}))
}

func TestSimulateSeatsFromStrategies(t *testing.T) {
	t.Parallel()

	cmd := SimulateCmd{Strategies: []string{"odds", "odds", "random"}}
	seats, settings, err := cmd.seats()
	require.NoError(t, err)

	assert.Equal(t, []string{"odds-1", "odds-2", "random-3"}, []string{seats[0].Name, seats[1].Name, seats[2].Name})
	assert.Equal(t, game.DefaultTargetScore, settings.TargetScore)

	_, _, err = (&SimulateCmd{Strategies: []string{"odds", "psychic"}}).seats()
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	seats := []simulator.Seat{
		{Name: "threshold-1", Spec: bot.Spec{Strategy: bot.StrategyThreshold}},
		{Name: "odds-2", Spec: bot.Spec{Strategy: bot.StrategyOdds}},
		{Name: "random-3", Spec: bot.Spec{Strategy: bot.StrategyRandom}},
	}

	summary := statistics.NewSummary(3)
	summary.Add(statistics.MatchResult{WinnerSeat: 0, Rounds: 10, Totals: []int{205, 150, 90}, Busts: 6, Stays: 24})
	summary.Add(statistics.MatchResult{WinnerSeat: 0, Rounds: 12, Totals: []int{210, 190, 60}, Busts: 9, Stays: 27, Freezes: 2})
	summary.Add(statistics.MatchResult{WinnerSeat: 1, Rounds: 11, Totals: []int{120, 201, 80}, Busts: 7, Stays: 26, SecondChances: 1})

	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	printReport(&buf, r, seats, summary, 1500*time.Millisecond)
	out := buf.String()

	assert.Contains(t, out, "Results after 3 matches (1.5s)")
	assert.Contains(t, out, "threshold-1")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "Rounds per match: mean 11.0")
	assert.Contains(t, out, "0.67 busts per round, 2 freezes, 77 stays, 1 second chances used")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestProgressBar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bar := newProgressBar(&buf, termenv.Ascii)

	for done := 1; done <= 400; done++ {
		bar.Update(done, 400)
	}

	out := buf.String()
	assert.Equal(t, 101, strings.Count(out, "\r"), "one redraw per percent")
	assert.Contains(t, out, "400/400")
	assert.True(t, strings.HasSuffix(out, "matches/sec)\n"))
}
