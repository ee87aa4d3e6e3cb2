// Package simulator plays batches of bot-only matches and aggregates the
// results, for comparing strategies.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/flipseven/internal/bot"
	"github.com/lox/flipseven/internal/game"
	"github.com/lox/flipseven/internal/randutil"
	"github.com/lox/flipseven/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRounds bounds each simulated match so a pathological strategy mix
// cannot run forever.
const DefaultMaxRounds = 1000

// Seat is one bot taking part in every simulated match
type Seat struct {
	Name string
	Spec bot.Spec
}

// Config holds configuration for running simulations
type Config struct {
	Matches     int
	Workers     int // Defaults to GOMAXPROCS
	Seed        int64
	TargetScore int // Defaults to game.DefaultTargetScore
	MaxRounds   int // Defaults to DefaultMaxRounds
	Seats       []Seat
	Logger      *log.Logger

	// Progress, when set, is called after each finished match. Calls are
	// serialised.
	Progress func(done, total int)
}

// Simulator runs batches of matches
type Simulator struct {
	config Config
	logger *log.Logger

	mu   sync.Mutex
	done int
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.TargetScore == 0 {
		config.TargetScore = game.DefaultTargetScore
	}
	if config.MaxRounds == 0 {
		config.MaxRounds = DefaultMaxRounds
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Names returns the seat names in configured order, matching the indexes of
// the returned summary.
func (s *Simulator) Names() []string {
	names := make([]string, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		names[i] = seat.Name
	}
	return names
}

// Run plays every match and returns the aggregated summary. Matches run in
// parallel on up to Workers goroutines; the summary does not depend on the
// worker count. The first failing match cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*statistics.Summary, error) {
	if s.config.Matches <= 0 {
		return nil, fmt.Errorf("match count must be positive, given %d", s.config.Matches)
	}
	if n := len(s.config.Seats); n < game.MinPlayers || n > game.MaxPlayers {
		return nil, fmt.Errorf("need between %d and %d seats, given %d", game.MinPlayers, game.MaxPlayers, n)
	}
	for _, seat := range s.config.Seats {
		if _, err := bot.New(seat.Spec, nil); err != nil {
			return nil, fmt.Errorf("seat %q: %w", seat.Name, err)
		}
	}

	s.logger.Debug("Starting simulation",
		"matches", s.config.Matches,
		"workers", s.config.Workers,
		"seed", s.config.Seed,
		"seats", len(s.config.Seats))

	results := make([]statistics.MatchResult, s.config.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Matches {
		g.Go(func() error {
			result, err := s.playMatch(ctx, i)
			if err != nil {
				return err
			}
			results[i] = result
			s.finished()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := statistics.NewSummary(len(s.config.Seats))
	for _, result := range results {
		summary.Add(result)
	}

	if err := summary.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return summary, nil
}

// playMatch plays match i. Seating rotates with i so that no seat always
// moves first; results are mapped back to configured seat order.
func (s *Simulator) playMatch(ctx context.Context, i int) (statistics.MatchResult, error) {
	seed := randutil.Derive(s.config.Seed, i)
	rng := randutil.New(seed)
	n := len(s.config.Seats)

	order := make([]int, n)
	players := make([]game.Participant, n)
	for pos := range n {
		idx := (pos + i) % n
		seat := s.config.Seats[idx]
		agent, err := bot.New(seat.Spec, rng)
		if err != nil {
			return statistics.MatchResult{}, fmt.Errorf("seat %q: %w", seat.Name, err)
		}
		order[pos] = idx
		players[pos] = game.Participant{Name: seat.Name, Agent: agent}
	}

	t := &tally{}
	bus := game.NewEventBus()
	bus.Subscribe(t)

	engine, err := game.NewEngine(players,
		game.WithRNG(rng),
		game.WithTargetScore(s.config.TargetScore),
		game.WithMaxRounds(s.config.MaxRounds),
		game.WithEventBus(bus),
		game.WithMatchID(fmt.Sprintf("sim-%d", i)),
	)
	if err != nil {
		return statistics.MatchResult{}, err
	}

	match, err := engine.Play(ctx)
	if err != nil {
		if errors.Is(err, game.ErrRoundLimit) {
			return statistics.MatchResult{}, fmt.Errorf("match %d (seed %d): %w", i, seed, err)
		}
		return statistics.MatchResult{}, err
	}

	totals := make([]int, n)
	for pos, total := range match.Totals {
		totals[order[pos]] = total
	}

	s.logger.Debug("Match finished",
		"match", i,
		"seed", seed,
		"winner", match.Winner.Name,
		"rounds", match.Rounds)

	return statistics.MatchResult{
		Seed:          seed,
		WinnerSeat:    order[match.WinnerSeat],
		Rounds:        match.Rounds,
		Totals:        totals,
		Busts:         t.busts,
		Freezes:       t.freezes,
		Stays:         t.stays,
		SecondChances: t.secondChances,
	}, nil
}

func (s *Simulator) finished() {
	if s.config.Progress == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done++
	s.config.Progress(s.done, s.config.Matches)
}

// tally counts the events of one match
type tally struct {
	busts         int
	freezes       int
	stays         int
	secondChances int
}

func (t *tally) OnEvent(event game.GameEvent) {
	switch event.(type) {
	case game.PlayerBustedEvent:
		t.busts++
	case game.PlayerFrozenEvent:
		t.freezes++
	case game.PlayerStayedEvent:
		t.stays++
	case game.SecondChanceEvent:
		t.secondChances++
	}
}
