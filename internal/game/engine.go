package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/flipseven/cards"
)

// Engine drives a match: repeated rounds over the same deck until one
// participant's cumulative total reaches the target score.
type Engine struct {
	id        string
	players   []Participant
	names     []string
	deck      *cards.Deck
	state     *RoundState
	turns     *TurnEngine
	scores    *ScoreBoard
	bus       EventBus
	logger    *log.Logger
	round     int
	maxRounds int
}

// MatchResult summarises a finished match
type MatchResult struct {
	MatchID    string
	Winner     Participant
	WinnerSeat int
	Rounds     int
	Totals     []int // Cumulative totals in seat order
}

// NewEngine creates an engine for players, who take their turns in the order
// given. It fails with ErrInvalidConfiguration when the player count is
// outside MinPlayers..MaxPlayers, a name is empty or repeated, an agent is
// missing, or the target score is not positive.
func NewEngine(players []Participant, opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		target: DefaultTargetScore,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: number of players must be between %d and %d, given %d",
			ErrInvalidConfiguration, MinPlayers, MaxPlayers, len(players))
	}
	if cfg.target <= 0 {
		return nil, fmt.Errorf("%w: target score must be positive, given %d", ErrInvalidConfiguration, cfg.target)
	}

	names := make([]string, len(players))
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidConfiguration, i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfiguration, p.Name)
		}
		if p.Agent == nil {
			return nil, fmt.Errorf("%w: player %q has no agent", ErrInvalidConfiguration, p.Name)
		}
		seen[p.Name] = true
		names[i] = p.Name
	}

	deck := cfg.deck
	if deck == nil {
		deck = cards.NewDeck(cfg.rng)
	}
	if cfg.matchID == "" {
		cfg.matchID = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}

	seats := make([]Participant, len(players))
	copy(seats, players)

	logger := cfg.logger.With("match", cfg.matchID)
	state := NewRoundState(len(seats))

	return &Engine{
		id:        cfg.matchID,
		players:   seats,
		names:     names,
		deck:      deck,
		state:     state,
		turns:     NewTurnEngine(deck, seats, state, cfg.estimator, logger),
		scores:    NewScoreBoard(names, cfg.target),
		bus:       cfg.bus,
		logger:    logger,
		maxRounds: cfg.maxRounds,
	}, nil
}

// ID returns the match identifier
func (e *Engine) ID() string {
	return e.id
}

// Round returns how many rounds have been started
func (e *Engine) Round() int {
	return e.round
}

// Names returns the participant names in seat order
func (e *Engine) Names() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Totals returns the cumulative totals in seat order
func (e *Engine) Totals() []int {
	return e.scores.Totals()
}

// EventBus returns the bus for subscribing to match events
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// PlayRound plays one complete round and scores it. It returns the match
// winner once someone reaches the target score.
func (e *Engine) PlayRound() (Participant, bool) {
	seat, ok := e.playRound()
	if !ok {
		return Participant{}, false
	}
	return e.players[seat], true
}

// Play runs rounds until a winner emerges. It stops early with ctx.Err()
// when ctx is cancelled between rounds, or with ErrRoundLimit when a round
// limit was configured and reached.
func (e *Engine) Play(ctx context.Context) (*MatchResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.maxRounds > 0 && e.round >= e.maxRounds {
			return nil, fmt.Errorf("%w: no winner after %d rounds", ErrRoundLimit, e.round)
		}

		seat, ok := e.playRound()
		if !ok {
			continue
		}

		return &MatchResult{
			MatchID:    e.id,
			Winner:     e.players[seat],
			WinnerSeat: seat,
			Rounds:     e.round,
			Totals:     e.scores.Totals(),
		}, nil
	}
}

func (e *Engine) playRound() (int, bool) {
	e.round++
	e.state.Reset()

	e.logger.Debug("Starting round", "round", e.round)
	e.bus.Publish(RoundStartEvent{MatchID: e.id, Round: e.round, Players: e.Names()})

	for e.state.HasActive() {
		progressed := false
		for seat := range e.players {
			res := e.turns.ProcessTurn(seat)
			for _, event := range res.Events {
				if event.EventType() != EventTypeDeckEmpty {
					progressed = true
				}
				e.bus.Publish(event)
			}
		}

		// A pass where every hit found both piles empty can never end on its
		// own, so the remaining participants bank what they hold.
		if !progressed && e.state.HasActive() {
			e.endStalledRound()
		}
	}

	lines, winner, ok := e.scores.ScoreRound(e.state)
	e.bus.Publish(RoundScoredEvent{MatchID: e.id, Round: e.round, Lines: lines})

	// Return every played card so the deck stays cyclic across rounds.
	e.deck.DiscardAll(e.state.Collect())

	if !ok {
		e.logger.Debug("Round complete", "round", e.round, "totals", e.scores.Totals())
		return -1, false
	}

	total := e.scores.Total(winner)
	e.logger.Info("Match won", "round", e.round, "winner", e.names[winner], "total", total)
	e.bus.Publish(MatchWonEvent{
		MatchID: e.id,
		Round:   e.round,
		Seat:    winner,
		Player:  e.names[winner],
		Total:   total,
	})
	return winner, true
}

func (e *Engine) endStalledRound() {
	e.logger.Warn("Deck exhausted, ending round", "round", e.round)
	for seat := range e.players {
		if !e.state.Status(seat).CanAct() {
			continue
		}
		e.state.SetStatus(seat, Stayed)
		e.bus.Publish(PlayerStayedEvent{
			Seat:   seat,
			Player: e.names[seat],
			Points: e.state.Points(seat),
			Forced: true,
		})
	}
}
