// Package game implements the round and turn engine for a push-your-luck
// card game in which players draw number and action cards, bust on duplicate
// numbers, and bank round points toward a target score.
//
// The main type is Engine, which owns the deck, the per-round state of every
// participant, the turn engine, and the score board for one match.
//
// # Basic Usage
//
//	players := []game.Participant{
//	    {Name: "Alice", Agent: bot.NewThreshold(15)},
//	    {Name: "Bob", Agent: bot.NewThreshold(20)},
//	    {Name: "Carol", Agent: bot.NewOdds(0.7, 25)},
//	}
//	engine, err := game.NewEngine(players, game.WithRNG(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Play(ctx)
//
// # Deterministic Testing
//
// Supply a preset deck to control every draw:
//
//	deck := cards.NewPresetDeck([]cards.Card{cards.NewAction(cards.Freeze)}, nil)
//	engine, err := game.NewEngine(players, game.WithDeck(deck))
//
// # Architecture
//
// Engine delegates responsibilities to specialized components:
//   - RoundState: hands and statuses indexed by seat
//   - TurnEngine: one participant's decision and its consequences, including
//     chained forced draws
//   - cardEffect table: FREEZE, FLIP_THREE and SECOND_CHANCE behavior
//   - ScoreBoard: cumulative totals and winner detection
//   - EstimateSuccess: the odds shown to a participant before each decision
//
// Everything in this package is synchronous. Decisions are made by Agent
// implementations supplied by the caller; the engine blocks until they return.
package game
