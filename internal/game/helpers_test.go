package game

import (
	"testing"

	"github.com/lox/flipseven/cards"
)

// scriptedAgent plays a fixed list of actions, then falls back to a single
// repeated action. It records every call it receives.
type scriptedAgent struct {
	actions  []Action
	fallback Action
	target   string // Empty means first eligible

	decides   int
	snapshots []Snapshot
	requests  []TargetRequest
}

func (a *scriptedAgent) Decide(snapshot Snapshot) Action {
	a.decides++
	a.snapshots = append(a.snapshots, snapshot)
	if len(a.actions) == 0 {
		return a.fallback
	}
	action := a.actions[0]
	a.actions = a.actions[1:]
	return action
}

func (a *scriptedAgent) ChooseTarget(req TargetRequest) string {
	a.requests = append(a.requests, req)
	if a.target != "" {
		return a.target
	}
	return FirstEligible{}.ChooseTarget(req)
}

func hitter() *scriptedAgent { return &scriptedAgent{fallback: Hit} }
func stayer() *scriptedAgent { return &scriptedAgent{fallback: Stay} }

// turnFixture wires a turn engine over a preset draw pile
type turnFixture struct {
	deck    *cards.Deck
	state   *RoundState
	turns   *TurnEngine
	agents  []*scriptedAgent
	players []Participant
}

// newTurnFixture seats one participant per agent, named A, B, C and so on
func newTurnFixture(t *testing.T, pile []cards.Card, agents ...*scriptedAgent) *turnFixture {
	t.Helper()

	players := make([]Participant, len(agents))
	for i, a := range agents {
		players[i] = Participant{Name: string(rune('A' + i)), Agent: a}
	}

	deck := cards.NewPresetDeck(pile, nil)
	state := NewRoundState(len(players))
	return &turnFixture{
		deck:    deck,
		state:   state,
		turns:   NewTurnEngine(deck, players, state, nil, nil),
		agents:  agents,
		players: players,
	}
}

// give puts cards straight into a seat's hand
func (f *turnFixture) give(seat int, cs ...cards.Card) {
	for _, c := range cs {
		f.state.add(seat, c)
	}
}

// newTestEngine seats the agents as A, B, C... over a preset pile
func newTestEngine(t *testing.T, pile []cards.Card, agents []*scriptedAgent, opts ...Option) (*Engine, *cards.Deck) {
	t.Helper()

	players := make([]Participant, len(agents))
	for i, a := range agents {
		players[i] = Participant{Name: string(rune('A' + i)), Agent: a}
	}

	deck := cards.NewPresetDeck(pile, nil)
	e, err := NewEngine(players, append([]Option{WithDeck(deck), WithMatchID("test")}, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, deck
}

func num(v int) cards.Card { return cards.NewNumber(v) }

var (
	freeze       = cards.NewAction(cards.Freeze)
	flipThree    = cards.NewAction(cards.FlipThree)
	secondChance = cards.NewAction(cards.SecondChance)
)

func eventTypes(events []GameEvent) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}
