package game

import (
	"testing"

	"github.com/lox/flipseven/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTurnStay(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, []cards.Card{num(9)}, stayer(), stayer(), stayer())
	f.give(0, num(4), num(2))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Stayed, f.state.Status(0))
	require.Len(t, res.Events, 1)
	assert.Equal(t, PlayerStayedEvent{Seat: 0, Player: "A", Points: 6}, res.Events[0])
	assert.Equal(t, 1, f.deck.DrawPileSize(), "staying must not draw")
}

func TestProcessTurnHitNewNumber(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, []cards.Card{num(5)}, hitter(), stayer(), stayer())

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, []cards.Card{num(5)}, f.state.Hand(0))
	assert.Equal(t, []GameEvent{CardDrawnEvent{Seat: 0, Player: "A", Card: num(5)}}, res.Events)
}

func TestProcessTurnDuplicateBusts(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, []cards.Card{num(5)}, hitter(), stayer(), stayer())
	f.give(0, num(5), num(3))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Busted, f.state.Status(0))
	assert.Equal(t, []cards.Card{num(5), num(3), num(5)}, f.state.Hand(0), "duplicate stays visible")
	assert.Equal(t, []EventType{EventTypeCardDrawn, EventTypePlayerBusted}, eventTypes(res.Events))
	assert.Equal(t, PlayerBustedEvent{Seat: 0, Player: "A", Card: num(5)}, res.Events[1])
}

func TestProcessTurnSecondChanceAbsorbsDuplicate(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, []cards.Card{num(5)}, hitter(), stayer(), stayer())
	f.give(0, num(5), secondChance)

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, []cards.Card{num(5)}, f.state.Hand(0))
	assert.ElementsMatch(t, []cards.Card{secondChance, num(5)}, f.deck.ViewDiscardPile())
	assert.Equal(t, []EventType{EventTypeCardDrawn, EventTypeSecondChance}, eventTypes(res.Events))
}

func TestProcessTurnSecondChanceConsumesOnlyOne(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, []cards.Card{num(7)}, hitter(), stayer(), stayer())
	f.give(0, secondChance, num(7), secondChance)

	f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, []cards.Card{num(7), secondChance}, f.state.Hand(0))
}

func TestProcessTurnSkipsInactive(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{Stayed, Busted, Frozen} {
		t.Run(status.String(), func(t *testing.T) {
			t.Parallel()

			a := hitter()
			f := newTurnFixture(t, []cards.Card{num(1)}, a, stayer(), stayer())
			f.state.SetStatus(0, status)

			res := f.turns.ProcessTurn(0)

			assert.Empty(t, res.Events)
			assert.Zero(t, a.decides)
			assert.Equal(t, 1, f.deck.DrawPileSize())
		})
	}
}

func TestProcessTurnDeckEmpty(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, nil, hitter(), stayer(), stayer())
	f.give(0, num(3))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, []cards.Card{num(3)}, f.state.Hand(0))
	assert.Equal(t, []GameEvent{DeckEmptyEvent{Seat: 0, Player: "A"}}, res.Events)
}

func TestProcessTurnRecyclesDiscard(t *testing.T) {
	t.Parallel()

	f := newTurnFixture(t, nil, hitter(), stayer(), stayer())
	f.deck.DiscardAll([]cards.Card{num(8)})

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, []cards.Card{num(8)}, f.state.Hand(0))
	assert.Equal(t, []EventType{EventTypeCardDrawn}, eventTypes(res.Events))
	assert.Zero(t, f.deck.DiscardPileSize())
}

func TestProcessTurnSnapshot(t *testing.T) {
	t.Parallel()

	a := stayer()
	pile := []cards.Card{num(3), num(9), freeze, num(2)}
	f := newTurnFixture(t, pile, a, stayer(), stayer(), stayer())
	f.give(0, num(3), secondChance, num(4))
	f.state.SetStatus(1, Stayed)
	f.state.SetStatus(2, Busted)
	f.state.SetStatus(3, Frozen)

	f.turns.ProcessTurn(0)

	require.Len(t, a.snapshots, 1)
	snap := a.snapshots[0]
	assert.Equal(t, 0, snap.Seat)
	assert.Equal(t, "A", snap.Name)
	assert.Equal(t, []cards.Card{num(3), secondChance, num(4)}, snap.Hand)
	assert.Equal(t, 7, snap.Points)
	assert.Equal(t, 4, snap.DrawPileSize)
	assert.InDelta(t, 1.0, snap.SuccessProbability, 1e-9)
	assert.Equal(t, []string{"B", "D"}, snap.Secured)

	snap.Hand[0] = num(11)
	assert.Equal(t, num(3), f.state.Hand(0)[0], "snapshot hand is a copy")
}

func TestFreezeTargetsChosenParticipant(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	b := hitter()
	f := newTurnFixture(t, []cards.Card{freeze}, a, b, stayer())
	f.give(1, num(6))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, Frozen, f.state.Status(1))
	assert.Equal(t, []cards.Card{freeze}, f.state.Hand(0))
	assert.Equal(t, []EventType{EventTypeCardDrawn, EventTypePlayerFrozen}, eventTypes(res.Events))
	assert.Equal(t, PlayerFrozenEvent{Seat: 1, Player: "B", ActorSeat: 0, Actor: "A", Points: 6}, res.Events[1])

	require.Len(t, a.requests, 1)
	assert.Equal(t, TargetRequest{Actor: "A", Kind: cards.Freeze, Eligible: []string{"B", "C"}}, a.requests[0])

	// The frozen participant's turn slot is skipped without asking them.
	assert.Empty(t, f.turns.ProcessTurn(1).Events)
	assert.Zero(t, b.decides)
}

func TestFreezeFallsBackToSelf(t *testing.T) {
	t.Parallel()

	a := hitter()
	f := newTurnFixture(t, []cards.Card{freeze}, a, stayer(), stayer())
	f.state.SetStatus(1, Stayed)
	f.state.SetStatus(2, Busted)

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Frozen, f.state.Status(0))
	assert.Empty(t, a.requests, "no eligible target means no request")
	require.Len(t, res.Events, 2)
	assert.Equal(t, PlayerFrozenEvent{Seat: 0, Player: "A", ActorSeat: 0, Actor: "A"}, res.Events[1])
}

func TestInvalidTargetDefaultsToFirstEligible(t *testing.T) {
	t.Parallel()

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		a := &scriptedAgent{fallback: Hit, target: "Nobody"}
		f := newTurnFixture(t, []cards.Card{freeze}, a, stayer(), stayer())

		f.turns.ProcessTurn(0)

		assert.Equal(t, Frozen, f.state.Status(1))
		assert.Equal(t, Active, f.state.Status(2))
	})

	t.Run("ineligible name", func(t *testing.T) {
		t.Parallel()

		a := &scriptedAgent{fallback: Hit, target: "B"}
		f := newTurnFixture(t, []cards.Card{freeze}, a, stayer(), stayer(), stayer())
		f.state.SetStatus(1, Stayed)

		f.turns.ProcessTurn(0)

		assert.Equal(t, Stayed, f.state.Status(1))
		assert.Equal(t, Frozen, f.state.Status(2))
		assert.Equal(t, Active, f.state.Status(3))
	})

	t.Run("own name", func(t *testing.T) {
		t.Parallel()

		a := &scriptedAgent{fallback: Hit, target: "A"}
		f := newTurnFixture(t, []cards.Card{freeze}, a, stayer(), stayer())

		f.turns.ProcessTurn(0)

		assert.Equal(t, Active, f.state.Status(0))
		assert.Equal(t, Frozen, f.state.Status(1))
	})
}

func TestFlipThreeForcesThreeDraws(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	b := hitter()
	f := newTurnFixture(t, []cards.Card{flipThree, num(1), num(2), num(3), num(4)}, a, b, stayer())

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, []cards.Card{flipThree}, f.state.Hand(0))
	assert.Equal(t, []cards.Card{num(1), num(2), num(3)}, f.state.Hand(1))
	assert.Equal(t, Active, f.state.Status(1))
	assert.Zero(t, b.decides, "forced draws do not consult the target")
	assert.Equal(t, 1, f.deck.DrawPileSize())

	assert.Equal(t, []EventType{
		EventTypeCardDrawn,
		EventTypeActionCardPlayed,
		EventTypeCardDrawn,
		EventTypeCardDrawn,
		EventTypeCardDrawn,
	}, eventTypes(res.Events))
	assert.Equal(t, ActionCardPlayedEvent{ActorSeat: 0, Actor: "A", Card: flipThree, TargetSeat: 1, Target: "B"}, res.Events[1])
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, CardDrawnEvent{Seat: 1, Player: "B", Card: num(want), Forced: true}, res.Events[2+i])
	}
}

func TestFlipThreeStopsWhenTargetBusts(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	f := newTurnFixture(t, []cards.Card{flipThree, num(1), num(4), num(6)}, a, stayer(), stayer())
	f.give(1, num(4))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Busted, f.state.Status(1))
	assert.Equal(t, []cards.Card{num(4), num(1), num(4)}, f.state.Hand(1), "exactly two cards added")
	assert.Equal(t, 1, f.deck.DrawPileSize(), "third forced draw never happens")
	assert.Equal(t, 1, countType(res.Events, EventTypePlayerBusted))
}

func TestFlipThreeWithoutTargetIsSkipped(t *testing.T) {
	t.Parallel()

	a := hitter()
	f := newTurnFixture(t, []cards.Card{flipThree, num(1), num(2), num(3)}, a, stayer(), stayer())
	f.state.SetStatus(1, Frozen)
	f.state.SetStatus(2, Stayed)

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(0))
	assert.Equal(t, []cards.Card{flipThree}, f.state.Hand(0))
	assert.Equal(t, 3, f.deck.DrawPileSize(), "no self draw three")
	assert.Equal(t, []EventType{EventTypeCardDrawn}, eventTypes(res.Events))
}

func TestFlipThreeStopsWhenDeckRunsDry(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	f := newTurnFixture(t, []cards.Card{flipThree, num(1)}, a, stayer(), stayer())

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, []cards.Card{num(1)}, f.state.Hand(1))
	assert.Equal(t, Active, f.state.Status(1))
	assert.Equal(t, 1, countType(res.Events, EventTypeDeckEmpty))
}

func TestFlipThreeChainsIntoThirdParticipant(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	b := &scriptedAgent{fallback: Hit, target: "C"}
	c := hitter()
	pile := []cards.Card{
		flipThree,              // A's hit
		flipThree,              // B's first forced draw
		num(7), num(8), num(9), // C's forced draws
		num(10), num(11),       // B's remaining forced draws
		num(12),
	}
	f := newTurnFixture(t, pile, a, b, c)

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, []cards.Card{flipThree}, f.state.Hand(0))
	assert.Equal(t, []cards.Card{flipThree, num(10), num(11)}, f.state.Hand(1))
	assert.Equal(t, []cards.Card{num(7), num(8), num(9)}, f.state.Hand(2))
	assert.Equal(t, 1, f.deck.DrawPileSize())
	assert.Zero(t, b.decides)
	assert.Zero(t, c.decides)

	require.Len(t, b.requests, 1)
	assert.Equal(t, []string{"A", "C"}, b.requests[0].Eligible)

	var order []string
	for _, e := range res.Events {
		if drawn, ok := e.(CardDrawnEvent); ok {
			order = append(order, drawn.Player)
		}
	}
	assert.Equal(t, []string{"A", "B", "C", "C", "C", "B", "B"}, order)
}

func TestFlipThreeChainedFreezeEndsForcedSequence(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	b := &scriptedAgent{fallback: Hit, target: "A"}
	f := newTurnFixture(t, []cards.Card{flipThree, num(2), freeze, num(5)}, a, b, stayer())
	f.state.SetStatus(2, Stayed)

	res := f.turns.ProcessTurn(0)

	// B's forced FREEZE lands on A, the only other active participant.
	assert.Equal(t, Frozen, f.state.Status(0))
	assert.Equal(t, Active, f.state.Status(1))
	assert.Equal(t, []cards.Card{num(2), freeze, num(5)}, f.state.Hand(1))
	assert.Equal(t, 1, countType(res.Events, EventTypePlayerFrozen))
}

func TestFlipThreeSecondChanceDuringForcedDraws(t *testing.T) {
	t.Parallel()

	a := &scriptedAgent{fallback: Hit, target: "B"}
	f := newTurnFixture(t, []cards.Card{flipThree, secondChance, num(3), num(6)}, a, stayer(), stayer())
	f.give(1, num(3))

	res := f.turns.ProcessTurn(0)

	assert.Equal(t, Active, f.state.Status(1))
	assert.Equal(t, []cards.Card{num(3), num(6)}, f.state.Hand(1))
	assert.Equal(t, 1, countType(res.Events, EventTypeSecondChance))
	assert.Equal(t, 2, f.deck.DiscardPileSize())
}

func countType(events []GameEvent, eventType EventType) int {
	n := 0
	for _, e := range events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}
