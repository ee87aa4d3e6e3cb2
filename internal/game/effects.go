package game

import "github.com/lox/flipseven/cards"

// FlipThreeCount is how many cards a FLIP_THREE target must draw
const FlipThreeCount = 3

// cardEffect resolves an action card that actor just drew and added to hand
type cardEffect func(t *TurnEngine, actor int, card cards.Card, res *TurnResult)

func defaultEffects() map[cards.Kind]cardEffect {
	return map[cards.Kind]cardEffect{
		cards.SecondChance: secondChanceEffect,
		cards.Freeze:       freezeEffect,
		cards.FlipThree:    flipThreeEffect,
	}
}

// secondChanceEffect does nothing on draw; the card waits in hand to absorb
// the next duplicate.
func secondChanceEffect(*TurnEngine, int, cards.Card, *TurnResult) {}

// freezeEffect ends the target's round. With nobody else active the actor
// freezes themself.
func freezeEffect(t *TurnEngine, actor int, card cards.Card, res *TurnResult) {
	target, ok := t.selectTarget(actor, card.Kind)
	if !ok {
		target = actor
	}

	t.state.SetStatus(target, Frozen)
	res.record(PlayerFrozenEvent{
		Seat:      target,
		Player:    t.players[target].Name,
		ActorSeat: actor,
		Actor:     t.players[actor].Name,
		Points:    t.state.Points(target),
	})
	t.logger.Debug("Participant frozen", "actor", t.players[actor].Name, "target", t.players[target].Name)
}

// flipThreeEffect forces the target to draw FlipThreeCount cards. With nobody
// else active the card has no effect.
func flipThreeEffect(t *TurnEngine, actor int, card cards.Card, res *TurnResult) {
	target, ok := t.selectTarget(actor, card.Kind)
	if !ok {
		t.logger.Debug("Flip three has no target", "actor", t.players[actor].Name)
		return
	}

	res.record(ActionCardPlayedEvent{
		ActorSeat:  actor,
		Actor:      t.players[actor].Name,
		Card:       card,
		TargetSeat: target,
		Target:     t.players[target].Name,
	})
	t.forceDraw(target, FlipThreeCount, res)
}
