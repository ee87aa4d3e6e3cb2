package game

import "github.com/lox/flipseven/cards"

// Estimator computes the probability that the next draw does not bust
type Estimator func(hand, drawPile []cards.Card) float64

// EstimateSuccess returns the probability in [0,1] that drawing the front of
// drawPile does not bust a participant holding hand.
//
// An empty pile returns 0. A held SECOND_CHANCE returns 1, since the next
// duplicate is absorbed. Otherwise the bust rate is the share of number cards
// in the pile whose value is already in hand; action cards count as safe.
func EstimateSuccess(hand, drawPile []cards.Card) float64 {
	if len(drawPile) == 0 {
		return 0
	}
	if cards.ContainsKind(hand, cards.SecondChance) {
		return 1
	}

	owned := make(map[int]bool, len(hand))
	for _, c := range hand {
		if c.IsNumber() {
			owned[c.Value] = true
		}
	}

	bad := 0
	for _, c := range drawPile {
		if c.IsNumber() && owned[c.Value] {
			bad++
		}
	}

	return 1 - float64(bad)/float64(len(drawPile))
}
