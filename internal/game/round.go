package game

import (
	"slices"

	"github.com/lox/flipseven/cards"
)

// RoundState tracks every participant's hand and status for the current
// round. Participants are addressed by seat, the index assigned when the
// match was created.
type RoundState struct {
	hands  [][]cards.Card
	status []Status
}

// NewRoundState creates state for the given number of seats, every seat
// active with an empty hand
func NewRoundState(seats int) *RoundState {
	r := &RoundState{
		hands:  make([][]cards.Card, seats),
		status: make([]Status, seats),
	}
	r.Reset()
	return r
}

// Reset marks every seat active and empties every hand. Cards still held are
// dropped, so call Collect first when they must go back to the deck.
func (r *RoundState) Reset() {
	for i := range r.status {
		r.status[i] = Active
		r.hands[i] = nil
	}
}

// Seats returns the number of seats
func (r *RoundState) Seats() int {
	return len(r.status)
}

// Status returns the seat's status
func (r *RoundState) Status(seat int) Status {
	return r.status[seat]
}

// SetStatus changes the seat's status
func (r *RoundState) SetStatus(seat int, status Status) {
	r.status[seat] = status
}

// Hand returns a copy of the seat's hand in draw order
func (r *RoundState) Hand(seat int) []cards.Card {
	return slices.Clone(r.hands[seat])
}

// HandSize returns how many cards the seat holds
func (r *RoundState) HandSize(seat int) int {
	return len(r.hands[seat])
}

// Points returns the sum of number cards in the seat's hand
func (r *RoundState) Points(seat int) int {
	return cards.Points(r.hands[seat])
}

// HasActive reports whether any seat can still act
func (r *RoundState) HasActive() bool {
	return slices.Contains(r.status, Active)
}

// SecuredSeats returns the seats that stayed or were frozen, in seat order
func (r *RoundState) SecuredSeats() []int {
	var seats []int
	for seat, s := range r.status {
		if s.IsSecured() {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Collect removes every card from every hand and returns them in seat order
func (r *RoundState) Collect() []cards.Card {
	var all []cards.Card
	for i := range r.hands {
		all = append(all, r.hands[i]...)
		r.hands[i] = nil
	}
	return all
}

func (r *RoundState) add(seat int, card cards.Card) {
	r.hands[seat] = append(r.hands[seat], card)
}

func (r *RoundState) hasNumber(seat int, value int) bool {
	return cards.ContainsNumber(r.hands[seat], value)
}

// removeKind takes the first card of kind out of the seat's hand
func (r *RoundState) removeKind(seat int, kind cards.Kind) (cards.Card, bool) {
	hand := r.hands[seat]
	for i, c := range hand {
		if c.Kind == kind {
			r.hands[seat] = slices.Delete(hand, i, i+1)
			return c, true
		}
	}
	return cards.Card{}, false
}
