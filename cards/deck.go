package cards

import (
	"errors"
	rand "math/rand/v2"
	"slices"
)

const (
	// MaxNumber is the highest number card value
	MaxNumber = 12
	// ActionCopies is how many copies of each action card a standard deck holds
	ActionCopies = 3
)

// ErrDeckEmpty is returned by Draw when neither pile holds a card
var ErrDeckEmpty = errors.New("no cards left in the deck")

// Deck manages a draw pile and a discard pile. The front of the draw pile is
// the next card drawn. Drawing from an empty draw pile recycles the discard
// pile into a freshly shuffled draw pile.
//
// A Deck is not safe for concurrent use.
type Deck struct {
	draw    []Card
	discard []Card
	rng     *rand.Rand // Random source for deterministic shuffling
}

// StandardComposition returns the cards of a full deck in a fixed order:
// values 0-11 with value+1 copies each, twelve 12s, and ActionCopies of each
// action kind.
func StandardComposition() []Card {
	cards := make([]Card, 0, 100)
	for value := 0; value <= MaxNumber; value++ {
		copies := value + 1
		if value == MaxNumber {
			copies = MaxNumber
		}
		for range copies {
			cards = append(cards, NewNumber(value))
		}
	}
	for _, kind := range []Kind{Freeze, FlipThree, SecondChance} {
		for range ActionCopies {
			cards = append(cards, NewAction(kind))
		}
	}
	return cards
}

// NewDeck creates a standard deck shuffled with rng. A nil rng falls back to
// the global source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		draw: StandardComposition(),
		rng:  rng,
	}
	d.Shuffle()
	return d
}

// NewPresetDeck creates a deck whose draw pile is exactly cards, in order and
// unshuffled. rng is only used when the discard pile is recycled.
func NewPresetDeck(cards []Card, rng *rand.Rand) *Deck {
	return &Deck{
		draw: slices.Clone(cards),
		rng:  rng,
	}
}

// Shuffle shuffles the draw pile using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.draw) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	}
}

// Draw removes and returns the front card of the draw pile, recycling the
// discard pile first if the draw pile is empty.
func (d *Deck) Draw() (Card, error) {
	if len(d.draw) == 0 {
		d.recycle()
	}
	if len(d.draw) == 0 {
		return Card{}, ErrDeckEmpty
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	return card, nil
}

// DiscardAll appends cards to the discard pile
func (d *Deck) DiscardAll(cards []Card) {
	d.discard = append(d.discard, cards...)
}

// DrawPileSize returns the number of cards drawable without recycling
func (d *Deck) DrawPileSize() int {
	return len(d.draw)
}

// DiscardPileSize returns the number of cards waiting to be recycled
func (d *Deck) DiscardPileSize() int {
	return len(d.discard)
}

// ViewDrawPile returns a copy of the draw pile in draw order
func (d *Deck) ViewDrawPile() []Card {
	return slices.Clone(d.draw)
}

// ViewDiscardPile returns a copy of the discard pile in discard order
func (d *Deck) ViewDiscardPile() []Card {
	return slices.Clone(d.discard)
}

func (d *Deck) recycle() {
	if len(d.discard) == 0 {
		return
	}
	d.draw = append(d.draw[:0], d.discard...)
	d.discard = d.discard[:0]
	d.Shuffle()
}
