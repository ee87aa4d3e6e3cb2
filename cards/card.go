package cards

import "strconv"

// Kind identifies what a card does when drawn
type Kind uint8

const (
	Number Kind = iota
	Freeze
	FlipThree
	SecondChance
)

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case Number:
		return "NUMBER"
	case Freeze:
		return "FREEZE"
	case FlipThree:
		return "FLIP_THREE"
	case SecondChance:
		return "SECOND_CHANCE"
	default:
		return "UNKNOWN"
	}
}

// IsAction reports whether the kind is an action card
func (k Kind) IsAction() bool {
	return k != Number
}

// Card is an immutable card value. Two cards are equal when both value and
// kind match, so Card can be compared with == and used as a map key.
type Card struct {
	Value int
	Kind  Kind
}

// NewNumber returns a number card with the given value
func NewNumber(value int) Card {
	return Card{Value: value, Kind: Number}
}

// NewAction returns an action card of the given kind. Action cards always
// carry a zero value.
func NewAction(kind Kind) Card {
	return Card{Kind: kind}
}

// IsNumber reports whether the card is a number card
func (c Card) IsNumber() bool {
	return c.Kind == Number
}

// IsAction reports whether the card is an action card
func (c Card) IsAction() bool {
	return c.Kind.IsAction()
}

// String returns the value for number cards and the kind name otherwise
func (c Card) String() string {
	if c.IsNumber() {
		return strconv.Itoa(c.Value)
	}
	return c.Kind.String()
}

// Points returns the sum of number card values in cards
func Points(cards []Card) int {
	total := 0
	for _, c := range cards {
		if c.IsNumber() {
			total += c.Value
		}
	}
	return total
}

// ContainsNumber reports whether cards holds a number card with value
func ContainsNumber(cards []Card, value int) bool {
	for _, c := range cards {
		if c.IsNumber() && c.Value == value {
			return true
		}
	}
	return false
}

// ContainsKind reports whether cards holds at least one card of kind
func ContainsKind(cards []Card, kind Kind) bool {
	for _, c := range cards {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
