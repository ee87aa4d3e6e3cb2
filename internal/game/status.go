package game

// Status is a participant's state within one round
type Status uint8

const (
	// Active participants may still act this round
	Active Status = iota
	// Stayed participants stopped voluntarily and bank their points
	Stayed
	// Busted participants drew a duplicate number and score nothing
	Busted
	// Frozen participants were stopped by a FREEZE card and bank their points
	Frozen
)

// String returns the display name of the status
func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Stayed:
		return "STAYED"
	case Busted:
		return "BUSTED"
	case Frozen:
		return "FROZEN"
	default:
		return "UNKNOWN"
	}
}

// CanAct reports whether the participant still takes turns this round
func (s Status) CanAct() bool {
	return s == Active
}

// IsFinished reports whether the participant's round is over
func (s Status) IsFinished() bool {
	return s != Active
}

// IsSecured reports whether the participant ended the round keeping points
func (s Status) IsSecured() bool {
	return s == Stayed || s == Frozen
}
