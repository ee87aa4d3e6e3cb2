package game

import "errors"

var (
	// ErrInvalidConfiguration is returned by NewEngine when the match cannot be set up
	ErrInvalidConfiguration = errors.New("invalid match configuration")

	// ErrRoundLimit is returned by Engine.Play when no winner emerged within the round limit
	ErrRoundLimit = errors.New("round limit reached")
)
