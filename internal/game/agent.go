package game

import "github.com/lox/flipseven/cards"

// Action is a participant's choice at a decision point
type Action uint8

const (
	Stay Action = iota
	Hit
)

// String returns the display name of the action
func (a Action) String() string {
	switch a {
	case Stay:
		return "STAY"
	case Hit:
		return "HIT"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is the read-only view of the round handed to an agent before it
// decides. It is built fresh for every decision and never reused.
type Snapshot struct {
	Seat               int
	Name               string
	Hand               []cards.Card // Copy of the participant's hand in draw order
	Points             int          // Sum of number cards in Hand
	SuccessProbability float64      // Chance the next draw does not bust
	DrawPileSize       int
	Secured            []string // Names of participants who stayed or were frozen
}

// TargetRequest asks an agent to pick the target of an action card
type TargetRequest struct {
	Actor    string
	Kind     cards.Kind
	Eligible []string // Active participants other than the actor, in seat order
}

// Agent represents any entity (human or bot) that makes decisions for a
// participant. Agents receive immutable snapshots and return decisions; they
// never mutate game state.
type Agent interface {
	// Decide chooses between hitting and staying
	Decide(snapshot Snapshot) Action

	// ChooseTarget returns the name of one of req.Eligible. Unknown names
	// fall back to the first eligible participant.
	ChooseTarget(req TargetRequest) string
}

// FirstEligible provides the default targeting behavior and can be embedded
// by agents that do not care who they target.
type FirstEligible struct{}

// ChooseTarget returns the first eligible name
func (FirstEligible) ChooseTarget(req TargetRequest) string {
	if len(req.Eligible) == 0 {
		return ""
	}
	return req.Eligible[0]
}

// AgentFunc adapts a plain decision function to the Agent interface
type AgentFunc func(snapshot Snapshot) Action

// Decide calls f
func (f AgentFunc) Decide(snapshot Snapshot) Action {
	return f(snapshot)
}

// ChooseTarget returns the first eligible name
func (f AgentFunc) ChooseTarget(req TargetRequest) string {
	return FirstEligible{}.ChooseTarget(req)
}

// Participant binds a display name to the agent that plays for it
type Participant struct {
	Name  string
	Agent Agent
}
