package game

import "github.com/lox/flipseven/cards"

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeCardDrawn        EventType = "card_drawn"
	EventTypePlayerStayed     EventType = "player_stayed"
	EventTypePlayerBusted     EventType = "player_busted"
	EventTypePlayerFrozen     EventType = "player_frozen"
	EventTypeSecondChance     EventType = "second_chance"
	EventTypeActionCardPlayed EventType = "action_card_played"
	EventTypeDeckEmpty        EventType = "deck_empty"
	EventTypeRoundStart       EventType = "round_start"
	EventTypeRoundScored      EventType = "round_scored"
	EventTypeMatchWon         EventType = "match_won"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a match
type GameEvent interface {
	EventType() EventType
}

// CardDrawnEvent is recorded for every card taken from the deck
type CardDrawnEvent struct {
	Seat   int
	Player string
	Card   cards.Card
	Forced bool // Drawn as part of a FLIP_THREE sequence
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }

// PlayerStayedEvent is recorded when a participant stops drawing
type PlayerStayedEvent struct {
	Seat   int
	Player string
	Points int
	Forced bool // The round ended on an exhausted deck
}

func (e PlayerStayedEvent) EventType() EventType { return EventTypePlayerStayed }

// PlayerBustedEvent is recorded when a duplicate number ends a round
type PlayerBustedEvent struct {
	Seat   int
	Player string
	Card   cards.Card // The duplicate
}

func (e PlayerBustedEvent) EventType() EventType { return EventTypePlayerBusted }

// PlayerFrozenEvent is recorded when a FREEZE stops a participant
type PlayerFrozenEvent struct {
	Seat      int
	Player    string
	ActorSeat int
	Actor     string
	Points    int
}

func (e PlayerFrozenEvent) EventType() EventType { return EventTypePlayerFrozen }

// SecondChanceEvent is recorded when a SECOND_CHANCE absorbs a duplicate
type SecondChanceEvent struct {
	Seat   int
	Player string
	Card   cards.Card // The discarded duplicate
}

func (e SecondChanceEvent) EventType() EventType { return EventTypeSecondChance }

// ActionCardPlayedEvent is recorded when an action card is aimed at a target
type ActionCardPlayedEvent struct {
	ActorSeat  int
	Actor      string
	Card       cards.Card
	TargetSeat int
	Target     string
}

func (e ActionCardPlayedEvent) EventType() EventType { return EventTypeActionCardPlayed }

// DeckEmptyEvent is recorded when a draw finds no cards in either pile
type DeckEmptyEvent struct {
	Seat   int
	Player string
}

func (e DeckEmptyEvent) EventType() EventType { return EventTypeDeckEmpty }

// RoundStartEvent is published when a new round begins
type RoundStartEvent struct {
	MatchID string
	Round   int
	Players []string
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// RoundScoredEvent is published once a round's hands have been scored
type RoundScoredEvent struct {
	MatchID string
	Round   int
	Lines   []ScoreLine
}

func (e RoundScoredEvent) EventType() EventType { return EventTypeRoundScored }

// MatchWonEvent is published when a participant reaches the target score
type MatchWonEvent struct {
	MatchID string
	Round   int
	Seat    int
	Player  string
	Total   int
}

func (e MatchWonEvent) EventType() EventType { return EventTypeMatchWon }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Publish delivers to every
// subscriber synchronously, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventRecorder is a subscriber that keeps every event it receives
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent records the event
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// Count returns how many recorded events have the given type
func (r *EventRecorder) Count(eventType EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}
