package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/flipseven/cards"
)

// TurnResult holds the events produced by one turn slot, in the order they
// happened
type TurnResult struct {
	Seat   int
	Events []GameEvent
}

func (r *TurnResult) record(event GameEvent) {
	r.Events = append(r.Events, event)
}

// TurnEngine resolves one participant's turn slot at a time: the decision,
// the draw, duplicate handling, and any action-card effects including
// chained forced draws.
type TurnEngine struct {
	deck     *cards.Deck
	players  []Participant
	state    *RoundState
	estimate Estimator
	effects  map[cards.Kind]cardEffect
	logger   *log.Logger
}

// NewTurnEngine creates a turn engine over the given deck, seats and round
// state. A nil estimate uses EstimateSuccess and a nil logger discards output.
func NewTurnEngine(deck *cards.Deck, players []Participant, state *RoundState, estimate Estimator, logger *log.Logger) *TurnEngine {
	if estimate == nil {
		estimate = EstimateSuccess
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TurnEngine{
		deck:     deck,
		players:  players,
		state:    state,
		estimate: estimate,
		effects:  defaultEffects(),
		logger:   logger,
	}
}

// ProcessTurn plays the turn slot of seat. Participants who are no longer
// active are skipped without consulting their agent.
func (t *TurnEngine) ProcessTurn(seat int) TurnResult {
	res := TurnResult{Seat: seat}
	if !t.state.Status(seat).CanAct() {
		return res
	}

	player := t.players[seat]
	action := player.Agent.Decide(t.snapshot(seat))

	if action != Hit {
		t.state.SetStatus(seat, Stayed)
		res.record(PlayerStayedEvent{
			Seat:   seat,
			Player: player.Name,
			Points: t.state.Points(seat),
		})
		return res
	}

	t.drawAndResolve(seat, false, &res)
	return res
}

// snapshot builds the decision view for seat
func (t *TurnEngine) snapshot(seat int) Snapshot {
	hand := t.state.Hand(seat)

	secured := t.state.SecuredSeats()
	names := make([]string, len(secured))
	for i, s := range secured {
		names[i] = t.players[s].Name
	}

	return Snapshot{
		Seat:               seat,
		Name:               t.players[seat].Name,
		Hand:               hand,
		Points:             cards.Points(hand),
		SuccessProbability: t.estimate(hand, t.deck.ViewDrawPile()),
		DrawPileSize:       t.deck.DrawPileSize(),
		Secured:            names,
	}
}

// drawAndResolve draws one card for seat and applies its consequences. It
// returns false when the deck had nothing left to draw.
func (t *TurnEngine) drawAndResolve(seat int, forced bool, res *TurnResult) bool {
	if !t.state.Status(seat).CanAct() {
		return true
	}

	player := t.players[seat]
	card, err := t.deck.Draw()
	if err != nil {
		// Draw only fails with cards.ErrDeckEmpty.
		res.record(DeckEmptyEvent{Seat: seat, Player: player.Name})
		t.logger.Debug("Deck empty", "player", player.Name)
		return false
	}
	res.record(CardDrawnEvent{Seat: seat, Player: player.Name, Card: card, Forced: forced})

	if card.IsNumber() {
		if !t.state.hasNumber(seat, card.Value) {
			t.state.add(seat, card)
			return true
		}

		if saved, ok := t.state.removeKind(seat, cards.SecondChance); ok {
			t.deck.DiscardAll([]cards.Card{saved, card})
			res.record(SecondChanceEvent{Seat: seat, Player: player.Name, Card: card})
			return true
		}

		// The duplicate stays in hand so the bust is visible.
		t.state.add(seat, card)
		t.state.SetStatus(seat, Busted)
		res.record(PlayerBustedEvent{Seat: seat, Player: player.Name, Card: card})
		return true
	}

	t.state.add(seat, card)
	if effect, ok := t.effects[card.Kind]; ok {
		effect(t, seat, card, res)
	}
	return true
}

// forceDraw makes target draw up to n cards in a row, stopping as soon as the
// target is no longer active or the deck runs dry. Each draw resolves exactly
// like a normal hit, so effects can chain.
func (t *TurnEngine) forceDraw(target, n int, res *TurnResult) {
	for range n {
		if !t.state.Status(target).CanAct() {
			return
		}
		if !t.drawAndResolve(target, true, res) {
			return
		}
	}
}

// selectTarget asks the actor's agent to pick among the other active
// participants. It returns false when nobody is eligible.
func (t *TurnEngine) selectTarget(actor int, kind cards.Kind) (int, bool) {
	var eligible []int
	for seat := range t.players {
		if seat != actor && t.state.Status(seat).CanAct() {
			eligible = append(eligible, seat)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}

	names := make([]string, len(eligible))
	for i, seat := range eligible {
		names[i] = t.players[seat].Name
	}

	chosen := t.players[actor].Agent.ChooseTarget(TargetRequest{
		Actor:    t.players[actor].Name,
		Kind:     kind,
		Eligible: names,
	})
	for _, seat := range eligible {
		if t.players[seat].Name == chosen {
			return seat, true
		}
	}

	t.logger.Debug("Invalid target, using first eligible", "actor", t.players[actor].Name, "chosen", chosen)
	return eligible[0], true
}
