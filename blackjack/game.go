package blackjack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/events"
)

// Reasons reported in GameEnded.
const (
	EndReasonOutOfFunds = "out of funds"
	EndReasonDeclined   = "player left"
	EndReasonCancelled  = "cancelled"
	EndReasonFailed     = "failed"
)

// Game runs a sequence of blackjack rounds for one player against the house.
// It owns its card source and is driven from a single goroutine.
type Game struct {
	ID     string
	rules  Rules
	funds  int
	rounds int

	source  CardSource
	input   Input
	display Display

	eventStore    events.EventStore
	eventHandlers []events.EventHandler
}

// NewGame creates a game. The player starts with rules.StartingFunds.
func NewGame(rules Rules, source CardSource, input Input, display Display, eventStore events.EventStore) *Game {
	return &Game{
		ID:            uuid.NewString(),
		rules:         rules,
		funds:         rules.StartingFunds,
		source:        source,
		input:         input,
		display:       display,
		eventStore:    eventStore,
		eventHandlers: []events.EventHandler{},
	}
}

// Funds returns the player's current funds
func (g *Game) Funds() int { return g.funds }

// Rounds returns the number of rounds resolved so far
func (g *Game) Rounds() int { return g.rounds }

// CanBet reports whether any bet satisfies 0 < bet < funds
func (g *Game) CanBet() bool {
	return g.funds > 1
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (g *Game) RegisterEventHandler(handler events.EventHandler) {
	g.eventHandlers = append(g.eventHandlers, handler)
}

// emitEvent records the event and notifies all handlers
func (g *Game) emitEvent(event events.Event) {
	if g.eventStore != nil {
		if err := g.eventStore.Append(event); err != nil {
			log.Printf("blackjack: failed to append %s event: %v", event.EventName(), err)
		}
	}

	for _, handler := range g.eventHandlers {
		handler(event)
	}
}

// Play runs rounds until the player runs out of funds, leaves, or ctx is done.
func (g *Game) Play(ctx context.Context) error {
	g.emitEvent(GameStarted{GameID: g.ID, Funds: g.funds, At: time.Now()})

	reason, err := g.loop(ctx)

	g.emitEvent(GameEnded{
		GameID: g.ID,
		Funds:  g.funds,
		Rounds: g.rounds,
		Reason: reason,
		At:     time.Now(),
	})
	return err
}

func (g *Game) loop(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return EndReasonCancelled, err
		}
		if !g.CanBet() {
			return EndReasonOutOfFunds, nil
		}

		err := g.PlayRound(ctx)
		switch {
		case errors.Is(err, ErrDeclined):
			return EndReasonDeclined, nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return EndReasonCancelled, err
		case err != nil:
			return EndReasonFailed, err
		}
	}
}

// PlayRound takes one round from bet to settlement.
func (g *Game) PlayRound(ctx context.Context) error {
	if err := g.prepareSource(); err != nil {
		return err
	}

	round := NewRound(g.source, g.rules)

	if err := g.collectBet(ctx, round); err != nil {
		return err
	}
	g.emitEvent(BetPlaced{
		GameID:  g.ID,
		RoundID: round.ID,
		Amount:  round.Bet,
		Funds:   g.funds,
		At:      time.Now(),
	})

	if err := round.Deal(); err != nil {
		return g.abortRound(round, err)
	}
	for _, card := range round.Player {
		g.emitCardDealt(round, card, OwnerPlayer, false)
	}
	for _, held := range round.Dealer {
		g.emitCardDealt(round, held.Card, OwnerDealer, held.IsFaceDown())
	}
	g.display.ShowPlayerHand(round.Player)
	g.display.ShowDealerHand(round.Dealer)

	for round.IsInPhase(PhasePlayerTurn) {
		move, err := g.collectMove(ctx, round)
		if err != nil {
			g.emitEvent(RoundAborted{GameID: g.ID, RoundID: round.ID, Reason: abortReason(err), At: time.Now()})
			return err
		}
		if err := g.applyMove(round, move); err != nil {
			return g.abortRound(round, err)
		}
	}

	if round.PlayerBusted {
		hole := round.RevealHoleCard()
		g.emitEvent(HoleCardRevealed{GameID: g.ID, RoundID: round.ID, Card: hole, At: time.Now()})
		g.display.ShowDealerHand(round.Dealer)
	}

	if round.IsInPhase(PhaseDealerTurn) {
		hole := round.HoleCard()
		drawn, err := round.PlayDealer()
		if err != nil {
			return g.abortRound(round, err)
		}
		g.emitEvent(HoleCardRevealed{GameID: g.ID, RoundID: round.ID, Card: hole, At: time.Now()})
		for _, card := range drawn {
			g.emitCardDealt(round, card, OwnerDealer, false)
			g.display.ShowDrawnCard(card, OwnerDealer)
		}
		g.display.ShowDealerHand(round.Dealer)
		g.emitEvent(DealerPlayed{
			GameID:  g.ID,
			RoundID: round.ID,
			Total:   round.DealerTotal(),
			Busted:  round.DealerBusted,
			At:      time.Now(),
		})
	}

	return g.settle(round)
}

// abortReason names why input stopped a round that was already dealt
func abortReason(err error) string {
	switch {
	case errors.Is(err, ErrDeclined):
		return EndReasonDeclined
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return EndReasonCancelled
	}
	return err.Error()
}

// prepareSource reshuffles a resettable source that is running low
func (g *Game) prepareSource() error {
	src, ok := g.source.(resettable)
	if !ok || src.Size() >= g.rules.ReshuffleBelow {
		return nil
	}

	remaining := src.Size()
	if err := src.Reset(); err != nil {
		return fmt.Errorf("reshuffling deck: %w", err)
	}
	g.emitEvent(DeckReshuffled{GameID: g.ID, Remaining: remaining, At: time.Now()})
	return nil
}

// collectBet asks for a bet until one is valid, giving up after MaxInputAttempts
func (g *Game) collectBet(ctx context.Context, round *Round) error {
	for attempt := 0; attempt < g.rules.MaxInputAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		bet, err := g.input.RequestBet(g.funds)
		if err == nil {
			err = round.PlaceBet(bet, g.funds)
		}

		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrParse), errors.Is(err, ErrInvalidBet):
			g.display.ShowError(err)
		default:
			return err
		}
	}
	return fmt.Errorf("%w: no valid bet after %d tries", ErrTooManyAttempts, g.rules.MaxInputAttempts)
}

// collectMove asks for Hit or Stand, giving up after MaxInputAttempts
func (g *Game) collectMove(ctx context.Context, round *Round) (Move, error) {
	for attempt := 0; attempt < g.rules.MaxInputAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		move, err := g.input.RequestMove(round.PlayerTotal())
		if err == nil && !move.Valid() {
			err = fmt.Errorf("%w: unknown move %q", ErrParse, string(move))
		}

		switch {
		case err == nil:
			return move, nil
		case errors.Is(err, ErrParse):
			g.display.ShowError(err)
		default:
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no valid move after %d tries", ErrTooManyAttempts, g.rules.MaxInputAttempts)
}

func (g *Game) applyMove(round *Round, move Move) error {
	switch move {
	case MoveHit:
		card, err := round.Hit()
		if err != nil {
			return err
		}
		g.emitCardDealt(round, card, OwnerPlayer, false)
		g.display.ShowDrawnCard(card, OwnerPlayer)

		if round.PlayerBusted {
			g.display.ShowBust(round.LastGoodTotal, round.BustedTotal)
			g.emitEvent(PlayerBusted{
				GameID:        g.ID,
				RoundID:       round.ID,
				LastGoodTotal: round.LastGoodTotal,
				BustedTotal:   round.BustedTotal,
				At:            time.Now(),
			})
		}
	case MoveStand:
		if err := round.Stand(); err != nil {
			return err
		}
		g.emitEvent(PlayerStood{GameID: g.ID, RoundID: round.ID, Total: round.PlayerTotal(), At: time.Now()})
	}
	return nil
}

// settle adjusts funds for a resolved round and reports the result
func (g *Game) settle(round *Round) error {
	result, err := round.Result()
	if err != nil {
		return g.abortRound(round, err)
	}

	g.funds += result.Payout
	g.rounds++
	result.Funds = g.funds

	g.display.ShowResult(result)
	g.emitEvent(RoundResolved{GameID: g.ID, RoundID: round.ID, Result: result, At: time.Now()})
	return nil
}

// abortRound ends a round that hit a structural error. The bet is not
// taken. When the source can be reset the session carries on.
func (g *Game) abortRound(round *Round, cause error) error {
	if !errors.Is(cause, cards.ErrEmptyDeck) && !errors.Is(cause, cards.ErrInvalidState) {
		return cause
	}

	log.Printf("blackjack: aborting round %s: %v", round.ID, cause)
	g.display.ShowError(cause)
	g.emitEvent(RoundAborted{GameID: g.ID, RoundID: round.ID, Reason: cause.Error(), At: time.Now()})

	src, ok := g.source.(resettable)
	if !ok {
		return cause
	}

	remaining := src.Size()
	if err := src.Reset(); err != nil {
		return fmt.Errorf("resetting deck after %v: %w", cause, err)
	}
	g.emitEvent(DeckReshuffled{GameID: g.ID, Remaining: remaining, At: time.Now()})
	return nil
}

func (g *Game) emitCardDealt(round *Round, card cards.Card, owner Owner, faceDown bool) {
	g.emitEvent(CardDealt{
		GameID:   g.ID,
		RoundID:  round.ID,
		Owner:    owner,
		Card:     card,
		FaceDown: faceDown,
		At:       time.Now(),
	})
}
