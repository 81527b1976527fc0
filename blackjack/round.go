package blackjack

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lazharichir/cardlab/cards"
)

// Round is the state of a single blackjack hand, from bet to resolution.
// Each transition is a method that only succeeds in the matching phase.
type Round struct {
	ID    string
	Phase Phase
	Bet   int

	Player cards.Stack
	Dealer cards.HeldStack

	PlayerBusted  bool
	DealerBusted  bool
	LastGoodTotal int // player total before the busting card
	BustedTotal   int // player total after the busting card
	Outcome       Outcome

	rules  Rules
	source CardSource
}

// NewRound creates a round waiting for a bet
func NewRound(source CardSource, rules Rules) *Round {
	return &Round{
		ID:     uuid.NewString(),
		Phase:  PhaseAwaitingBet,
		Player: cards.Stack{},
		Dealer: cards.HeldStack{},
		rules:  rules,
		source: source,
	}
}

// IsInPhase reports whether the round is currently in phase
func (r *Round) IsInPhase(phase Phase) bool {
	return r.Phase == phase
}

func (r *Round) requirePhase(phase Phase, action string) error {
	if r.Phase != phase {
		return fmt.Errorf("%w: cannot %s during %s", ErrInvalidState, action, r.Phase)
	}
	return nil
}

// PlayerTotal sums the player's hand
func (r *Round) PlayerTotal() int {
	return r.Player.Total()
}

// DealerTotal sums the dealer's hand, hole card included
func (r *Round) DealerTotal() int {
	return r.Dealer.Total()
}

// HoleCard returns the dealer's face-down card, or the zero card before the deal
func (r *Round) HoleCard() cards.Card {
	if len(r.Dealer) < 2 {
		return cards.Card{}
	}
	return r.Dealer[1].Card
}

// RevealHoleCard turns every dealer card face up and returns the hole card.
// The game calls it when the round ends without a dealer turn.
func (r *Round) RevealHoleCard() cards.Card {
	r.Dealer.RevealAll()
	return r.HoleCard()
}

// PlaceBet accepts a bet when 0 < bet < funds. An invalid bet leaves the
// round waiting for another one.
func (r *Round) PlaceBet(bet, funds int) error {
	if err := r.requirePhase(PhaseAwaitingBet, "place a bet"); err != nil {
		return err
	}
	if bet <= 0 || bet >= funds {
		return fmt.Errorf("%w: bet must be between 1 and %d, got %d", ErrInvalidBet, funds-1, bet)
	}

	r.Bet = bet
	r.Phase = PhaseDealingInitialHands
	return nil
}

// Deal draws two cards each for the player and the dealer. The dealer's
// second card is dealt face down.
func (r *Round) Deal() error {
	if err := r.requirePhase(PhaseDealingInitialHands, "deal"); err != nil {
		return err
	}

	for i := 0; i < 2; i++ {
		card, err := r.source.Draw()
		if err != nil {
			return fmt.Errorf("dealing player card: %w", err)
		}
		r.Player.AddCard(card)

		card, err = r.source.Draw()
		if err != nil {
			return fmt.Errorf("dealing dealer card: %w", err)
		}
		visibility := cards.FaceUpToAll
		if i == 1 {
			visibility = cards.FaceDown
		}
		r.Dealer.Add(cards.NewHeldCard(card, visibility))
	}

	r.Phase = PhasePlayerTurn
	if r.PlayerTotal() == r.rules.BustLimit {
		r.Phase = PhaseDealerTurn
	}
	return nil
}

// Hit draws one card for the player. Going over the bust limit resolves the
// round as a loss; landing exactly on it ends the player's turn.
func (r *Round) Hit() (cards.Card, error) {
	if err := r.requirePhase(PhasePlayerTurn, "hit"); err != nil {
		return cards.Card{}, err
	}

	card, err := r.source.Draw()
	if err != nil {
		return cards.Card{}, fmt.Errorf("drawing player card: %w", err)
	}

	before := r.PlayerTotal()
	r.Player.AddCard(card)
	after := r.PlayerTotal()

	switch {
	case after > r.rules.BustLimit:
		r.PlayerBusted = true
		r.LastGoodTotal = before
		r.BustedTotal = after
		r.resolve()
	case after == r.rules.BustLimit:
		r.Phase = PhaseDealerTurn
	}
	return card, nil
}

// Stand ends the player's turn
func (r *Round) Stand() error {
	if err := r.requirePhase(PhasePlayerTurn, "stand"); err != nil {
		return err
	}
	r.Phase = PhaseDealerTurn
	return nil
}

// PlayDealer reveals the hole card and draws until the dealer reaches
// DealerStandsAt. It returns the cards drawn after the initial deal.
func (r *Round) PlayDealer() ([]cards.Card, error) {
	if err := r.requirePhase(PhaseDealerTurn, "play the dealer"); err != nil {
		return nil, err
	}

	r.Dealer.RevealAll()

	var drawn []cards.Card
	for r.DealerTotal() < r.rules.DealerStandsAt {
		card, err := r.source.Draw()
		if err != nil {
			return drawn, fmt.Errorf("drawing dealer card: %w", err)
		}
		r.Dealer.Add(cards.NewHeldCard(card, cards.FaceUpToAll))
		drawn = append(drawn, card)
	}

	r.DealerBusted = r.DealerTotal() > r.rules.BustLimit
	r.resolve()
	return drawn, nil
}

func (r *Round) resolve() {
	r.Phase = PhaseRoundResolved

	player, dealer := r.PlayerTotal(), r.DealerTotal()
	switch {
	case r.PlayerBusted:
		r.Outcome = OutcomeLose
	case r.DealerBusted:
		r.Outcome = OutcomeWin
	case player > dealer:
		r.Outcome = OutcomeWin
	case player < dealer:
		r.Outcome = OutcomeLose
	default:
		r.Outcome = OutcomePush
	}
}

// Payout is the change in the player's funds: +bet on a win, -bet on a loss
// and nothing on a push or an unresolved round.
func (r *Round) Payout() int {
	if r.Phase != PhaseRoundResolved {
		return 0
	}
	switch r.Outcome {
	case OutcomeWin:
		return r.Bet
	case OutcomeLose:
		return -r.Bet
	}
	return 0
}

// Result summarises the round. Funds is left for the caller to fill in.
func (r *Round) Result() (Result, error) {
	if err := r.requirePhase(PhaseRoundResolved, "report a result"); err != nil {
		return Result{}, err
	}
	return Result{
		RoundID:      r.ID,
		Bet:          r.Bet,
		Outcome:      r.Outcome,
		PlayerTotal:  r.PlayerTotal(),
		DealerTotal:  r.DealerTotal(),
		PlayerBusted: r.PlayerBusted,
		DealerBusted: r.DealerBusted,
		Payout:       r.Payout(),
	}, nil
}
