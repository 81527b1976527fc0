package blackjack

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase represents the current step of a round
type Phase string

const (
	PhaseAwaitingBet         Phase = "awaiting_bet"
	PhaseDealingInitialHands Phase = "dealing_initial_hands"
	PhasePlayerTurn          Phase = "player_turn"
	PhaseDealerTurn          Phase = "dealer_turn"
	PhaseRoundResolved       Phase = "round_resolved"
)

// Move is a player's decision during their turn
type Move string

const (
	MoveHit   Move = "hit"
	MoveStand Move = "stand"
)

// Valid reports whether m is Hit or Stand
func (m Move) Valid() bool {
	return m == MoveHit || m == MoveStand
}

// ParseMove reads "hit", "h", "stand" or "s" in any case
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return MoveHit, nil
	case "stand", "s":
		return MoveStand, nil
	}
	return "", fmt.Errorf("%w: %q is not a valid move", ErrParse, s)
}

// ParseBet reads a whole-number bet
func ParseBet(s string) (int, error) {
	bet, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrParse, s)
	}
	return bet, nil
}

// Owner identifies whose hand a card went to
type Owner string

const (
	OwnerPlayer Owner = "player"
	OwnerDealer Owner = "dealer"
)

// Outcome is the result of a resolved round from the player's side
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomePush Outcome = "push"
)
