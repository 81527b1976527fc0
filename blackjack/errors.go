package blackjack

import (
	"errors"
	"fmt"

	"github.com/lazharichir/cardlab/cards"
)

var (
	// ErrParse marks malformed bet or move input. The game asks again.
	ErrParse = errors.New("could not parse input")
	// ErrInvalidBet marks a bet outside 0 < bet < funds. The game asks again.
	ErrInvalidBet = errors.New("invalid bet")
	// ErrDeclined is returned by an Input when the player leaves the table.
	ErrDeclined = errors.New("player declined")
	// ErrTooManyAttempts ends a session after repeated invalid input.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
	// ErrInvalidState marks a transition attempted in the wrong phase.
	ErrInvalidState = fmt.Errorf("round %w", cards.ErrInvalidState)
)
