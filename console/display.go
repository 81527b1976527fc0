package console

import (
	"fmt"
	"io"
	"log"

	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
)

// Display prints the table for a single console player
type Display struct {
	out io.Writer
}

// NewDisplay writes to out
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

func (d *Display) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(d.out, format, args...); err != nil {
		log.Printf("console: failed to write output: %v", err)
	}
}

func (d *Display) ShowPlayerHand(hand cards.Stack) {
	d.printf("Your hand:   %s (%d)\n", hand, hand.Total())
}

// ShowDealerHand only totals the cards the player can see
func (d *Display) ShowDealerHand(hand cards.HeldStack) {
	d.printf("Dealer hand: %s (%d)\n", hand, hand.Visible().Total())
}

func (d *Display) ShowDrawnCard(card cards.Card, owner blackjack.Owner) {
	if owner == blackjack.OwnerDealer {
		d.printf("Dealer draws %s\n", card)
		return
	}
	d.printf("You draw %s\n", card)
}

func (d *Display) ShowBust(lastGoodTotal, bustedTotal int) {
	d.printf("Bust! %d went to %d\n", lastGoodTotal, bustedTotal)
}

func (d *Display) ShowResult(result blackjack.Result) {
	switch result.Outcome {
	case blackjack.OutcomeWin:
		d.printf("You win %d. ", result.Bet)
	case blackjack.OutcomeLose:
		d.printf("You lose %d. ", result.Bet)
	default:
		d.printf("Push. ")
	}
	d.printf("You %d, dealer %d. Funds: %d\n", result.PlayerTotal, result.DealerTotal, result.Funds)
}

func (d *Display) ShowError(err error) {
	d.printf("! %v\n", err)
}

// ShowGameOver prints the closing summary
func (d *Display) ShowGameOver(funds, rounds int) {
	d.printf("Game over after %d rounds with %d left.\n", rounds, funds)
}
