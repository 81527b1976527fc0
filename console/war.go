package console

import (
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/war"
)

// ShowBattle prints one War exchange
func (d *Display) ShowBattle(b war.Battle) {
	var verdict string
	switch b.Winner {
	case war.SideOne:
		verdict = "one takes both"
	case war.SideTwo:
		verdict = "two takes both"
	default:
		verdict = "tie"
	}
	d.printf("#%d  %-3s vs %-3s  %s  (%d/%d)\n", b.Number, b.One, b.Two, verdict, b.SizeOne, b.SizeTwo)
}

// ShowWarResult prints how a War game ended
func (d *Display) ShowWarResult(r war.Result) {
	if r.Winner == war.SideNone {
		d.printf("No winner after %d battles.\n", r.Battles)
		return
	}
	d.printf("Player %s wins after %d battles.\n", r.Winner, r.Battles)
}

// ShowDeck prints a labelled list of cards
func (d *Display) ShowDeck(label string, stack cards.Stack) {
	d.printf("%s (%d): %s\n", label, len(stack), stack)
}
