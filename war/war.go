package war

import (
	"errors"
	"fmt"

	"github.com/lazharichir/cardlab/cards"
)

// Side identifies one of the two players
type Side string

const (
	SideOne  Side = "one"
	SideTwo  Side = "two"
	SideNone Side = "none" // tie, or no winner yet
)

// DefaultMaxBattles caps a game that would otherwise cycle forever
const DefaultMaxBattles = 10000

var (
	// ErrGameOver is returned by Battle once a deck has run out
	ErrGameOver = errors.New("war: game is over")
)

// Battle records one exchange of cards
type Battle struct {
	Number  int
	One     cards.Card
	Two     cards.Card
	Winner  Side
	SizeOne int // cards held by side one after the battle
	SizeTwo int
}

// Result is the outcome of Play
type Result struct {
	Winner  Side // SideNone when the battle cap was reached
	Battles int
}

// Game is a two-deck War driver. Each side plays its top card and the higher
// card collects both at the bottom of its deck.
type Game struct {
	one, two *cards.Deck
	battles  int
	observer func(Battle)
}

// NewGame pits two decks against each other
func NewGame(one, two *cards.Deck) *Game {
	return &Game{one: one, two: two}
}

// Deal splits a full deck into two piles by alternating draws from the top.
// The source deck is left empty.
func Deal(deck *cards.Deck) (*cards.Deck, *cards.Deck, error) {
	one, two := cards.NewDeck(), cards.NewDeck()
	for turn := 0; deck.Size() > 0; turn++ {
		card, err := deck.DrawTop()
		if err != nil {
			return nil, nil, err
		}
		target := one
		if turn%2 == 1 {
			target = two
		}
		if err := target.Add(card); err != nil {
			return nil, nil, fmt.Errorf("dealing %s: %w", card, err)
		}
	}
	return one, two, nil
}

// OnBattle registers fn to be called after every battle
func (g *Game) OnBattle(fn func(Battle)) {
	g.observer = fn
}

// Battles returns the number of battles fought so far
func (g *Game) Battles() int { return g.battles }

// Sizes returns how many cards each side holds
func (g *Game) Sizes() (int, int) {
	return g.one.Size(), g.two.Size()
}

// Over reports whether either deck is empty
func (g *Game) Over() bool {
	return g.one.Size() == 0 || g.two.Size() == 0
}

// Leader returns the side holding more cards, or SideNone when even
func (g *Game) Leader() Side {
	switch one, two := g.Sizes(); {
	case one > two:
		return SideOne
	case two > one:
		return SideTwo
	}
	return SideNone
}

// Battle plays one exchange. On a tie each card goes back under its own deck.
func (g *Game) Battle() (Battle, error) {
	if g.Over() {
		return Battle{}, ErrGameOver
	}

	a, err := g.one.DrawTop()
	if err != nil {
		return Battle{}, err
	}
	b, err := g.two.DrawTop()
	if err != nil {
		return Battle{}, err
	}

	battle := Battle{One: a, Two: b, Winner: SideNone}
	switch a.Compare(b) {
	case 1:
		battle.Winner = SideOne
		err = g.one.Add(a, b)
	case -1:
		battle.Winner = SideTwo
		err = g.two.Add(b, a)
	default:
		if err = g.one.Add(a); err == nil {
			err = g.two.Add(b)
		}
	}
	if err != nil {
		return Battle{}, fmt.Errorf("collecting %s and %s: %w", a, b, err)
	}

	g.battles++
	battle.Number = g.battles
	battle.SizeOne, battle.SizeTwo = g.Sizes()

	if g.observer != nil {
		g.observer(battle)
	}
	return battle, nil
}

// Play fights battles until one deck is empty or maxBattles have been
// fought. A non-positive maxBattles means DefaultMaxBattles.
func (g *Game) Play(maxBattles int) (Result, error) {
	if maxBattles <= 0 {
		maxBattles = DefaultMaxBattles
	}

	for !g.Over() && g.battles < maxBattles {
		if _, err := g.Battle(); err != nil {
			return Result{Battles: g.battles}, err
		}
	}

	result := Result{Winner: SideNone, Battles: g.battles}
	switch {
	case g.two.Size() == 0 && g.one.Size() > 0:
		result.Winner = SideOne
	case g.one.Size() == 0 && g.two.Size() > 0:
		result.Winner = SideTwo
	}
	return result, nil
}
