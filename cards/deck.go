package cards

import (
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// StandardDeckSize is the number of cards in a full deck
const StandardDeckSize = 52

// Deck is an ordered, mutable collection of cards with its own random source.
// A Deck is not safe for concurrent use; it belongs to a single game loop.
type Deck struct {
	cards Stack
	rng   *rand.Rand
}

// NewDeck creates an empty deck seeded from the clock
func NewDeck() *Deck {
	return NewDeckWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewDeckWithRand creates an empty deck drawing randomness from r
func NewDeckWithRand(r *rand.Rand) *Deck {
	return &Deck{
		cards: Stack{},
		rng:   r,
	}
}

func standardCards() Stack {
	deck := make(Stack, 0, StandardDeckSize)
	for _, suit := range suitPrecedence {
		for _, face := range faceOrder {
			deck.AddCard(Card{rank: faceRanks[face], face: face, suit: suit})
		}
	}
	return deck
}

// Fill populates an empty deck with the 52 standard cards.
// Filling a deck that still holds cards is rejected.
func (d *Deck) Fill() error {
	if len(d.cards) > 0 {
		return fmt.Errorf("%w: cannot fill a deck holding %d cards", ErrInvalidState, len(d.cards))
	}
	d.cards = standardCards()
	return nil
}

// Shuffle randomly permutes the cards in place
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset empties the deck, refills it and shuffles it
func (d *Deck) Reset() error {
	d.Clear()
	if err := d.Fill(); err != nil {
		return err
	}
	d.Shuffle()
	return nil
}

// Draw removes and returns a uniformly random card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.Remove(d.rng.Intn(len(d.cards)))
}

// DrawTop removes and returns the first card
func (d *Deck) DrawTop() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.Remove(0)
}

// Remove takes the card at position i out of the deck
func (d *Deck) Remove(i int) (Card, error) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, fmt.Errorf("%w: position %d outside deck of %d", ErrInvalidArgument, i, len(d.cards))
	}
	card := d.cards[i]
	d.cards = slices.Delete(d.cards, i, i+1)
	return card, nil
}

// Add places cards at the bottom of the deck
func (d *Deck) Add(cards ...Card) error {
	if len(d.cards)+len(cards) > StandardDeckSize {
		return fmt.Errorf("%w: deck would hold %d cards", ErrInvalidState, len(d.cards)+len(cards))
	}
	for _, c := range cards {
		if c.IsZero() {
			return fmt.Errorf("%w: zero card", ErrInvalidArgument)
		}
	}
	d.cards.AddCards(cards...)
	return nil
}

// Clear removes every card
func (d *Deck) Clear() {
	d.cards = d.cards[:0]
}

// Size returns the number of cards left
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the deck contents in order
func (d *Deck) Cards() Stack {
	return slices.Clone(d.cards)
}

// SortedView returns the cards ordered highest first without touching the deck
func (d *Deck) SortedView() Stack {
	sorted := slices.Clone(d.cards)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		return b.Compare(a)
	})
	return sorted
}

func (d *Deck) String() string {
	return "[" + d.cards.String() + "]"
}
