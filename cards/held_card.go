package cards

import (
	"encoding/json"
	"strings"
)

type CardVisibility string

const (
	FaceDown    CardVisibility = "down" // Nobody can see
	FaceUpToAll CardVisibility = "all"  // Everyone can see
)

// HiddenCardLabel is shown in place of a face-down card
const HiddenCardLabel = "??"

// HeldCard represents a card that's in play with visibility information
type HeldCard struct {
	Card
	Visibility CardVisibility
}

// NewHeldCard creates a new held card with the specified visibility
func NewHeldCard(card Card, visibility CardVisibility) HeldCard {
	return HeldCard{
		Card:       card,
		Visibility: visibility,
	}
}

// IsFaceDown reports whether the card is hidden
func (c HeldCard) IsFaceDown() bool {
	return c.Visibility == FaceDown
}

// Hide sets the card as face down
func (c *HeldCard) Hide() {
	c.Visibility = FaceDown
}

// Reveal sets the card as face up to all
func (c *HeldCard) Reveal() {
	c.Visibility = FaceUpToAll
}

func (c HeldCard) String() string {
	if c.IsFaceDown() {
		return HiddenCardLabel
	}
	return c.Card.String()
}

// MarshalJSON never exposes the value of a face-down card
func (c HeldCard) MarshalJSON() ([]byte, error) {
	view := struct {
		Card     string `json:"card"`
		FaceDown bool   `json:"faceDown"`
	}{
		Card:     c.String(),
		FaceDown: c.IsFaceDown(),
	}
	return json.Marshal(view)
}

type HeldStack []HeldCard

// NewHeldStack creates a new held stack
func NewHeldStack(cards ...HeldCard) HeldStack {
	return HeldStack(cards)
}

// Add adds a card to the stack
func (s *HeldStack) Add(card HeldCard) {
	*s = append(*s, card)
}

// RevealAll turns every card face up
func (s HeldStack) RevealAll() {
	for i := range s {
		s[i].Reveal()
	}
}

// Cards returns the underlying cards regardless of visibility
func (s HeldStack) Cards() Stack {
	out := make(Stack, len(s))
	for i, c := range s {
		out[i] = c.Card
	}
	return out
}

// Visible returns only the face-up cards
func (s HeldStack) Visible() Stack {
	var out Stack
	for _, c := range s {
		if !c.IsFaceDown() {
			out = append(out, c.Card)
		}
	}
	return out
}

// Total sums every card, hidden or not
func (s HeldStack) Total() int {
	return s.Cards().Total()
}

// String lists the cards, masking face-down ones
func (s HeldStack) String() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}
