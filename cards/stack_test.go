package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_AddCard(t *testing.T) {
	stack := NewStack()
	card := MustCard(Ace, Clubs)

	stack.AddCard(card)

	assert.Len(t, stack, 1, "Expected stack to have 1 card")
	assert.Equal(t, card, stack[0], "Expected card to be card")
}

func TestStack_AddCards(t *testing.T) {
	stack := NewStack()
	card1 := MustCard(Ace, Clubs)
	card2 := MustCard(Two, Diamonds)

	stack.AddCards(card1, card2)

	assert.Len(t, stack, 2, "Expected stack to have 2 cards")
	assert.Equal(t, card1, stack[0], "Expected first card to be card1")
	assert.Equal(t, card2, stack[1], "Expected second card to be card2")
}

func TestStack_Total(t *testing.T) {
	assert.Equal(t, 0, NewStack().Total())
	assert.Equal(t, 21, NewStack(MustCard(Ace, Clubs), MustCard(King, Hearts), MustCard(Queen, Spades)).Total())
	assert.Equal(t, 17, NewStack(MustCard(Ten, Clubs), MustCard(Seven, Hearts)).Total())
}

func TestStack_Contains(t *testing.T) {
	stack := NewStack(MustCard(Ace, Clubs))
	assert.True(t, stack.Contains(MustCard(Ace, Clubs)))
	assert.False(t, stack.Contains(MustCard(Ace, Hearts)))

	faces := NewStack(MustCard(Jack, Spades))
	assert.False(t, faces.Contains(MustCard(King, Spades)), "equal rank is not the same card")
}

func TestStack_String(t *testing.T) {
	stack := NewStack(MustCard(Ace, Clubs), MustCard(Two, Diamonds))

	expectedString := "A♣ 2♦"
	assert.Equal(t, expectedString, stack.String(), "Expected string representation to be equal to expectedString")
}
