package cards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeldStack_Visibility(t *testing.T) {
	up := NewHeldCard(MustCard(King, Hearts), FaceUpToAll)
	hole := NewHeldCard(MustCard(Seven, Clubs), FaceDown)
	hand := NewHeldStack(up, hole)

	assert.Equal(t, "K♥ ??", hand.String())
	assert.Equal(t, Stack{MustCard(King, Hearts)}, hand.Visible())
	assert.Equal(t, 17, hand.Total(), "hidden cards still count toward the total")

	hand.RevealAll()
	assert.Equal(t, "K♥ 7♣", hand.String())
	assert.Len(t, hand.Visible(), 2)
}

func TestHeldCard_HideReveal(t *testing.T) {
	card := NewHeldCard(MustCard(Ace, Spades), FaceUpToAll)
	card.Hide()
	assert.True(t, card.IsFaceDown())
	assert.Equal(t, HiddenCardLabel, card.String())

	card.Reveal()
	assert.False(t, card.IsFaceDown())
	assert.Equal(t, "A♠", card.String())
}

func TestHeldCard_MarshalJSONMasksHiddenCards(t *testing.T) {
	hand := NewHeldStack(
		NewHeldCard(MustCard(King, Hearts), FaceUpToAll),
		NewHeldCard(MustCard(Seven, Clubs), FaceDown),
	)

	data, err := json.Marshal(hand)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"card":"K♥","faceDown":false},{"card":"??","faceDown":true}]`, string(data))
	assert.NotContains(t, string(data), "7♣")
}
