package cards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	tests := []struct {
		name    string
		rank    int
		face    Face
		suit    Suit
		wantErr bool
	}{
		{"Ace of Spades", 1, Ace, Spades, false},
		{"Ten of Hearts", 10, Ten, Hearts, false},
		{"King of Clubs", 10, King, Clubs, false},
		{"Two of Diamonds", 2, Two, Diamonds, false},

		{"Rank zero", 0, Ace, Spades, true},
		{"Rank eleven", 11, Ace, Spades, true},
		{"Negative rank", -3, Three, Spades, true},
		{"Unknown face", 5, Face("11"), Hearts, true},
		{"Empty face", 1, Face(""), Hearts, true},
		{"Rank does not match face", 7, Eight, Hearts, true},
		{"Queen with rank one", 1, Queen, Clubs, true},
		{"Unknown suit", 4, Four, Suit("x"), true},
		{"Empty suit", 4, Four, Suit(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := NewCard(tt.rank, tt.face, tt.suit)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				assert.True(t, card.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rank, card.Rank())
			assert.Equal(t, tt.face, card.Face())
			assert.Equal(t, tt.suit, card.Suit())
		})
	}
}

func TestNewCard_AllStandardCombinations(t *testing.T) {
	count := 0
	for _, suit := range Suits() {
		for _, face := range Faces() {
			rank, ok := RankOf(face)
			require.True(t, ok)
			_, err := NewCard(rank, face, suit)
			require.NoError(t, err, "%s%s should be valid", face, suit)
			count++
		}
	}
	assert.Equal(t, StandardDeckSize, count)
}

func TestCard_Name(t *testing.T) {
	assert.Equal(t, "A♦", MustCard(Ace, Diamonds).Name())
	assert.Equal(t, "10♠", MustCard(Ten, Spades).Name())
	assert.Equal(t, "Q♥", MustCard(Queen, Hearts).String())
}

func TestCard_Equals(t *testing.T) {
	assert.True(t, MustCard(Jack, Spades).Equals(MustCard(Jack, Spades)))
	assert.False(t, MustCard(Jack, Spades).Equals(MustCard(Queen, Spades)), "same rank, different face")
	assert.False(t, MustCard(Jack, Spades).Equals(MustCard(Jack, Hearts)))
}

func TestCard_Compare(t *testing.T) {
	t.Run("suit precedence wins over rank", func(t *testing.T) {
		assert.Equal(t, 1, MustCard(Two, Spades).Compare(MustCard(King, Hearts)))
		assert.Equal(t, 1, MustCard(Ace, Hearts).Compare(MustCard(King, Clubs)))
		assert.Equal(t, 1, MustCard(Two, Clubs).Compare(MustCard(Ten, Diamonds)))
		assert.Equal(t, -1, MustCard(King, Diamonds).Compare(MustCard(Ace, Spades)))
	})

	t.Run("rank breaks ties within a suit", func(t *testing.T) {
		assert.Equal(t, 1, MustCard(Nine, Hearts).Compare(MustCard(Two, Hearts)))
		assert.Equal(t, -1, MustCard(Ace, Hearts).Compare(MustCard(Two, Hearts)))
	})

	t.Run("equal iff same suit and rank", func(t *testing.T) {
		assert.Equal(t, 0, MustCard(Seven, Clubs).Compare(MustCard(Seven, Clubs)))
		assert.Equal(t, 0, MustCard(Jack, Clubs).Compare(MustCard(King, Clubs)))
		assert.NotEqual(t, 0, MustCard(Seven, Clubs).Compare(MustCard(Seven, Spades)))
	})

	t.Run("total order over the whole deck", func(t *testing.T) {
		deck := NewDeck()
		require.NoError(t, deck.Fill())
		all := deck.Cards()

		for _, a := range all {
			for _, b := range all {
				ab, ba := a.Compare(b), b.Compare(a)
				require.Equal(t, -ab, ba, "antisymmetry %s %s", a, b)
				sameKey := a.Suit() == b.Suit() && a.Rank() == b.Rank()
				require.Equal(t, sameKey, ab == 0, "consistency %s %s", a, b)

				for _, c := range all {
					if ab > 0 && b.Compare(c) > 0 {
						require.Equal(t, 1, a.Compare(c), "transitivity %s %s %s", a, b, c)
					}
				}
			}
		}
	})
}

func TestCardFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		// Valid cards with different suit notations
		{"Ace of Spades Unicode", "A♠", MustCard(Ace, Spades), false},
		{"Ace of Spades lowercase", "As", MustCard(Ace, Spades), false},
		{"Ace of Spades uppercase", "AS", MustCard(Ace, Spades), false},
		{"Ten of Hearts Unicode", "10♥", MustCard(Ten, Hearts), false},
		{"Ten of Hearts lowercase", "10h", MustCard(Ten, Hearts), false},
		{"Queen of Diamonds Unicode", "Q♦", MustCard(Queen, Diamonds), false},
		{"Queen of Diamonds uppercase", "QD", MustCard(Queen, Diamonds), false},
		{"Two of Clubs Unicode", "2♣", MustCard(Two, Clubs), false},
		{"Two of Clubs lowercase", "2c", MustCard(Two, Clubs), false},
		{"King of Hearts", "Kh", MustCard(King, Hearts), false},
		{"Jack of Hearts", "Jh", MustCard(Jack, Hearts), false},
		{"Input with mixed case", "aS", MustCard(Ace, Spades), false},
		{"Lowercase face card", "kd", MustCard(King, Diamonds), false},

		// Invalid inputs
		{"Input with trailing space", "AS ", Card{}, true},
		{"Input with leading space", " AS", Card{}, true},
		{"Too short input", "A", Card{}, true},
		{"Empty input", "", Card{}, true},
		{"Invalid suit", "10X", Card{}, true},
		{"Invalid value", "11S", Card{}, true},
		{"Invalid format", "XX", Card{}, true},
		{"Reverse order", "♠A", Card{}, true},
		{"Special characters", "A$", Card{}, true},
		{"Number too large", "100S", Card{}, true},
		{"Suit only", "♠", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CardFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument, "CardFromString(%q) should return an error", tt.input)
			} else {
				require.NoError(t, err, "CardFromString(%q) should not return an error", tt.input)
				require.Equal(t, tt.want, got, "CardFromString(%q) should return the correct card", tt.input)
			}
		})
	}
}

func TestCard_JSON(t *testing.T) {
	type wrapper struct {
		Card Card `json:"card"`
	}

	data, err := json.Marshal(wrapper{Card: MustCard(Ten, Spades)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"card":"10♠"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MustCard(Ten, Spades), decoded.Card)

	require.NoError(t, json.Unmarshal([]byte(`{"card":"qh"}`), &decoded))
	assert.Equal(t, MustCard(Queen, Hearts), decoded.Card)

	err = json.Unmarshal([]byte(`{"card":"11x"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = json.Unmarshal([]byte(`{"card":12}`), &decoded)
	assert.Error(t, err)
}
