package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"
)

// Face represents the printed label of a card
type Face string

const (
	Ace   Face = "A"
	Two   Face = "2"
	Three Face = "3"
	Four  Face = "4"
	Five  Face = "5"
	Six   Face = "6"
	Seven Face = "7"
	Eight Face = "8"
	Nine  Face = "9"
	Ten   Face = "10"
	Jack  Face = "J"
	Queen Face = "Q"
	King  Face = "K"
)

// suitPrecedence lists suits from highest to lowest.
var suitPrecedence = []Suit{Spades, Hearts, Clubs, Diamonds}

var faceOrder = []Face{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// faceRanks maps every face to its numeric rank. Face cards count as 10.
var faceRanks = map[Face]int{
	Ace: 1, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
	Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
}

// Suits returns the four suits, highest precedence first
func Suits() []Suit {
	return append([]Suit(nil), suitPrecedence...)
}

// Faces returns the thirteen faces in deck order (A, 2..10, J, Q, K)
func Faces() []Face {
	return append([]Face(nil), faceOrder...)
}

// RankOf returns the rank of a face and whether the face is known
func RankOf(face Face) (int, bool) {
	rank, ok := faceRanks[face]
	return rank, ok
}

func (s Suit) precedence() int {
	for i, suit := range suitPrecedence {
		if suit == s {
			return len(suitPrecedence) - i
		}
	}
	return 0
}

// Valid reports whether the suit is one of the four standard suits
func (s Suit) Valid() bool {
	return s.precedence() > 0
}

// Card represents a playing card. Use NewCard to build one; the zero value is not a valid card.
type Card struct {
	rank int
	face Face
	suit Suit
}

// NewCard creates a card, rejecting any rank, face or suit outside the standard deck
func NewCard(rank int, face Face, suit Suit) (Card, error) {
	if rank < 1 || rank > 10 {
		return Card{}, fmt.Errorf("%w: rank %d out of range", ErrInvalidArgument, rank)
	}

	expected, ok := faceRanks[face]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown face %q", ErrInvalidArgument, string(face))
	}
	if expected != rank {
		return Card{}, fmt.Errorf("%w: face %s has rank %d, got %d", ErrInvalidArgument, face, expected, rank)
	}

	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: unknown suit %q", ErrInvalidArgument, string(suit))
	}

	return Card{rank: rank, face: face, suit: suit}, nil
}

// MustCard is like NewCard but panics on invalid input. Intended for literals in tests and tables.
func MustCard(face Face, suit Suit) Card {
	card, err := NewCard(faceRanks[face], face, suit)
	if err != nil {
		panic(err)
	}
	return card
}

// Rank returns the numeric value of the card (1-10)
func (c Card) Rank() int { return c.rank }

// Face returns the printed label of the card
func (c Card) Face() Face { return c.face }

// Suit returns the suit of the card
func (c Card) Suit() Suit { return c.suit }

// Name returns the face followed by the suit, e.g. "A♦"
func (c Card) Name() string {
	return string(c.face) + string(c.suit)
}

// String returns the string representation of a card
func (c Card) String() string {
	return c.Name()
}

// IsZero reports whether c is the zero Card
func (c Card) IsZero() bool {
	return c == Card{}
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c == other
}

// Compare orders cards by suit precedence (♠ > ♥ > ♣ > ♦) and then by rank.
// It returns 1 if c ranks higher than other, -1 if lower and 0 when both
// share suit and rank.
func (c Card) Compare(other Card) int {
	if p, q := c.suit.precedence(), other.suit.precedence(); p != q {
		if p > q {
			return 1
		}
		return -1
	}

	switch {
	case c.rank > other.rank:
		return 1
	case c.rank < other.rank:
		return -1
	}
	return 0
}

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> ten of spades
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: invalid card shorthand: %s", ErrInvalidArgument, s)
	}

	var suit Suit
	var faceText string
	switch {
	case strings.HasSuffix(s, string(Spades)):
		suit, faceText = Spades, strings.TrimSuffix(s, string(Spades))
	case strings.HasSuffix(s, string(Hearts)):
		suit, faceText = Hearts, strings.TrimSuffix(s, string(Hearts))
	case strings.HasSuffix(s, string(Clubs)):
		suit, faceText = Clubs, strings.TrimSuffix(s, string(Clubs))
	case strings.HasSuffix(s, string(Diamonds)):
		suit, faceText = Diamonds, strings.TrimSuffix(s, string(Diamonds))
	default:
		faceText = s[:len(s)-1]
		switch s[len(s)-1:] {
		case "s", "S":
			suit = Spades
		case "h", "H":
			suit = Hearts
		case "c", "C":
			suit = Clubs
		case "d", "D":
			suit = Diamonds
		default:
			return Card{}, fmt.Errorf("%w: invalid card suit: %s", ErrInvalidArgument, s[len(s)-1:])
		}
	}

	face := Face(strings.ToUpper(faceText))
	rank, ok := faceRanks[face]
	if !ok {
		return Card{}, fmt.Errorf("%w: invalid card face: %s", ErrInvalidArgument, faceText)
	}

	return NewCard(rank, face, suit)
}

// MarshalJSON encodes the card as its name, e.g. "10♠"
func (c Card) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(c.Name())), nil
}

// UnmarshalJSON decodes a card written by MarshalJSON or any CardFromString shorthand
func (c *Card) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: card must be a JSON string", ErrInvalidArgument)
	}
	if s == "" {
		*c = Card{}
		return nil
	}
	parsed, err := CardFromString(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
