package cards

import "strings"

// Stack represents an ordered hand or pile of cards
type Stack []Card

// NewStack creates a new stack holding the given cards
func NewStack(cards ...Card) Stack {
	return Stack(cards)
}

// AddCard adds a card to the end of the stack
func (s *Stack) AddCard(card Card) {
	*s = append(*s, card)
}

// AddCards adds several cards to the end of the stack
func (s *Stack) AddCards(cards ...Card) {
	*s = append(*s, cards...)
}

// Total sums the ranks of every card in the stack
func (s Stack) Total() int {
	total := 0
	for _, c := range s {
		total += c.Rank()
	}
	return total
}

// Contains reports whether the stack holds the card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

func (s Stack) String() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}
