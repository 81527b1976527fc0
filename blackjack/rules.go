package blackjack

// Rules holds the house rules for a blackjack game
type Rules struct {
	StartingFunds    int
	DealerStandsAt   int // dealer stops drawing once the total reaches this value
	BustLimit        int // totals above this value bust
	MaxInputAttempts int // answers allowed per prompt before giving up
	ReshuffleBelow   int // reshuffle before a round when fewer cards remain
}

// DefaultRules returns the standard house rules
func DefaultRules() Rules {
	return Rules{
		StartingFunds:    100,
		DealerStandsAt:   17,
		BustLimit:        21,
		MaxInputAttempts: 5,
		// a round never uses more than 18 cards: the 19 lowest sum to 55,
		// more than any finished round can hold
		ReshuffleBelow:   18,
	}
}
