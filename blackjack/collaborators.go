package blackjack

import "github.com/lazharichir/cardlab/cards"

// CardSource hands out cards. *cards.Deck satisfies it.
type CardSource interface {
	Draw() (cards.Card, error)
}

// resettable sources can be refilled between rounds
type resettable interface {
	Size() int
	Reset() error
}

// Input asks the player for decisions.
//
// Implementations return an error wrapping ErrParse for malformed answers,
// which the game re-requests, and ErrDeclined when the player leaves.
type Input interface {
	RequestBet(funds int) (int, error)
	RequestMove(total int) (Move, error)
}

// Display is notified of everything the player should see. It is purely
// observational: implementations report their own output failures.
type Display interface {
	ShowPlayerHand(hand cards.Stack)
	ShowDealerHand(hand cards.HeldStack)
	ShowDrawnCard(card cards.Card, owner Owner)
	ShowBust(lastGoodTotal, bustedTotal int)
	ShowResult(result Result)
	ShowError(err error)
}

// Result summarises a resolved round
type Result struct {
	RoundID      string  `json:"roundId"`
	Bet          int     `json:"bet"`
	Outcome      Outcome `json:"outcome"`
	PlayerTotal  int     `json:"playerTotal"`
	DealerTotal  int     `json:"dealerTotal"`
	PlayerBusted bool    `json:"playerBusted"`
	DealerBusted bool    `json:"dealerBusted"`
	Payout       int     `json:"payout"`
	Funds        int     `json:"funds"`
}
