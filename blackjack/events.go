package blackjack

import (
	"time"

	"github.com/lazharichir/cardlab/cards"
)

// GameStarted is emitted once when a player sits down.
type GameStarted struct {
	GameID string
	Funds  int
	At     time.Time
}

func (e GameStarted) EventName() string { return "game-started" }

// DeckReshuffled is emitted when the card source is refilled before a round.
type DeckReshuffled struct {
	GameID    string
	Remaining int // cards left before the reshuffle
	At        time.Time
}

func (e DeckReshuffled) EventName() string { return "deck-reshuffled" }

// BetPlaced is emitted when a valid bet opens a round.
type BetPlaced struct {
	GameID  string
	RoundID string
	Amount  int
	Funds   int
	At      time.Time
}

func (e BetPlaced) EventName() string { return "bet-placed" }

// CardDealt is emitted for every card that leaves the source.
type CardDealt struct {
	GameID   string
	RoundID  string
	Owner    Owner
	Card     cards.Card
	FaceDown bool
	At       time.Time
}

func (e CardDealt) EventName() string { return "card-dealt" }

// PlayerStood is emitted when the player ends their turn without busting.
type PlayerStood struct {
	GameID  string
	RoundID string
	Total   int
	At      time.Time
}

func (e PlayerStood) EventName() string { return "player-stood" }

// PlayerBusted is emitted when a hit takes the player over the limit.
type PlayerBusted struct {
	GameID        string
	RoundID       string
	LastGoodTotal int
	BustedTotal   int
	At            time.Time
}

func (e PlayerBusted) EventName() string { return "player-busted" }

// HoleCardRevealed is emitted when the dealer turns over the face-down card.
type HoleCardRevealed struct {
	GameID  string
	RoundID string
	Card    cards.Card
	At      time.Time
}

func (e HoleCardRevealed) EventName() string { return "hole-card-revealed" }

// DealerPlayed is emitted after the dealer's turn.
type DealerPlayed struct {
	GameID  string
	RoundID string
	Total   int
	Busted  bool
	At      time.Time
}

func (e DealerPlayed) EventName() string { return "dealer-played" }

// RoundResolved is emitted after funds have been adjusted.
type RoundResolved struct {
	GameID  string
	RoundID string
	Result  Result
	At      time.Time
}

func (e RoundResolved) EventName() string { return "round-resolved" }

// RoundAborted is emitted when a round cannot finish. The bet is returned.
type RoundAborted struct {
	GameID  string
	RoundID string
	Reason  string
	At      time.Time
}

func (e RoundAborted) EventName() string { return "round-aborted" }

// GameEnded is emitted once when the session finishes.
type GameEnded struct {
	GameID string
	Funds  int
	Rounds int
	Reason string
	At     time.Time
}

func (e GameEnded) EventName() string { return "game-ended" }
