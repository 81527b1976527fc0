package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/server/events"
)

// AnswerKind says which prompt a client message answers
type AnswerKind string

const (
	AnswerBet  AnswerKind = "bet"
	AnswerMove AnswerKind = "move"
	AnswerQuit AnswerKind = "quit"
)

// Answer is a decision sent by the remote player
type Answer struct {
	Kind   AnswerKind
	Amount int
	Move   string
}

// ErrBusy is returned when a client sends answers faster than the game asks
var ErrBusy = errors.New("session: too many pending answers")

// Sender delivers encoded messages to one client
type Sender interface {
	SendToClient(clientID string, message []byte) bool
}

// Session connects one remote player to one blackjack game. Input blocks
// until the client answers, Display pushes messages to the client.
type Session struct {
	ClientID string
	GameID   string

	Input   *Input
	Display *Display

	answers chan Answer
	cancel  context.CancelFunc
}

// New creates a session for clientID. The returned context is cancelled by
// Close and should be passed to the game.
func New(parent context.Context, clientID string, sender Sender) (*Session, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		ClientID: clientID,
		answers:  make(chan Answer, 8),
		cancel:   cancel,
	}

	out := &outbox{clientID: clientID, sender: sender}
	s.Input = &Input{ctx: ctx, answers: s.answers, out: out}
	s.Display = &Display{out: out}
	return s, ctx
}

// Deliver queues an answer for the game
func (s *Session) Deliver(a Answer) error {
	select {
	case s.answers <- a:
		return nil
	default:
		return ErrBusy
	}
}

// Close stops the game waiting on this session
func (s *Session) Close() {
	s.cancel()
}

// Send pushes a message that is not tied to a prompt, such as the final summary
func (s *Session) Send(name string, payload any) {
	s.Display.out.send(name, payload)
}

type outbox struct {
	clientID string
	sender   Sender
}

func (o *outbox) send(name string, payload any) {
	data, err := events.Encode(name, payload)
	if err != nil {
		log.Printf("session: failed to encode %s: %v", name, err)
		return
	}
	if !o.sender.SendToClient(o.clientID, data) {
		log.Printf("session: could not deliver %s to client %s", name, o.clientID)
	}
}

// BetRequest asks the client for a bet between 1 and Max
type BetRequest struct {
	Funds int `json:"funds"`
	Max   int `json:"max"`
}

// MoveRequest asks the client to hit or stand
type MoveRequest struct {
	Total int `json:"total"`
}

// Input implements blackjack.Input over client messages
type Input struct {
	ctx     context.Context
	answers <-chan Answer
	out     *outbox
}

func (in *Input) await() (Answer, error) {
	select {
	case a := <-in.answers:
		if a.Kind == AnswerQuit {
			return a, blackjack.ErrDeclined
		}
		return a, nil
	case <-in.ctx.Done():
		return Answer{}, in.ctx.Err()
	}
}

func (in *Input) RequestBet(funds int) (int, error) {
	in.out.send("bet-requested", BetRequest{Funds: funds, Max: funds - 1})

	a, err := in.await()
	if err != nil {
		return 0, err
	}
	if a.Kind != AnswerBet {
		return 0, fmt.Errorf("%w: expected a bet, got %s", blackjack.ErrParse, a.Kind)
	}
	return a.Amount, nil
}

func (in *Input) RequestMove(total int) (blackjack.Move, error) {
	in.out.send("move-requested", MoveRequest{Total: total})

	a, err := in.await()
	if err != nil {
		return "", err
	}
	if a.Kind != AnswerMove {
		return "", fmt.Errorf("%w: expected a move, got %s", blackjack.ErrParse, a.Kind)
	}
	return blackjack.ParseMove(a.Move)
}

type handPayload struct {
	Cards any `json:"cards"`
	Total int `json:"total"`
}

type drawPayload struct {
	Card  cards.Card      `json:"card"`
	Owner blackjack.Owner `json:"owner"`
}

type bustPayload struct {
	LastGoodTotal int `json:"lastGoodTotal"`
	BustedTotal   int `json:"bustedTotal"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Display implements blackjack.Display by pushing envelopes to the client
type Display struct {
	out *outbox
}

func (d *Display) ShowPlayerHand(hand cards.Stack) {
	d.out.send("player-hand", handPayload{Cards: hand, Total: hand.Total()})
}

// ShowDealerHand sends the dealer's cards with the hole card masked and the
// total of the visible cards only
func (d *Display) ShowDealerHand(hand cards.HeldStack) {
	d.out.send("dealer-hand", handPayload{Cards: hand, Total: hand.Visible().Total()})
}

func (d *Display) ShowDrawnCard(card cards.Card, owner blackjack.Owner) {
	d.out.send("card-drawn", drawPayload{Card: card, Owner: owner})
}

func (d *Display) ShowBust(lastGoodTotal, bustedTotal int) {
	d.out.send("bust", bustPayload{LastGoodTotal: lastGoodTotal, BustedTotal: bustedTotal})
}

func (d *Display) ShowResult(result blackjack.Result) {
	d.out.send("result", result)
}

func (d *Display) ShowError(err error) {
	d.out.send("error", errorPayload{Message: err.Error()})
}
