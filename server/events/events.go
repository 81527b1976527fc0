package events

import (
	"encoding/json"
	"log"

	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/events"
	"github.com/sanity-io/litter"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Sender delivers encoded messages to whoever is playing a game
type Sender interface {
	SendToGame(gameID string, message []byte) bool
}

// Encode wraps payload in an envelope and marshals the result
func Encode(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(EventEnvelope{Name: name, Payload: data})
}

// Redact hides the card of a face-down deal. Every other event is returned
// unchanged.
func Redact(event events.Event) events.Event {
	switch e := event.(type) {
	case blackjack.CardDealt:
		if e.FaceDown {
			e.Card = cards.Card{}
		}
		return e
	case *blackjack.CardDealt:
		if e.FaceDown {
			masked := *e
			masked.Card = cards.Card{}
			return masked
		}
	}
	return event
}

// Envelope builds the client-facing envelope for a recorded event
func Envelope(event events.Event) (EventEnvelope, error) {
	payload, err := json.Marshal(Redact(event))
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{Name: event.EventName(), Payload: payload}, nil
}

// Dispatcher handles routing game events to clients
type Dispatcher struct {
	sender Sender
	debug  bool
}

// NewDispatcher creates a new event dispatcher. With debug set every event
// is dumped to the log.
func NewDispatcher(sender Sender, debug bool) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		debug:  debug,
	}
}

// HandleEvent sends a game event to the client playing that game
func (d *Dispatcher) HandleEvent(event events.Event) {
	envelope, err := Envelope(event)
	if err != nil {
		log.Println("Failed to marshal event payload:", err)
		return
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		log.Println("Failed to marshal event envelope:", err)
		return
	}

	if d.debug {
		log.Printf("Dispatching event %s\n%s", event.EventName(), litter.Sdump(event))
	}

	gameID := events.GetGameID(event)
	if gameID == "" {
		log.Printf("Event %s has no game, not dispatched", event.EventName())
		return
	}
	d.sender.SendToGame(gameID, envelopeData)
}
