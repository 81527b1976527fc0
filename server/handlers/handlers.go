package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazharichir/cardlab/server/commands"
	"github.com/lazharichir/cardlab/server/connection"
	"github.com/lazharichir/cardlab/server/session"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrNoSession      = errors.New("client has no game in progress")
)

// Sessions finds the session a client is playing
type Sessions interface {
	Session(clientID string) (*session.Session, bool)
}

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	sessions Sessions
}

// NewCommandRouter creates a new command router
func NewCommandRouter(sessions Sessions) *CommandRouter {
	return &CommandRouter{
		sessions: sessions,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	cmd, err := Decode(message)
	if err != nil {
		return err
	}

	sess, ok := r.sessions.Session(client.ID)
	if !ok {
		return ErrNoSession
	}

	switch cmd := cmd.(type) {
	case commands.PlaceBet:
		return r.handlePlaceBet(sess, cmd)
	case commands.MakeMove:
		return r.handleMakeMove(sess, cmd)
	case commands.Quit:
		return r.handleQuit(sess)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name())
	}
}

// Decode parses a client message into the command its name selects
func Decode(message []byte) (commands.Command, error) {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	switch baseCmd.Name {
	case commands.PlaceBet{}.Name():
		var cmd commands.PlaceBet
		if err := json.Unmarshal(message, &cmd); err != nil {
			return nil, fmt.Errorf("invalid %s command: %w", baseCmd.Name, err)
		}
		return cmd, nil

	case commands.MakeMove{}.Name():
		var cmd commands.MakeMove
		if err := json.Unmarshal(message, &cmd); err != nil {
			return nil, fmt.Errorf("invalid %s command: %w", baseCmd.Name, err)
		}
		return cmd, nil

	case commands.Quit{}.Name():
		return commands.Quit{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, baseCmd.Name)
	}
}

func (r *CommandRouter) handlePlaceBet(sess *session.Session, cmd commands.PlaceBet) error {
	return sess.Deliver(session.Answer{Kind: session.AnswerBet, Amount: cmd.Amount})
}

func (r *CommandRouter) handleMakeMove(sess *session.Session, cmd commands.MakeMove) error {
	return sess.Deliver(session.Answer{Kind: session.AnswerMove, Move: cmd.Move})
}

func (r *CommandRouter) handleQuit(sess *session.Session) error {
	return sess.Deliver(session.Answer{Kind: session.AnswerQuit})
}
