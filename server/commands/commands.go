package commands

// Command is a message a client sends to its game
type Command interface {
	Name() string
}

type PlaceBet struct {
	Amount int `json:"amount"`
}

func (p PlaceBet) Name() string { return "bet" }

type MakeMove struct {
	Move string `json:"move"`
}

func (m MakeMove) Name() string { return "move" }

type Quit struct{}

func (q Quit) Name() string { return "quit" }
