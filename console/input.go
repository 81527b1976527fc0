package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lazharichir/cardlab/blackjack"
)

// Input reads the player's answers line by line. Typing quit, or closing
// the stream, declines.
type Input struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewInput prompts on out and reads answers from in
func NewInput(in io.Reader, out io.Writer) *Input {
	return &Input{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (i *Input) prompt(format string, args ...any) (string, error) {
	fmt.Fprintf(i.out, format, args...)

	if !i.scanner.Scan() {
		if err := i.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", blackjack.ErrDeclined
	}

	line := strings.TrimSpace(i.scanner.Text())
	switch strings.ToLower(line) {
	case "quit", "q", "exit":
		return "", blackjack.ErrDeclined
	}
	return line, nil
}

// RequestBet asks for a whole-number bet
func (i *Input) RequestBet(funds int) (int, error) {
	line, err := i.prompt("You have %d. Your bet (1-%d, or quit): ", funds, funds-1)
	if err != nil {
		return 0, err
	}
	return blackjack.ParseBet(line)
}

// RequestMove asks whether to hit or stand
func (i *Input) RequestMove(total int) (blackjack.Move, error) {
	line, err := i.prompt("Your total is %d. Hit or stand? [h/s]: ", total)
	if err != nil {
		return "", err
	}
	return blackjack.ParseMove(line)
}
