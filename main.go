package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lazharichir/cardlab/blackjack"
	"github.com/lazharichir/cardlab/cards"
	"github.com/lazharichir/cardlab/config"
	"github.com/lazharichir/cardlab/console"
	"github.com/lazharichir/cardlab/events"
	"github.com/lazharichir/cardlab/server"
	"github.com/lazharichir/cardlab/war"
	"github.com/sanity-io/litter"
)

const usage = `usage: cardlab [blackjack|war|serve]

  blackjack  play blackjack against the house on this terminal (default)
  war        watch two halves of a deck play War
  serve      play blackjack over WebSocket on CARDLAB_ADDR`

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	command := "blackjack"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "blackjack":
		err = runBlackjack(cfg)
	case "war":
		err = runWar(cfg)
	case "serve":
		err = runServer(cfg)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func newDeck() (*cards.Deck, error) {
	deck := cards.NewDeck()
	if err := deck.Reset(); err != nil {
		return nil, err
	}
	return deck, nil
}

func runBlackjack(cfg config.Config) error {
	deck, err := newDeck()
	if err != nil {
		return err
	}

	display := console.NewDisplay(os.Stdout)
	input := console.NewInput(os.Stdin, os.Stdout)
	store := events.NewInMemoryEventStore()

	game := blackjack.NewGame(cfg.BlackjackRules(), deck, input, display, store)
	if cfg.Debug {
		game.RegisterEventHandler(func(event events.Event) {
			log.Printf("event %s\n%s", event.EventName(), litter.Sdump(event))
		})
	}

	fmt.Println("Blackjack. Dealer stands on", cfg.DealerStandsAt)
	err = game.Play(context.Background())
	display.ShowGameOver(game.Funds(), game.Rounds())
	return err
}

func runWar(cfg config.Config) error {
	deck, err := newDeck()
	if err != nil {
		return err
	}

	one, two, err := war.Deal(deck)
	if err != nil {
		return err
	}

	display := console.NewDisplay(os.Stdout)
	display.ShowDeck("Player one", one.SortedView())
	display.ShowDeck("Player two", two.SortedView())

	game := war.NewGame(one, two)
	game.OnBattle(display.ShowBattle)

	result, err := game.Play(cfg.WarMaxBattles)
	if err != nil {
		return err
	}
	display.ShowWarResult(result)
	return nil
}

func runServer(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(cfg, events.NewInMemoryEventStore())
	if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
