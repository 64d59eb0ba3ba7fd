package main

import (
	"time"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/tui"
)

// PlayCmd starts the interactive trainer
type PlayCmd struct {
	Bankroll   float64 `kong:"default='100',help='Starting bankroll'"`
	DealerBank float64 `kong:"default='1000',help='House bankroll'"`
	Bet        float64 `kong:"default='10',help='Default bet per round'"`
	Decks      int     `kong:"default='6',help='Number of decks in the shoe'"`
	Seed       *int64  `kong:"help='Deterministic shoe seed (default: time-based)'"`
	S17        bool    `kong:"help='Dealer stands on soft 17 (default: hits)'"`
	Rules      string  `kong:"type='path',help='Path to an HCL rules file'"`
	Debug      bool    `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	r, err := loadRules(c.Rules, c.S17)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	shoe := deck.NewShoe(randutil.New(seed), c.Decks)

	return tui.Run(c.Bankroll, c.DealerBank, c.Bet, r, shoe, logger)
}
