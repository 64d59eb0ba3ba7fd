package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/strategy"
)

// AdviseCmd prints the basic strategy play for a single decision point
type AdviseCmd struct {
	Hand      string `kong:"arg,required,help='Player cards, e.g. 8s8h or AcKdTs'"`
	Dealer    string `kong:"arg,required,help='Dealer upcard, e.g. 6d'"`
	FromSplit bool   `kong:"help='Hand came from a split'"`
	S17       bool   `kong:"help='Dealer stands on soft 17 (default: hits)'"`
	Rules     string `kong:"type='path',help='Path to an HCL rules file'"`
}

var (
	adviseHandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	adviseActionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))
)

func (c *AdviseCmd) Run() error {
	r, err := loadRules(c.Rules, c.S17)
	if err != nil {
		return err
	}

	cards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parsing hand: %w", err)
	}
	if len(cards) < 2 {
		return fmt.Errorf("hand needs at least two cards, got %d", len(cards))
	}
	up, err := deck.ParseCards(c.Dealer)
	if err != nil {
		return fmt.Errorf("parsing dealer upcard: %w", err)
	}
	if len(up) != 1 {
		return fmt.Errorf("dealer upcard must be a single card, got %d", len(up))
	}

	firstDecision := len(cards) == 2
	canDouble := firstDecision && (!c.FromSplit || r.DAS)
	canSplit := firstDecision && game.IsPair(cards)
	canSurrender := r.LateSurrender && firstDecision && !c.FromSplit

	action := strategy.Advise(cards, up[0], canDouble, canSplit, canSurrender)

	total, soft := game.HandValue(cards)
	kind := "hard"
	if soft {
		kind = "soft"
	}
	fmt.Printf("%s (%s %d) vs %s: %s\n",
		adviseHandStyle.Render(c.Hand), kind, total, adviseHandStyle.Render(c.Dealer),
		adviseActionStyle.Render(action.String()))
	return nil
}
