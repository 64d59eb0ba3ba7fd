package strategy

import "github.com/lox/blackjacksim/internal/game"

// Actor plays every decision straight from the basic strategy chart. It is
// the actor the simulator uses, and the recommendation source the trainer
// consults read-only.
type Actor struct{}

// NewActor creates a basic strategy actor
func NewActor() Actor {
	return Actor{}
}

// Act implements game.Actor
func (Actor) Act(view game.HandView) (game.Action, error) {
	return Advise(view.Cards, view.DealerUp, view.CanDouble, view.CanSplit, view.CanSurrender), nil
}
