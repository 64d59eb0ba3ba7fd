package game

import "github.com/lox/blackjacksim/internal/deck"

// HandView is the read-only state an actor sees when asked for a decision.
// Eligibility flags are computed by the round engine; an actor returning an
// action whose flag is false gets rejected with ErrIllegalAction.
type HandView struct {
	Cards        []deck.Card
	Total        int
	Soft         bool
	DealerUp     deck.Card
	BetMultiple  float64
	FromSplit    bool
	CanDouble    bool
	CanSplit     bool
	CanSurrender bool
}

// Actor supplies an action for each decision point in a round. The basic
// strategy advisor and the interactive trainer both implement this; actors
// receive immutable views and must not hold engine state.
type Actor interface {
	Act(view HandView) (Action, error)
}

// ActorFunc adapts a plain function to the Actor interface
type ActorFunc func(view HandView) (Action, error)

// Act implements Actor
func (f ActorFunc) Act(view HandView) (Action, error) {
	return f(view)
}
