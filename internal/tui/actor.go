package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjacksim/internal/game"
)

// errQuit signals that the player closed the trainer mid-round. The round
// engine surfaces it as the round error and the model translates it into a
// clean shutdown.
var errQuit = errors.New("player quit")

// decisionMsg asks the model to collect an action for one hand. The engine
// goroutine blocks on reply until the player presses a key; closing reply
// aborts the round.
type decisionMsg struct {
	view  game.HandView
	reply chan game.Action
}

// roundMsg delivers the finished round back to the model.
type roundMsg struct {
	result *game.Result
	err    error
}

// promptActor implements game.Actor by forwarding every decision point to
// the running Bubble Tea program and blocking until the player answers.
type promptActor struct {
	events chan<- tea.Msg
}

func (a promptActor) Act(view game.HandView) (game.Action, error) {
	reply := make(chan game.Action)
	a.events <- decisionMsg{view: view, reply: reply}
	action, ok := <-reply
	if !ok {
		return 0, errQuit
	}
	return action, nil
}
