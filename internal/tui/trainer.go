// Package tui implements the interactive trainer. The round engine runs in
// its own goroutine and every decision point is bridged to the Bubble Tea
// model over a channel, so the engine code is identical to what the
// simulator drives.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/rules"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
)

type trainerState int

const (
	stateBetting trainerState = iota
	statePlaying
	stateDeciding
	stateRoundOver
	stateGameOver
)

const logTail = 8

// Model is the Bubble Tea model for the trainer
type Model struct {
	rules    rules.Rules
	source   deck.Source
	logger   *log.Logger
	trackers *statistics.Trackers

	bankroll   float64
	dealerBank float64
	bet        float64
	defaultBet float64
	committed  float64

	state    trainerState
	betInput textinput.Model
	events   chan tea.Msg
	pending  *decisionMsg

	gameLog    []string
	lastResult *game.Result
	hint       string
	flash      string
	err        error
	quitting   bool
}

// NewModel creates a trainer model. The source is typically a finite shoe so
// the player sees realistic card depletion.
func NewModel(bankroll, dealerBank, bet float64, r rules.Rules, source deck.Source, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("bet amount (enter for $%.2f)", bet)
	ti.Focus()
	ti.CharLimit = 12
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		rules:      r,
		source:     source,
		logger:     logger.WithPrefix("tui"),
		trackers:   statistics.New(),
		bankroll:   bankroll,
		dealerBank: dealerBank,
		bet:        bet,
		defaultBet: bet,
		betInput:   ti,
		events:     make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent relays one engine message into the program. It is re-armed
// after every decision so the engine can never block unheard.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// playRound runs one full round against the shoe. Bubble Tea runs the
// command in its own goroutine, so blocking on player decisions is fine.
func (m *Model) playRound() tea.Cmd {
	source, r, events := m.source, m.rules, m.events
	return func() tea.Msg {
		result, err := game.PlayRound(source, r, promptActor{events: events})
		return roundMsg{result: result, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case decisionMsg:
		m.pending = &msg
		m.state = stateDeciding
		m.hint = ""
		m.flash = ""
		return m, m.waitForEvent()
	case roundMsg:
		return m.handleRoundDone(msg)
	}

	if m.state == stateBetting {
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.quit()
	}

	switch m.state {
	case stateBetting:
		switch msg.String() {
		case "enter":
			return m.postBet()
		case "q":
			if m.betInput.Value() == "" {
				return m.quit()
			}
		}
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd

	case stateDeciding:
		return m.handleDecisionKey(msg.String())

	case stateRoundOver:
		switch msg.String() {
		case "enter":
			if m.bankroll < 0.01 {
				m.state = stateGameOver
				return m, nil
			}
			m.state = stateBetting
			m.betInput.SetValue("")
			m.betInput.Focus()
			return m, textinput.Blink
		case "q":
			return m.quit()
		}

	case stateGameOver:
		return m.quit()
	}
	return m, nil
}

func (m *Model) postBet() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.betInput.Value())
	bet := m.defaultBet
	if raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			m.flash = fmt.Sprintf("invalid bet %q", raw)
			m.betInput.SetValue("")
			return m, nil
		}
		bet = parsed
	}
	if bet > m.bankroll {
		m.flash = fmt.Sprintf("insufficient funds to bet $%.2f, you have $%.2f", bet, m.bankroll)
		m.betInput.SetValue("")
		return m, nil
	}

	m.bet = bet
	m.committed = bet
	m.flash = ""
	m.lastResult = nil
	m.state = statePlaying
	m.logger.Debug("round started", "bet", bet, "bankroll", m.bankroll)
	return m, m.playRound()
}

func (m *Model) handleDecisionKey(key string) (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, nil
	}
	view := m.pending.view

	switch key {
	case "h":
		return m.answer(game.Hit)
	case "s":
		return m.answer(game.Stand)
	case "d":
		if !view.CanDouble {
			m.flash = "double not available"
			return m, nil
		}
		if extra := m.bet * view.BetMultiple; m.committed+extra > m.bankroll {
			m.flash = fmt.Sprintf("insufficient funds to double ($%.2f more)", extra)
			return m, nil
		}
		m.committed += m.bet * view.BetMultiple
		return m.answer(game.Double)
	case "p":
		if !view.CanSplit {
			m.flash = "split not available"
			return m, nil
		}
		if extra := m.bet * view.BetMultiple; m.committed+extra > m.bankroll {
			m.flash = fmt.Sprintf("insufficient funds to split ($%.2f more)", extra)
			return m, nil
		}
		m.committed += m.bet * view.BetMultiple
		return m.answer(game.Split)
	case "r":
		if !view.CanSurrender {
			m.flash = "surrender not available"
			return m, nil
		}
		return m.answer(game.Surrender)
	case "?":
		advice := strategy.Advise(view.Cards, view.DealerUp, view.CanDouble, view.CanSplit, view.CanSurrender)
		m.hint = fmt.Sprintf("book says: %s", advice)
		return m, nil
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m *Model) answer(action game.Action) (tea.Model, tea.Cmd) {
	m.logger.Debug("player action", "action", action)
	m.pending.reply <- action
	m.pending = nil
	m.hint = ""
	m.flash = ""
	m.state = statePlaying
	return m, nil
}

func (m *Model) handleRoundDone(msg roundMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, errQuit) {
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		if errors.Is(msg.err, deck.ErrShoeExhausted) {
			m.addLog("Shoe exhausted, reshuffling")
			if shoe, ok := m.source.(*deck.Shoe); ok {
				shoe.Reset()
			}
			m.state = stateBetting
			m.betInput.SetValue("")
			return m, textinput.Blink
		}
		m.err = msg.err
		m.state = stateGameOver
		return m, nil
	}

	result := msg.result
	m.trackers.Record(result)
	m.lastResult = result

	delta := m.bet * result.TotalPayoff()
	m.bankroll += delta
	m.dealerBank -= delta

	for i, outcome := range result.Outcomes {
		label := fmt.Sprintf("Hand %d", i+1)
		if len(result.Outcomes) == 1 {
			label = "Hand"
		}
		m.addLog(fmt.Sprintf("%s: %s (%+.2f units)", label, outcome.Result, outcome.Payoff))
	}
	if result.DealerPlayed {
		if result.DealerBust {
			m.addLog(fmt.Sprintf("Dealer busts with %s", renderCards(result.DealerCards)))
		} else {
			m.addLog(fmt.Sprintf("Dealer stands on %d: %s", result.DealerTotal, renderCards(result.DealerCards)))
		}
	}

	m.logger.Debug("round finished",
		"payoff", result.TotalPayoff(),
		"bankroll", m.bankroll)

	m.state = stateRoundOver
	if m.bankroll < 0.01 {
		m.addLog("Bankroll exhausted")
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.pending != nil {
		close(m.pending.reply)
		m.pending = nil
	}
	m.quitting = true
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > 64 {
		m.gameLog = m.gameLog[len(m.gameLog)-64:]
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf(" Blackjack Trainer (%s) ", m.rules.Label())))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		HandInfoStyle.Render(fmt.Sprintf("You: $%.2f", m.bankroll)),
		InfoStyle.Render(fmt.Sprintf("House: $%.2f", m.dealerBank)),
		InfoStyle.Render(fmt.Sprintf("Session: %+.1f units over %d rounds", m.trackers.Units, m.trackers.Rounds)))

	switch m.state {
	case stateBetting:
		b.WriteString("Place your bet\n")
		b.WriteString(m.betInput.View() + "\n")
		b.WriteString(InfoStyle.Render("enter to deal, q to quit") + "\n")

	case statePlaying:
		b.WriteString(InfoStyle.Render("Dealing...") + "\n")

	case stateDeciding:
		b.WriteString(m.renderDecision())

	case stateRoundOver:
		b.WriteString(m.renderRoundOver())

	case stateGameOver:
		if m.err != nil {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
		} else {
			b.WriteString(ErrorStyle.Render("You're bust. Thanks for playing.") + "\n")
		}
		b.WriteString(InfoStyle.Render("press any key to exit") + "\n")
	}

	if m.flash != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.flash) + "\n")
	}
	if tail := m.logTail(); len(tail) > 0 {
		b.WriteString("\n")
		for _, entry := range tail {
			b.WriteString(InfoStyle.Render(entry) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderDecision() string {
	view := m.pending.view

	var b strings.Builder
	soft := ""
	if view.Soft {
		soft = "soft "
	}
	fmt.Fprintf(&b, "Your hand: %s  (%s%d)\n", renderCards(view.Cards), soft, view.Total)
	fmt.Fprintf(&b, "Dealer shows: %s\n", renderCard(view.DealerUp))
	if view.BetMultiple != 1 {
		fmt.Fprintf(&b, "%s\n", InfoStyle.Render(fmt.Sprintf("bet multiple x%.0f", view.BetMultiple)))
	}
	b.WriteString("\n" + ActionsStyle.Render(availableActions(view)) + "\n")
	if m.hint != "" {
		b.WriteString(SuccessStyle.Render(m.hint) + "\n")
	}
	return b.String()
}

func (m *Model) renderRoundOver() string {
	var b strings.Builder
	if m.lastResult != nil {
		payoff := m.lastResult.TotalPayoff()
		switch {
		case payoff > 0:
			b.WriteString(winBanner(fmt.Sprintf("You win $%.2f!", m.bet*payoff)) + "\n")
		case payoff < 0:
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("You lose $%.2f", -m.bet*payoff)) + "\n")
		default:
			b.WriteString(InfoStyle.Render("Push") + "\n")
		}
	}
	b.WriteString("\n" + InfoStyle.Render("enter to deal again, q to quit") + "\n")
	return b.String()
}

func (m *Model) logTail() []string {
	if len(m.gameLog) <= logTail {
		return m.gameLog
	}
	return m.gameLog[len(m.gameLog)-logTail:]
}

func availableActions(view game.HandView) string {
	parts := []string{"[h]it", "[s]tand"}
	if view.CanDouble {
		parts = append(parts, "[d]ouble")
	}
	if view.CanSplit {
		parts = append(parts, "s[p]lit")
	}
	if view.CanSurrender {
		parts = append(parts, "su[r]render")
	}
	parts = append(parts, "[?] hint")
	return strings.Join(parts, "  ")
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = renderCard(card)
	}
	return strings.Join(parts, " ")
}

func renderCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

var output = termenv.NewOutput(os.Stdout)

func winBanner(s string) string {
	profile := output.ColorProfile()
	return output.String(s).Foreground(profile.Color("#FFD700")).Bold().String()
}

// Run starts the trainer and blocks until the player quits.
func Run(bankroll, dealerBank, bet float64, r rules.Rules, source deck.Source, logger *log.Logger) error {
	model := NewModel(bankroll, dealerBank, bet, r, source, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("trainer: %w", err)
	}
	return nil
}
