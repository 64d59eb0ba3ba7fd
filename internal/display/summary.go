// Package display renders simulation summaries and distributions for the
// terminal. It consumes the aggregates as plain data and has no dependency
// back into the round engine.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

const barWidth = 40

// Summary renders the full results report: headline numbers, the outcome
// distribution, and the player/dealer final total distributions.
func Summary(summary statistics.Summary, trackers *statistics.Trackers) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf(" Results (%s) ", summary.Rule)))
	fmt.Fprintf(&b, "%s %d (%d hands after splits)\n", labelStyle.Render("Rounds:"), summary.Rounds, trackers.Hands)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Seed:"), summary.Seed)
	fmt.Fprintf(&b, "%s win %.2f%%  loss %.2f%%  push %.2f%%\n",
		labelStyle.Render("Rates:"),
		summary.WinRate*100, summary.LossRate*100, summary.PushRate*100)
	fmt.Fprintf(&b, "%s %+.3f%% per initial bet (%+.1f units total)\n",
		labelStyle.Render("EV:"),
		summary.EVPerRound*100, summary.Units)

	b.WriteString("\n" + headerStyle.Render(" Outcomes ") + "\n\n")
	b.WriteString(outcomeDistribution(trackers))

	b.WriteString("\n" + headerStyle.Render(" Player final totals ") + "\n\n")
	b.WriteString(playerTotals(trackers))

	b.WriteString("\n" + headerStyle.Render(" Dealer final totals ") + "\n\n")
	b.WriteString(dealerTotals(trackers))

	return b.String()
}

func outcomeDistribution(trackers *statistics.Trackers) string {
	kinds := []game.ResultKind{
		game.ResultWin,
		game.ResultLoss,
		game.ResultPush,
		game.ResultSurrender,
		game.ResultBlackjackWin,
		game.ResultBlackjackPush,
		game.ResultDealerBlackjack,
		game.ResultDealerBustWin,
	}

	var b strings.Builder
	for _, kind := range kinds {
		count := trackers.Count(kind)
		share := ratio(count, trackers.Hands)
		fmt.Fprintf(&b, "%-18s %8d  %s %s\n",
			kind, count, bar(share), mutedStyle.Render(fmt.Sprintf("%5.2f%%", share*100)))
	}
	return b.String()
}

func playerTotals(trackers *statistics.Trackers) string {
	resolved := trackers.PlayerBusts
	for _, n := range trackers.PlayerTotals {
		resolved += n
	}

	var b strings.Builder
	for total := 4; total <= 21; total++ {
		writeBin(&b, fmt.Sprintf("%d", total), trackers.PlayerTotals[total], resolved)
	}
	writeBin(&b, "bust", trackers.PlayerBusts, resolved)
	return b.String()
}

func dealerTotals(trackers *statistics.Trackers) string {
	resolved := trackers.DealerBusts
	for _, n := range trackers.DealerTotals {
		resolved += n
	}

	var b strings.Builder
	for total := 17; total <= 21; total++ {
		writeBin(&b, fmt.Sprintf("%d", total), trackers.DealerTotals[total], resolved)
	}
	writeBin(&b, "bust", trackers.DealerBusts, resolved)
	return b.String()
}

func writeBin(b *strings.Builder, label string, count, total int) {
	share := ratio(count, total)
	fmt.Fprintf(b, "%-5s %8d  %s %s\n",
		label, count, bar(share), mutedStyle.Render(fmt.Sprintf("%5.2f%%", share*100)))
}

func bar(share float64) string {
	n := int(share*barWidth + 0.5)
	if n > barWidth {
		n = barWidth
	}
	return barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
