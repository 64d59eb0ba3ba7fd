// Package statistics aggregates round outcomes across a simulation run.
// A Trackers instance belongs to exactly one run (or one worker of a run);
// parallel workers each own an instance and merge them afterwards.
package statistics

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/game"
)

const resultKinds = int(game.ResultDealerBustWin) + 1

// Trackers is the mutable aggregate state for one simulation run: one
// counter per result kind, misc event counters, and distributions of final
// totals. All fields are plain counters so Merge is summation and two
// runs with identical inputs compare equal with ==.
type Trackers struct {
	Rounds int
	Hands  int // resolved hands; exceeds Rounds when splits occur

	Results [resultKinds]int

	// Rollups: every resolved hand lands in exactly one of these.
	Wins   int
	Losses int
	Pushes int

	PlayerBusts int
	DealerBusts int
	Doubles     int
	Splits      int

	// PlayerTotals counts non-busted player hands by final total (4..21).
	PlayerTotals [22]int

	// DealerTotals counts dealer stands by final total (17..21); busts are
	// in DealerBusts.
	DealerTotals [22]int

	// Units is the sum of all payoffs in base bet units.
	Units float64
}

// New creates an empty Trackers
func New() *Trackers {
	return &Trackers{}
}

// Record folds one resolved round into the trackers.
func (t *Trackers) Record(result *game.Result) {
	t.Rounds++
	t.Doubles += result.Doubles
	t.Splits += result.Splits
	t.PlayerBusts += result.PlayerBusts

	for _, total := range result.PlayerTotals {
		if total >= 4 && total <= 21 {
			t.PlayerTotals[total]++
		}
	}
	if result.DealerPlayed {
		if result.DealerBust {
			t.DealerBusts++
		} else if result.DealerTotal >= 17 && result.DealerTotal <= 21 {
			t.DealerTotals[result.DealerTotal]++
		}
	}

	for _, out := range result.Outcomes {
		t.Hands++
		t.Results[out.Result]++
		t.Units += out.Payoff
		switch {
		case out.Result.IsWin():
			t.Wins++
		case out.Result.IsLoss():
			t.Losses++
		default:
			t.Pushes++
		}
	}
}

// Merge adds another tracker's counts into this one. Aggregation is plain
// summation, so merging worker trackers in any order yields the same totals.
func (t *Trackers) Merge(other *Trackers) {
	t.Rounds += other.Rounds
	t.Hands += other.Hands
	for i := range t.Results {
		t.Results[i] += other.Results[i]
	}
	t.Wins += other.Wins
	t.Losses += other.Losses
	t.Pushes += other.Pushes
	t.PlayerBusts += other.PlayerBusts
	t.DealerBusts += other.DealerBusts
	t.Doubles += other.Doubles
	t.Splits += other.Splits
	for i := range t.PlayerTotals {
		t.PlayerTotals[i] += other.PlayerTotals[i]
	}
	for i := range t.DealerTotals {
		t.DealerTotals[i] += other.DealerTotals[i]
	}
	t.Units += other.Units
}

// Count returns the counter for a result kind.
func (t *Trackers) Count(kind game.ResultKind) int {
	return t.Results[kind]
}

// Validate performs consistency checks on the aggregate counts.
func (t *Trackers) Validate() error {
	if t.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", t.Rounds)
	}
	if t.Hands < t.Rounds {
		return fmt.Errorf("hands (%d) cannot be fewer than rounds (%d)", t.Hands, t.Rounds)
	}
	total := 0
	for _, n := range t.Results {
		total += n
	}
	if total != t.Hands {
		return fmt.Errorf("result counts (%d) do not match hands (%d)", total, t.Hands)
	}
	if t.Wins+t.Losses+t.Pushes != t.Hands {
		return fmt.Errorf("rollups (%d+%d+%d) do not match hands (%d)",
			t.Wins, t.Losses, t.Pushes, t.Hands)
	}
	if t.Hands != t.Rounds+t.Splits {
		return fmt.Errorf("hands (%d) should equal rounds (%d) plus splits (%d)",
			t.Hands, t.Rounds, t.Splits)
	}
	return nil
}

// Summary is the derived view of a completed run.
type Summary struct {
	Rounds     int     `json:"rounds"`
	Rule       string  `json:"rule"`
	Seed       int64   `json:"seed"`
	WinRate    float64 `json:"win_rate"`
	LossRate   float64 `json:"loss_rate"`
	PushRate   float64 `json:"push_rate"`
	Units      float64 `json:"units"`
	EVPerRound float64 `json:"ev_per_round"`
}

// Summarize computes the run summary from the aggregate counts.
func (t *Trackers) Summarize(rule string, seed int64) Summary {
	s := Summary{
		Rounds: t.Rounds,
		Rule:   rule,
		Seed:   seed,
		Units:  t.Units,
	}
	if t.Hands > 0 {
		s.WinRate = float64(t.Wins) / float64(t.Hands)
		s.LossRate = float64(t.Losses) / float64(t.Hands)
		s.PushRate = float64(t.Pushes) / float64(t.Hands)
	}
	if t.Rounds > 0 {
		s.EVPerRound = t.Units / float64(t.Rounds)
	}
	return s
}
