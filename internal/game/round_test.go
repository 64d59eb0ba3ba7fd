package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/rules"
)

// chartActor mirrors the basic strategy calls the round tests rely on,
// without importing the strategy package (which would be a cycle). Tests
// that need full chart coverage live in internal/strategy.
type chartActor struct{}

func (chartActor) Act(view HandView) (Action, error) {
	up := view.DealerUp.Value()

	if view.CanSurrender && !view.Soft && view.Total == 16 && up >= 9 {
		return Surrender, nil
	}
	if view.CanSplit && view.Cards[0].Value() == 8 {
		return Split, nil
	}
	if view.CanDouble && !view.Soft && (view.Total == 10 || view.Total == 11) {
		return Double, nil
	}
	if view.Total >= 17 || (view.Total >= 13 && up <= 6) {
		return Stand, nil
	}
	return Hit, nil
}

// scripted builds a deterministic source. Deal order: two player cards, two
// dealer cards (upcard first), then every in-play draw.
func scripted(cards string) *deck.Scripted {
	return deck.NewScripted(deck.MustParseCards(cards)...)
}

func TestPlayerBlackjackPays3to2(t *testing.T) {
	result, err := PlayRound(scripted("AsKs9h7d"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(result.Outcomes))
	}
	out := result.Outcomes[0]
	if out.Result != ResultBlackjackWin || out.Payoff != 1.5 {
		t.Errorf("outcome = %s %.2f, want blackjack_win +1.50", out.Result, out.Payoff)
	}
	if result.DealerPlayed {
		t.Error("dealer should not play against a resolved natural")
	}
}

func TestPlayerBlackjackEvenMoney(t *testing.T) {
	r := rules.Default()
	r.Blackjack3to2 = false

	result, err := PlayRound(scripted("AsKs9h7d"), r, chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultBlackjackWin || out.Payoff != 1.0 {
		t.Errorf("outcome = %s %.2f, want blackjack_win +1.00", out.Result, out.Payoff)
	}
}

func TestDealerPeekBlackjack(t *testing.T) {
	// Dealer shows an Ace with a ten in the hole; the peek ends the round
	// before the player acts.
	result, err := PlayRound(scripted("Ts9sAhKd"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultDealerBlackjack || out.Payoff != -1 {
		t.Errorf("outcome = %s %.2f, want dealer_blackjack -1.00", out.Result, out.Payoff)
	}
}

func TestBothBlackjacksPush(t *testing.T) {
	result, err := PlayRound(scripted("AsKsAhKd"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultBlackjackPush || out.Payoff != 0 {
		t.Errorf("outcome = %s %.2f, want blackjack_push 0.00", out.Result, out.Payoff)
	}
}

func TestNoPeekDealerBlackjackIsOrdinaryLoss(t *testing.T) {
	r := rules.Default()
	r.Peek = false

	// Player stands on 19; the hole-card blackjack only shows up at
	// comparison time.
	result, err := PlayRound(scripted("Ts9sAhKd"), r, chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultLoss || out.Payoff != -1 {
		t.Errorf("outcome = %s %.2f, want loss -1.00", out.Result, out.Payoff)
	}
}

func TestSurrenderPaysHalfAndDrawsNothing(t *testing.T) {
	source := scripted("9s7dTh7c")
	result, err := PlayRound(source, rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultSurrender || out.Payoff != -0.5 {
		t.Errorf("outcome = %s %.2f, want surrender -0.50", out.Result, out.Payoff)
	}
	if source.Remaining() != 0 {
		t.Errorf("surrender drew %d extra cards", source.Remaining())
	}
	if result.DealerPlayed {
		t.Error("dealer should not play after a surrender")
	}
}

func TestSurrenderDisabledFallsBack(t *testing.T) {
	r := rules.Default()
	r.LateSurrender = false

	// 16 vs 10 becomes a hit; 9+7+5 = 21 then stands against dealer 20.
	result, err := PlayRound(scripted("9s7dThTc5h"), r, chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultWin || out.Payoff != 1 {
		t.Errorf("outcome = %s %.2f, want win +1.00", out.Result, out.Payoff)
	}
}

func TestDoubleWinPaysTwice(t *testing.T) {
	// Player 11 doubles, draws a ten for 21; dealer 14 draws a 4 for 18.
	result, err := PlayRound(scripted("6s5d5h9dTh4c"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultWin || out.Payoff != 2 {
		t.Errorf("outcome = %s %.2f, want win +2.00", out.Result, out.Payoff)
	}
	if result.Doubles != 1 {
		t.Errorf("doubles = %d, want 1", result.Doubles)
	}
}

func TestDoubleBustLosesDoubledBet(t *testing.T) {
	alwaysDouble := ActorFunc(func(view HandView) (Action, error) {
		if view.CanDouble {
			return Double, nil
		}
		return Stand, nil
	})

	// Player 16 doubles into a 9 and busts; the dealer never plays.
	source := scripted("Ts6d5h9d9c")
	result, err := PlayRound(source, rules.Default(), alwaysDouble)
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultLoss || out.Payoff != -2 {
		t.Errorf("outcome = %s %.2f, want loss -2.00", out.Result, out.Payoff)
	}
	if result.PlayerBusts != 1 {
		t.Errorf("player busts = %d, want 1", result.PlayerBusts)
	}
	if result.DealerPlayed {
		t.Error("dealer played with no hand awaiting comparison")
	}
}

func TestHitBustLosesBet(t *testing.T) {
	alwaysHit := ActorFunc(func(view HandView) (Action, error) {
		return Hit, nil
	})

	result, err := PlayRound(scripted("Ts6d5h9d9c"), rules.Default(), alwaysHit)
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultLoss || out.Payoff != -1 {
		t.Errorf("outcome = %s %.2f, want loss -1.00", out.Result, out.Payoff)
	}
}

func TestStandoffPushes(t *testing.T) {
	result, err := PlayRound(scripted("Ts9dTh9c"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultPush || out.Payoff != 0 {
		t.Errorf("outcome = %s %.2f, want push 0.00", out.Result, out.Payoff)
	}
}

func TestDealerBustIsTrackedSeparately(t *testing.T) {
	// Player stands on 18; dealer 16 draws a ten and busts.
	result, err := PlayRound(scripted("Ts8dTh6cJh"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Result != ResultDealerBustWin || out.Payoff != 1 {
		t.Errorf("outcome = %s %.2f, want dealer_bust_win +1.00", out.Result, out.Payoff)
	}
	if !result.DealerBust {
		t.Error("dealer bust not recorded")
	}
}

func TestSplitProducesTwoOutcomes(t *testing.T) {
	// 8,8 vs 7: split; both halves land on 11 and 10 and double into made
	// hands against the dealer's pat 17.
	//
	// Deal: 8s 8d (player), 7h Th (dealer); 2c joins the second 8, 3c the
	// first; Th doubles the first hand to 21, 9s doubles the second to 19.
	result, err := PlayRound(scripted("8s8d7hTh2c3cTh9s"), rules.Default(), chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Splits != 1 {
		t.Fatalf("splits = %d, want 1", result.Splits)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(result.Outcomes))
	}
	for i, out := range result.Outcomes {
		if out.Result != ResultWin || out.Payoff != 2 {
			t.Errorf("outcome %d = %s %.2f, want win +2.00", i, out.Result, out.Payoff)
		}
	}
	if result.Doubles != 2 {
		t.Errorf("doubles = %d, want 2", result.Doubles)
	}
}

func TestResplitLimitIsShared(t *testing.T) {
	r := rules.Default()
	r.ResplitLimit = 1

	// The first split hand draws another 8 but the budget is spent, so the
	// re-formed pair plays as hard 16 and hits to 21.
	result, err := PlayRound(scripted("8s8d7hTh2c8c5hTh9s"), r, chartActor{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Splits != 1 {
		t.Errorf("splits = %d, want 1 (limit)", result.Splits)
	}
	if len(result.Outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2", len(result.Outcomes))
	}
}

func TestResplitGrowsWorkList(t *testing.T) {
	// Three eights in a row force a resplit: 8,8 splits, the first half
	// pairs up again and splits again, producing three resolved hands.
	splitter := ActorFunc(func(view HandView) (Action, error) {
		if view.CanSplit {
			return Split, nil
		}
		return Stand, nil
	})

	result, err := PlayRound(scripted("8s8d7hTh2c8cTh3c9s"), rules.Default(), splitter)
	if err != nil {
		t.Fatal(err)
	}
	if result.Splits != 2 {
		t.Fatalf("splits = %d, want 2", result.Splits)
	}
	if len(result.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3 (one per resolved hand)", len(result.Outcomes))
	}
}

func TestSplitHandsNeverScoreBlackjack(t *testing.T) {
	// Splitting aces and catching a king is 21, not a natural.
	splitter := ActorFunc(func(view HandView) (Action, error) {
		if view.CanSplit {
			return Split, nil
		}
		return Stand, nil
	})

	result, err := PlayRound(scripted("AsAd7hThKcKd"), rules.Default(), splitter)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(result.Outcomes))
	}
	for i, out := range result.Outcomes {
		if out.Result == ResultBlackjackWin {
			t.Errorf("outcome %d priced as a natural on a split hand", i)
		}
		if out.Result != ResultWin || out.Payoff != 1 {
			t.Errorf("outcome %d = %s %.2f, want win +1.00", i, out.Result, out.Payoff)
		}
	}
}

func TestNoDASBlocksDoubleAfterSplit(t *testing.T) {
	r := rules.Default()
	r.DAS = false

	doubler := ActorFunc(func(view HandView) (Action, error) {
		if view.CanSplit {
			return Split, nil
		}
		if view.CanDouble {
			return Double, nil
		}
		return Stand, nil
	})

	// Both split halves make 18s and must stand since doubling after a
	// split is off.
	result, err := PlayRound(scripted("8s8d7hThTcTd"), r, doubler)
	if err != nil {
		t.Fatal(err)
	}
	if result.Doubles != 0 {
		t.Errorf("doubles = %d, want 0 without DAS", result.Doubles)
	}
	for i, out := range result.Outcomes {
		if out.Payoff != 1 {
			t.Errorf("outcome %d payoff = %.2f, want +1.00 (undoubled)", i, out.Payoff)
		}
	}
}

func TestIllegalActionsAreRejected(t *testing.T) {
	tests := []struct {
		name   string
		cards  string
		action Action
	}{
		{"split without a pair", "Ts9d7hTh", Split},
		{"surrender after a hit", "5s2d7hTh4c", Surrender},
		{"unknown action", "Ts9d7hTh", Action(99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			actor := ActorFunc(func(view HandView) (Action, error) {
				calls++
				if calls == 1 && tt.action == Surrender {
					return Hit, nil
				}
				return tt.action, nil
			})

			_, err := PlayRound(scripted(tt.cards), rules.Default(), actor)
			if !errors.Is(err, ErrIllegalAction) {
				t.Errorf("expected ErrIllegalAction, got %v", err)
			}
		})
	}
}

func TestDoubleAfterHitIsRejected(t *testing.T) {
	calls := 0
	actor := ActorFunc(func(view HandView) (Action, error) {
		calls++
		if calls == 1 {
			return Hit, nil
		}
		return Double, nil
	})

	_, err := PlayRound(scripted("5s2d7hTh4c"), rules.Default(), actor)
	if !errors.Is(err, ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction, got %v", err)
	}
}

func TestInvalidRulesFailFast(t *testing.T) {
	r := rules.Default()
	r.ResplitLimit = -1
	_, err := PlayRound(scripted("Ts9d7hTh"), r, chartActor{})
	if err == nil {
		t.Fatal("expected validation error for negative resplit_limit")
	}
}

func TestShoeExhaustionSurfaces(t *testing.T) {
	_, err := PlayRound(scripted("Ts6d"), rules.Default(), chartActor{})
	if !errors.Is(err, deck.ErrShoeExhausted) {
		t.Errorf("expected ErrShoeExhausted, got %v", err)
	}
}

func TestOutcomeCountMatchesHands(t *testing.T) {
	// Property check over random rounds: every completed round yields
	// exactly one outcome per resolved hand.
	source := deck.NewInfinite(randutil.New(99))
	for i := 0; i < 5000; i++ {
		result, err := PlayRound(source, rules.Default(), chartActor{})
		if err != nil {
			t.Fatalf("round %d failed: %v", i, err)
		}
		if len(result.Outcomes) != 1+result.Splits {
			t.Fatalf("round %d: %d outcomes for %d splits", i, len(result.Outcomes), result.Splits)
		}
		for _, out := range result.Outcomes {
			if !out.Result.IsWin() && !out.Result.IsLoss() && !out.Result.IsPush() {
				t.Fatalf("round %d: unclassified result %s", i, out.Result)
			}
		}
	}
}
