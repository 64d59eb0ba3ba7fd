package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/rules"
)

// Result carries everything one resolved round produced: the ordered
// outcomes (one per resolved hand; more than one when splits occurred) plus
// the event counts and final totals the trackers aggregate.
type Result struct {
	Outcomes []Outcome

	Doubles     int
	Splits      int
	PlayerBusts int

	// PlayerTotals holds the final total of every non-busted hand that was
	// compared against the dealer.
	PlayerTotals []int

	// Dealer final state; valid only when DealerPlayed is set. The dealer
	// only plays out when at least one player hand awaits comparison.
	DealerPlayed bool
	DealerTotal  int
	DealerBust   bool

	// DealerCards is the dealer's final hand for display purposes
	DealerCards []deck.Card
}

// TotalPayoff sums the payoffs of all outcomes in the round.
func (r *Result) TotalPayoff() float64 {
	var total float64
	for _, o := range r.Outcomes {
		total += o.Payoff
	}
	return total
}

// pendingHand is a work-list entry for a hand that still needs decisions.
// Splits push new entries; the list is processed iteratively so resplit
// depth never grows the call stack.
type pendingHand struct {
	cards     []deck.Card
	mult      float64
	fromSplit bool
}

// settledHand is a terminal, non-busted hand awaiting dealer comparison.
type settledHand struct {
	total int
	mult  float64
}

// PlayRound resolves one full round for one initial two-card deal: deals the
// player and dealer, handles the peek and naturals, walks the decision
// work-list consulting the actor for every decision, and settles each
// resulting hand against the dealer's final total.
func PlayRound(source deck.Source, r rules.Rules, actor Actor) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	player, err := drawN(source, 2)
	if err != nil {
		return nil, err
	}
	dealer, err := drawN(source, 2)
	if err != nil {
		return nil, err
	}

	round := &roundState{
		source: source,
		rules:  r,
		dealer: dealer,
		result: &Result{},
	}
	if err := round.play(player, actor); err != nil {
		return nil, err
	}

	// Exhaustive and exclusive: exactly one outcome per hand, which is the
	// original hand plus one extra hand per successful split.
	if got, want := len(round.result.Outcomes), 1+round.result.Splits; got != want {
		return nil, fmt.Errorf("%w: %d outcomes for %d hands", ErrInvalidState, got, want)
	}

	return round.result, nil
}

type roundState struct {
	source deck.Source
	rules  rules.Rules
	dealer []deck.Card
	result *Result

	splitsDone int
}

func (rs *roundState) play(player []deck.Card, actor Actor) error {
	dealerUp := rs.dealer[0]

	// Dealer peek: with a ten-value or Ace showing, a dealer natural ends
	// the round before the player acts.
	if rs.rules.Peek && (dealerUp.IsTenValue() || dealerUp.IsAce()) && IsBlackjack(rs.dealer) {
		if IsBlackjack(player) {
			rs.resolve(Outcome{Result: ResultBlackjackPush, Payoff: 0})
		} else {
			rs.resolve(Outcome{Result: ResultDealerBlackjack, Payoff: -1})
		}
		return nil
	}

	// A player natural resolves immediately at enhanced odds; split hands
	// can never reach this path.
	if IsBlackjack(player) {
		payoff := 1.0
		if rs.rules.Blackjack3to2 {
			payoff = 1.5
		}
		rs.resolve(Outcome{Result: ResultBlackjackWin, Payoff: payoff})
		return nil
	}

	var awaiting []settledHand
	stack := []pendingHand{{cards: player, mult: 1, fromSplit: false}}
	firstDecision := true

	for len(stack) > 0 {
		hand := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		settled, err := rs.playHand(&hand, actor, &stack, &firstDecision)
		if err != nil {
			return err
		}
		if settled != nil {
			awaiting = append(awaiting, *settled)
		}
	}

	if len(awaiting) > 0 {
		if err := rs.settleAgainstDealer(awaiting); err != nil {
			return err
		}
	}
	return nil
}

// playHand runs the decision loop for a single work-list entry. It returns a
// settledHand when the hand stands (or doubles without busting) and needs a
// dealer comparison, or nil when the hand resolved on its own (bust,
// surrender).
func (rs *roundState) playHand(hand *pendingHand, actor Actor, stack *[]pendingHand, firstDecision *bool) (*settledHand, error) {
	for {
		total, soft := HandValue(hand.cards)

		canSplit := IsPair(hand.cards) && rs.splitsDone < rs.rules.ResplitLimit
		canDouble := len(hand.cards) == 2 && (!hand.fromSplit || rs.rules.DAS)
		canSurrender := rs.rules.LateSurrender && *firstDecision && !hand.fromSplit

		action, err := actor.Act(HandView{
			Cards:        hand.cards,
			Total:        total,
			Soft:         soft,
			DealerUp:     rs.dealer[0],
			BetMultiple:  hand.mult,
			FromSplit:    hand.fromSplit,
			CanDouble:    canDouble,
			CanSplit:     canSplit,
			CanSurrender: canSurrender,
		})
		if err != nil {
			return nil, err
		}
		*firstDecision = false

		switch action {
		case Surrender:
			if !canSurrender {
				return nil, fmt.Errorf("%w: surrender not available", ErrIllegalAction)
			}
			rs.resolve(Outcome{Result: ResultSurrender, Payoff: -0.5})
			return nil, nil

		case Split:
			if !canSplit {
				return nil, fmt.Errorf("%w: split requires a pair within the resplit limit", ErrIllegalAction)
			}
			rs.splitsDone++
			rs.result.Splits++

			second, err := rs.twoCardHand(hand.cards[1])
			if err != nil {
				return nil, err
			}
			*stack = append(*stack, pendingHand{cards: second, mult: hand.mult, fromSplit: true})

			first, err := rs.twoCardHand(hand.cards[0])
			if err != nil {
				return nil, err
			}
			hand.cards = first
			hand.fromSplit = true

		case Double:
			if !canDouble {
				return nil, fmt.Errorf("%w: double requires two cards%s", ErrIllegalAction, dasHint(hand.fromSplit))
			}
			hand.mult *= 2
			rs.result.Doubles++
			card, err := rs.source.Draw()
			if err != nil {
				return nil, err
			}
			hand.cards = append(hand.cards, card)

			// Doubling takes exactly one card and ends the hand even on a
			// bust.
			total, _ := HandValue(hand.cards)
			if total > 21 {
				rs.result.PlayerBusts++
				rs.resolve(Outcome{Result: ResultLoss, Payoff: -hand.mult})
				return nil, nil
			}
			rs.result.PlayerTotals = append(rs.result.PlayerTotals, total)
			return &settledHand{total: total, mult: hand.mult}, nil

		case Hit:
			card, err := rs.source.Draw()
			if err != nil {
				return nil, err
			}
			hand.cards = append(hand.cards, card)
			total, _ := HandValue(hand.cards)
			if total > 21 {
				rs.result.PlayerBusts++
				rs.resolve(Outcome{Result: ResultLoss, Payoff: -hand.mult})
				return nil, nil
			}

		case Stand:
			rs.result.PlayerTotals = append(rs.result.PlayerTotals, total)
			return &settledHand{total: total, mult: hand.mult}, nil

		default:
			return nil, fmt.Errorf("%w: unknown action %d", ErrIllegalAction, action)
		}
	}
}

// twoCardHand builds one half of a split: one card of the original pair plus
// a fresh draw.
func (rs *roundState) twoCardHand(keep deck.Card) ([]deck.Card, error) {
	card, err := rs.source.Draw()
	if err != nil {
		return nil, err
	}
	return []deck.Card{keep, card}, nil
}

// settleAgainstDealer plays out the dealer once and compares every hand that
// stood.
func (rs *roundState) settleAgainstDealer(awaiting []settledHand) error {
	final, err := DealerPlay(rs.source, rs.dealer, rs.rules.HitSoft17)
	if err != nil {
		return err
	}
	dealerTotal, _ := HandValue(final)

	rs.result.DealerPlayed = true
	rs.result.DealerTotal = dealerTotal
	rs.result.DealerBust = dealerTotal > 21
	rs.result.DealerCards = final

	for _, hand := range awaiting {
		switch {
		case dealerTotal > 21:
			rs.resolve(Outcome{Result: ResultDealerBustWin, Payoff: hand.mult})
		case hand.total > dealerTotal:
			rs.resolve(Outcome{Result: ResultWin, Payoff: hand.mult})
		case hand.total < dealerTotal:
			rs.resolve(Outcome{Result: ResultLoss, Payoff: -hand.mult})
		default:
			rs.resolve(Outcome{Result: ResultPush, Payoff: 0})
		}
	}
	return nil
}

func (rs *roundState) resolve(outcome Outcome) {
	rs.result.Outcomes = append(rs.result.Outcomes, outcome)
}

func drawN(source deck.Source, n int) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := source.Draw()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func dasHint(fromSplit bool) string {
	if fromSplit {
		return " (doubling after split is disabled)"
	}
	return ""
}
