package game

// Action represents a player decision for one hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ResultKind classifies the outcome of one resolved hand
type ResultKind int

const (
	ResultWin ResultKind = iota
	ResultLoss
	ResultPush
	ResultBlackjackWin
	ResultBlackjackPush
	ResultSurrender
	ResultDealerBlackjack
	ResultDealerBustWin
)

// String returns the string representation of a result kind
func (r ResultKind) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	case ResultPush:
		return "push"
	case ResultBlackjackWin:
		return "blackjack_win"
	case ResultBlackjackPush:
		return "blackjack_push"
	case ResultSurrender:
		return "surrender"
	case ResultDealerBlackjack:
		return "dealer_blackjack"
	case ResultDealerBustWin:
		return "dealer_bust_win"
	default:
		return "unknown"
	}
}

// IsWin reports whether the result counts as a win for rate purposes
func (r ResultKind) IsWin() bool {
	return r == ResultWin || r == ResultBlackjackWin || r == ResultDealerBustWin
}

// IsLoss reports whether the result counts as a loss for rate purposes
func (r ResultKind) IsLoss() bool {
	return r == ResultLoss || r == ResultSurrender || r == ResultDealerBlackjack
}

// IsPush reports whether the result counts as a push for rate purposes
func (r ResultKind) IsPush() bool {
	return r == ResultPush || r == ResultBlackjackPush
}

// Outcome is the (result, payoff) pair for one resolved hand. Payoff is a
// signed multiple of the base unit bet.
type Outcome struct {
	Result ResultKind
	Payoff float64
}
