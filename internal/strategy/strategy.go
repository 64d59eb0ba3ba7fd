// Package strategy implements the canonical basic strategy chart (H17, DAS,
// late surrender) as immutable lookup tables. Decisions depend only on the
// hand classification (pair, soft, hard) and the dealer upcard, so identical
// inputs always yield identical output.
package strategy

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// move is a chart cell. Double and surrender cells carry their fallback for
// when the action is unavailable, so degradation lives in the data rather
// than in branching logic.
type move int

const (
	hit move = iota
	stand
	doubleHit   // double, else hit
	doubleStand // double, else stand
	split
)

// row maps dealer upcard values 2..11 (Ace) to a move.
type row [10]move

func uniform(m move) row {
	return row{m, m, m, m, m, m, m, m, m, m}
}

// span returns a row of `in` for upcards lo..hi and `out` elsewhere.
func span(lo, hi int, in, out move) row {
	r := uniform(out)
	for up := lo; up <= hi; up++ {
		r[up-2] = in
	}
	return r
}

// pairMoves is keyed by the shared card value of the pair (2..11).
var pairMoves = map[int]row{
	11: uniform(split),                // A,A
	10: uniform(stand),                // tens stay a made 20
	9:  {split, split, split, split, split, stand, split, split, stand, stand}, // 9,9: stand vs 7, T, A
	8:  uniform(split),
	7:  span(2, 7, split, hit),
	6:  span(2, 6, split, hit),
	5:  span(2, 9, doubleHit, hit), // never split fives
	4:  span(5, 6, split, hit),
	3:  span(2, 7, split, hit),
	2:  span(2, 7, split, hit),
}

// softMoves is keyed by the soft total (13 = A,2 ... 20 = A,9).
var softMoves = map[int]row{
	13: span(5, 6, doubleHit, hit),
	14: span(5, 6, doubleHit, hit),
	15: span(4, 6, doubleHit, hit),
	16: span(4, 6, doubleHit, hit),
	17: span(3, 6, doubleHit, hit),
	18: {doubleStand, doubleStand, doubleStand, doubleStand, doubleStand, stand, stand, hit, hit, hit},
	19: span(6, 6, doubleStand, stand),
	20: uniform(stand),
	21: uniform(stand),
}

// hardMoves is keyed by the hard total; totals below 9 always hit and totals
// of 17 and above always stand.
var hardMoves = map[int]row{
	9:  span(3, 6, doubleHit, hit),
	10: span(2, 9, doubleHit, hit),
	11: uniform(doubleHit),
	12: span(4, 6, stand, hit),
	13: span(2, 6, stand, hit),
	14: span(2, 6, stand, hit),
	15: span(2, 6, stand, hit),
	16: span(2, 6, stand, hit),
}

// Advise returns the basic strategy action for the player hand against the
// dealer upcard, constrained by the current eligibility flags. When the chart
// calls for an unavailable double or split the encoded fallback applies.
func Advise(player []deck.Card, dealerUp deck.Card, canDouble, canSplit, canSurrender bool) game.Action {
	up := dealerUp.Value()
	total, soft := game.HandValue(player)

	// Late surrender is only consulted on a fresh two-card hard hand.
	if canSurrender && len(player) == 2 && !soft {
		if total == 16 && (up == 9 || up == 10 || up == 11) {
			return game.Surrender
		}
		if total == 15 && up == 10 {
			return game.Surrender
		}
	}

	if canSplit && game.IsPair(player) {
		if m, ok := pairMoves[player[0].Value()]; ok && m[up-2] == split {
			return game.Split
		}
		// Non-split pair cells (tens, fives) fall through to the total
		// tables, which give the same answer.
	}

	var m move
	if soft {
		// Soft 12 (an unsplit A,A) is not in the chart and hits.
		if r, ok := softMoves[total]; ok {
			m = r[up-2]
		} else {
			m = hit
		}
	} else {
		switch {
		case total <= 8:
			m = hit
		case total >= 17:
			m = stand
		default:
			m = hardMoves[total][up-2]
		}
	}

	switch m {
	case doubleHit:
		if canDouble {
			return game.Double
		}
		return game.Hit
	case doubleStand:
		if canDouble {
			return game.Double
		}
		return game.Stand
	case stand:
		return game.Stand
	default:
		return game.Hit
	}
}
