package game

import "github.com/lox/blackjacksim/internal/deck"

// HandValue computes the best blackjack total for a set of cards. Every Ace
// starts at 11 and is demoted to 1 one at a time while the hand would bust,
// which yields the highest total <= 21 when one exists, or the lowest busted
// total otherwise. soft is true iff an Ace is still counted as 11.
func HandValue(cards []deck.Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBlackjack reports whether cards form a natural: exactly two cards
// totaling 21. Callers must only apply this to original (non-split) hands;
// split descendants never qualify for natural pricing.
func IsBlackjack(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandValue(cards)
	return total == 21
}

// IsPair reports whether cards are exactly two cards of equal blackjack
// value, the split eligibility test. Ten-value cards pair with each other.
func IsPair(cards []deck.Card) bool {
	return len(cards) == 2 && cards[0].Value() == cards[1].Value()
}
