package game

import "github.com/lox/blackjacksim/internal/deck"

// DealerPlay draws cards onto the dealer's hand until it stands: total 17 or
// more, except a soft 17 which is hit when hitSoft17 is set. The input slice
// is not modified. Termination is guaranteed since every draw raises the
// hard total.
func DealerPlay(source deck.Source, cards []deck.Card, hitSoft17 bool) ([]deck.Card, error) {
	final := append([]deck.Card(nil), cards...)
	for {
		total, soft := HandValue(final)
		if total > 17 || (total == 17 && !(soft && hitSoft17)) {
			return final, nil
		}
		card, err := source.Draw()
		if err != nil {
			return nil, err
		}
		final = append(final, card)
	}
}
