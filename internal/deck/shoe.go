package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrShoeExhausted is returned by finite shoes when no cards remain.
var ErrShoeExhausted = errors.New("shoe exhausted")

// Source produces one card per call. The round engine pulls from a Source at
// every card-dealing point, so infinite-replacement and finite-shoe draw
// models are interchangeable.
type Source interface {
	Draw() (Card, error)
}

// Infinite is a replacement draw source: every rank is equally likely on
// every draw, independent of prior draws.
type Infinite struct {
	rng *rand.Rand
}

// NewInfinite creates an infinite-replacement draw source backed by rng.
func NewInfinite(rng *rand.Rand) *Infinite {
	return &Infinite{rng: rng}
}

// Draw returns a uniformly random card. It never fails.
func (s *Infinite) Draw() (Card, error) {
	n := s.rng.IntN(52)
	return Card{Suit: Suit(n / 13), Rank: Rank(n%13) + Two}, nil
}

// Shoe is a finite multi-deck shoe. It satisfies the same Source contract as
// Infinite but signals exhaustion distinctly.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
	decks int
}

// NewShoe creates a shuffled shoe holding the given number of 52-card decks.
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	s := &Shoe{
		cards: make([]Card, 0, decks*52),
		rng:   rng,
		decks: decks,
	}
	s.refill()
	s.Shuffle()
	return s
}

func (s *Shoe) refill() {
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards.
func (s *Shoe) Shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card, or ErrShoeExhausted.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Exhausted returns true if the shoe has no cards left.
func (s *Shoe) Exhausted() bool {
	return len(s.cards) == 0
}

// Reset refills the shoe to its full size and shuffles it.
func (s *Shoe) Reset() {
	s.refill()
	s.Shuffle()
}

// Scripted replays a fixed sequence of cards, then fails. It exists for
// deterministic tests and deliberately has no shuffle.
type Scripted struct {
	cards []Card
}

// NewScripted creates a draw source that deals exactly the given cards in order.
func NewScripted(cards ...Card) *Scripted {
	return &Scripted{cards: cards}
}

// Draw returns the next scripted card, or ErrShoeExhausted past the end.
func (s *Scripted) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns how many scripted cards are left.
func (s *Scripted) Remaining() int {
	return len(s.cards)
}
