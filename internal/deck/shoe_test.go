package deck

import (
	"errors"
	"testing"

	"github.com/lox/blackjacksim/internal/randutil"
)

func TestInfiniteDrawNeverExhausts(t *testing.T) {
	src := NewInfinite(randutil.New(1))

	seen := make(map[Rank]int)
	for i := 0; i < 52_000; i++ {
		card, err := src.Draw()
		if err != nil {
			t.Fatalf("infinite source returned error: %v", err)
		}
		seen[card.Rank]++
	}

	// Every rank should appear roughly uniformly (1/13 of draws).
	for rank := Two; rank <= Ace; rank++ {
		n := seen[rank]
		if n < 3000 || n > 5000 {
			t.Errorf("rank %s drawn %d times, expected ~4000", rank, n)
		}
	}
}

func TestInfiniteDrawIsDeterministic(t *testing.T) {
	a := NewInfinite(randutil.New(42))
	b := NewInfinite(randutil.New(42))

	for i := 0; i < 100; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("draw %d diverged: %v vs %v", i, ca, cb)
		}
	}
}

func TestShoeExhaustion(t *testing.T) {
	shoe := NewShoe(randutil.New(7), 1)
	if shoe.Remaining() != 52 {
		t.Fatalf("new single-deck shoe has %d cards, want 52", shoe.Remaining())
	}

	seen := make(map[Card]int)
	for i := 0; i < 52; i++ {
		card, err := shoe.Draw()
		if err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
		seen[card]++
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 distinct cards, got %d", len(seen))
	}
	if !shoe.Exhausted() {
		t.Error("shoe should be exhausted after 52 draws")
	}

	_, err := shoe.Draw()
	if !errors.Is(err, ErrShoeExhausted) {
		t.Errorf("expected ErrShoeExhausted, got %v", err)
	}

	shoe.Reset()
	if shoe.Remaining() != 52 {
		t.Errorf("reset shoe has %d cards, want 52", shoe.Remaining())
	}
}

func TestScriptedDealsInOrder(t *testing.T) {
	src := NewScripted(MustParseCards("AsKh2d")...)
	want := []string{"A♠", "K♥", "2♦"}
	for _, w := range want {
		card, err := src.Draw()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if card.String() != w {
			t.Errorf("drew %s, want %s", card, w)
		}
	}
	if _, err := src.Draw(); !errors.Is(err, ErrShoeExhausted) {
		t.Errorf("expected ErrShoeExhausted past the script, got %v", err)
	}
}
