package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewStockComposition(t *testing.T) {
	stock := NewStock()
	if len(stock) != 108 {
		t.Fatalf("stock size = %d, want 108", len(stock))
	}
	counts := make(map[Rank]int)
	for _, r := range stock {
		counts[r]++
	}
	for _, r := range StandardRanks {
		if counts[r] != 8 {
			t.Errorf("count(%s) = %d, want 8", r, counts[r])
		}
	}
	if counts[Joker] != 4 {
		t.Errorf("count(JOKER) = %d, want 4", counts[Joker])
	}
}

func TestShuffleIsAPermutation(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(7)))
	counts := make(map[Rank]int)
	for deck.Len() > 0 {
		r, _ := deck.Draw()
		counts[r]++
	}
	for _, r := range StandardRanks {
		if counts[r] != CopiesPerRank {
			t.Fatalf("count(%s) = %d after shuffle", r, counts[r])
		}
	}
	if counts[Joker] != JokerCount {
		t.Fatalf("jokers = %d after shuffle", counts[Joker])
	}
}

func TestDrawTakesFromTop(t *testing.T) {
	deck := NewDeckFromCards([]Rank{Ace, Two, King})
	got, ok := deck.Draw()
	if !ok || got != King {
		t.Fatalf("Draw() = %s, %v; want K, true", got, ok)
	}
	if deck.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", deck.Len())
	}
}

func TestDealAndRefill(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	var hands [SeatCount][]Rank
	deck.Deal(&hands)
	for s, h := range hands {
		if len(h) != HandSize {
			t.Fatalf("hand %d size = %d, want %d", s, len(h), HandSize)
		}
	}
	if deck.Len() != 88 {
		t.Fatalf("deck size = %d, want 88", deck.Len())
	}

	hands[2] = hands[2][:3]
	hands[2] = deck.Refill(hands[2])
	if len(hands[2]) != HandSize || deck.Len() != 86 {
		t.Fatalf("after refill hand=%d deck=%d, want 5 and 86", len(hands[2]), deck.Len())
	}
}

func TestRefillStopsWhenDeckEmpty(t *testing.T) {
	deck := NewDeckFromCards([]Rank{Seven})
	hand := deck.Refill([]Rank{Two, Three})
	if len(hand) != 3 {
		t.Fatalf("hand size = %d, want 3", len(hand))
	}
	if _, ok := deck.Draw(); ok {
		t.Fatal("deck should be empty")
	}
	hand = deck.Refill(hand)
	if len(hand) != 3 {
		t.Fatalf("hand grew from an empty deck: %d", len(hand))
	}
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		in   string
		want Rank
		ok   bool
	}{
		{in: "A", want: Ace, ok: true},
		{in: "10", want: Ten, ok: true},
		{in: "q", want: Queen, ok: true},
		{in: "joker", want: Joker, ok: true},
		{in: "1", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseRank(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseRank(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
		if ok && got.String() != "" {
			if back, _ := ParseRank(got.String()); back != got {
				t.Errorf("round trip of %s failed", got)
			}
		}
	}
}

func TestParseJokerChoice(t *testing.T) {
	c, err := ParseJokerChoice("getout")
	if err != nil || !c.GetOut {
		t.Fatalf("ParseJokerChoice(getout) = %+v, %v", c, err)
	}
	c, err = ParseJokerChoice(" 7 ")
	if err != nil || c.GetOut || c.Steps != 7 {
		t.Fatalf("ParseJokerChoice(7) = %+v, %v", c, err)
	}
	if _, err := ParseJokerChoice("seven"); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("ParseJokerChoice(seven) err = %v, want invalid move", err)
	}
}
