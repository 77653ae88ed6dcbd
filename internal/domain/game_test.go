package domain

import (
	"errors"
	"testing"
)

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t)
	if g.Phase != PhasePlaying || g.Turn != 0 {
		t.Fatalf("phase=%s turn=%d, want playing and 0", g.Phase, g.Turn)
	}
	for s, ps := range g.Players {
		if ps.Seat != Seat(s) || ps.AllHome {
			t.Fatalf("seat %d state = %+v", s, ps)
		}
		for i, m := range ps.Marbles {
			if m.ID != i || m.Seat != Seat(s) || m.Loc != (AtStart{Slot: i}) {
				t.Fatalf("seat %d marble %d = %+v", s, i, m)
			}
		}
		if len(g.Hands[s]) != HandSize {
			t.Fatalf("hand %d size = %d", s, len(g.Hands[s]))
		}
	}
	if g.Deck.Len() != 88 {
		t.Fatalf("deck size = %d, want 88", g.Deck.Len())
	}
	if g.CardsInCirculation() != StockSize {
		t.Fatalf("cards in circulation = %d, want %d", g.CardsInCirculation(), StockSize)
	}
}

func TestConsumeCardConservesStock(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 30; i++ {
		seat := Seat(i % SeatCount)
		g.ConsumeCard(seat, 0)
		if got, want := g.CardsInCirculation(), StockSize-g.Played; got != want {
			t.Fatalf("after %d plays: circulation = %d, want %d", i+1, got, want)
		}
		if len(g.Hands[seat]) != HandSize {
			t.Fatalf("hand not refilled: %d", len(g.Hands[seat]))
		}
	}
}

func TestConsumeCardKeepsOrder(t *testing.T) {
	g := NewGame(NewDeckFromCards([]Rank{Nine}))
	g.Hands[0] = []Rank{Ace, Two, Three}
	card := g.ConsumeCard(0, 1)
	if card != Two {
		t.Fatalf("consumed %s, want 2", card)
	}
	want := []Rank{Ace, Three}
	if len(g.Hands[0]) != len(want) {
		t.Fatalf("hand = %v, want %v", g.Hands[0], want)
	}
	for i := range want {
		if g.Hands[0][i] != want[i] {
			t.Fatalf("hand = %v, want %v", g.Hands[0], want)
		}
	}
}

func TestCheckHand(t *testing.T) {
	g := newTestGame(t)
	g.Hands[1] = []Rank{Seven, Seven, Joker}
	if err := g.CheckHand(1, 1, Seven); err != nil {
		t.Fatalf("CheckHand: %v", err)
	}
	for _, tc := range []struct {
		idx  int
		rank Rank
	}{{2, Seven}, {3, Joker}, {-1, Seven}} {
		if err := g.CheckHand(1, tc.idx, tc.rank); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("CheckHand(%d, %s) err = %v, want invalid move", tc.idx, tc.rank, err)
		}
	}
}

func TestWinningTeam(t *testing.T) {
	g := newTestGame(t)
	if _, ok := g.WinningTeam(); ok {
		t.Fatal("fresh game has a winner")
	}
	for id := 0; id < MarblesPerSeat; id++ {
		place(g, 1, id, InHome{Slot: id})
	}
	if _, ok := g.WinningTeam(); ok {
		t.Fatal("one seat home should not win")
	}
	for id := 0; id < MarblesPerSeat; id++ {
		place(g, 3, id, InHome{Slot: id})
	}
	team, ok := g.WinningTeam()
	if !ok || team != TeamB {
		t.Fatalf("WinningTeam() = %v, %v; want B, true", team, ok)
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t)
	place(g, 0, 1, OnTrack{Local: 9})
	place(g, 3, 4, InHome{Slot: 2})
	g.Turn = 2

	snap := g.Snapshot()
	if snap.Turn != 2 || snap.Phase != PhasePlaying {
		t.Fatalf("snapshot header = %d %s", snap.Turn, snap.Phase)
	}
	if got := snap.Players[0].Marbles[1]; got != (MarbleView{Where: WhereTrack, Index: 9}) {
		t.Fatalf("track marble view = %+v", got)
	}
	if got := snap.Players[3].Marbles[4]; got != (MarbleView{Where: WhereHome, Index: 2}) {
		t.Fatalf("home marble view = %+v", got)
	}
	if got := snap.Players[2].Marbles[0]; got != (MarbleView{Where: WhereStart, Index: 0}) {
		t.Fatalf("start marble view = %+v", got)
	}
}

func TestAdvanceTurnSkipsEmptyHands(t *testing.T) {
	g := NewGame(NewDeckFromCards(nil))
	g.Hands[1] = nil
	g.Hands[2] = []Rank{Two}
	g.AdvanceTurn()
	if g.Turn != 2 {
		t.Fatalf("turn = %d, want 2", g.Turn)
	}

	for s := range g.Hands {
		g.Hands[s] = nil
	}
	g.AdvanceTurn()
	if g.Turn != 2 {
		t.Fatalf("turn moved to %d with every hand empty", g.Turn)
	}
	if !g.Exhausted() {
		t.Fatal("game with no cards not exhausted")
	}
}
