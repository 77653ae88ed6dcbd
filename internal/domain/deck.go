package domain

const (
	// CopiesPerRank is how many of each standard rank the stock holds.
	CopiesPerRank = 8
	// JokerCount is how many jokers the stock holds.
	JokerCount = 4
	// StockSize is the full card count of a fresh stock.
	StockSize = StandardRankCount*CopiesPerRank + JokerCount
	// HandSize is the number of cards a hand is dealt and refilled to.
	HandSize = 5
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck is the shared draw pile. The top of the deck is the end of the slice.
type Deck struct {
	cards []Rank
}

// NewStock returns the 108 cards of a fresh stock in deck order.
func NewStock() []Rank {
	stock := make([]Rank, 0, StockSize)
	for _, r := range StandardRanks {
		for i := 0; i < CopiesPerRank; i++ {
			stock = append(stock, r)
		}
	}
	for i := 0; i < JokerCount; i++ {
		stock = append(stock, Joker)
	}
	return stock
}

// NewDeck builds a fresh stock and shuffles it with s. A nil shuffler leaves deck order.
func NewDeck(s Shuffler) *Deck {
	cards := NewStock()
	if s != nil {
		s.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	}
	return &Deck{cards: cards}
}

// NewDeckFromCards builds a deck whose top card is the last element of cards.
func NewDeckFromCards(cards []Rank) *Deck {
	return &Deck{cards: append([]Rank(nil), cards...)}
}

// Len is the number of cards left to draw.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Draw pops the top card.
func (d *Deck) Draw() (Rank, bool) {
	if len(d.cards) == 0 {
		return RankInvalid, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

// Refill tops hand up to HandSize until the deck runs out.
func (d *Deck) Refill(hand []Rank) []Rank {
	for len(hand) < HandSize {
		card, ok := d.Draw()
		if !ok {
			break
		}
		hand = append(hand, card)
	}
	return hand
}

// Deal fills every hand, seat by seat.
func (d *Deck) Deal(hands *[SeatCount][]Rank) {
	for s := range hands {
		hands[s] = d.Refill(hands[s])
	}
}
