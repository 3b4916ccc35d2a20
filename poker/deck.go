package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is a pool of distinct cards drawn without replacement.
type Deck struct {
	cards [52]Card // Fixed size array
	size  int
	next  int
	rng   *rand.Rand
}

// NewDeck creates a full shuffled 52-card deck.
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckExcluding(rng, 0)
}

// NewDeckExcluding creates a shuffled deck holding every card not in dead.
func NewDeckExcluding(rng *rand.Rand, dead Hand) *Deck {
	d := &Deck{rng: rng}
	d.Reset(dead)
	return d
}

// Reset refills the deck with every card not in dead and reshuffles it.
func (d *Deck) Reset(dead Hand) {
	d.size = 0
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			card := NewCard(rank, suit)
			if dead.HasCard(card) {
				continue
			}
			d.cards[d.size] = card
			d.size++
		}
	}
	d.Shuffle()
}

// Shuffle returns every dealt card to the pool. Cards are picked at random
// as they are dealt (an incremental Fisher-Yates), so only the dealt prefix
// is ever permuted.
func (d *Deck) Shuffle() {
	d.next = 0
}

// pick moves a uniformly chosen undealt card into the next dealt slot.
func (d *Deck) pick() {
	j := d.next + d.rng.IntN(d.size-d.next)
	d.cards[d.next], d.cards[j] = d.cards[j], d.cards[d.next]
}

// Deal deals n cards from the deck. The returned slice aliases the deck and
// is only valid until the next Reset or Shuffle.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > d.size {
		return nil, fmt.Errorf("%w: need %d cards, %d remaining", ErrInsufficientCards, n, d.CardsRemaining())
	}
	start := d.next
	for range n {
		d.pick()
		d.next++
	}
	return d.cards[start:d.next], nil
}

// DealOne deals a single card from the deck.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= d.size {
		return 0, fmt.Errorf("%w: deck exhausted", ErrInsufficientCards)
	}
	d.pick()
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return d.size - d.next
}
