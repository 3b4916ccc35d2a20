package poker

import (
	"fmt"
	"strings"
)

// Category enumerates the hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the readable name of the category.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Strength totally orders evaluated hands. Higher is stronger.
//
// Bits 20+ hold the category; the five nibbles below hold the defining rank
// values (2-14, or 1 for the Ace of a wheel) in comparison order, most
// significant first. Any hand of a higher category therefore outranks every
// hand of a lower one.
type Strength uint32

const categoryShift = 20

// makeStrength packs a category and up to five rank values.
func makeStrength(cat Category, ranks ...int) Strength {
	s := Strength(cat) << categoryShift
	shift := 16
	for _, r := range ranks {
		s |= Strength(r&0xF) << shift
		shift -= 4
	}
	return s
}

// Category returns the hand category encoded in the strength.
func (s Strength) Category() Category {
	return Category(s >> categoryShift)
}

// String returns the category name.
func (s Strength) String() string {
	return s.Category().String()
}

// EvaluatedHand is the result of ranking a set of cards.
type EvaluatedHand struct {
	Category Category
	Strength Strength
	// Cards holds the five cards realising the hand, defining groups first
	// and kickers after, each part highest rank first.
	Cards [5]Card
	// Kickers lists the defining rank values in comparison order, e.g. pair
	// rank then the three side cards for a pair.
	Kickers []int
}

// String returns a string representation of the hand
func (h EvaluatedHand) String() string {
	parts := make([]string, len(h.Cards))
	for i, card := range h.Cards {
		parts[i] = card.String()
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(parts, " "))
}

// Evaluate5 ranks exactly five cards.
func Evaluate5(cards []Card) (EvaluatedHand, error) {
	if len(cards) != 5 {
		return EvaluatedHand{}, fmt.Errorf("%w: need exactly 5 cards, got %d", ErrInvalidInput, len(cards))
	}
	if err := CheckDistinct(cards); err != nil {
		return EvaluatedHand{}, err
	}
	var five [5]Card
	copy(five[:], cards)
	return evaluate5(five), nil
}

// BestOf returns the strongest five-card hand that can be made from 5-7 cards.
// All C(n,5) subsets are ranked; subsets with equal strength are
// interchangeable and the first one found is kept.
func BestOf(cards []Card) (EvaluatedHand, error) {
	switch {
	case len(cards) < 5:
		return EvaluatedHand{}, fmt.Errorf("%w: need at least 5 cards, got %d", ErrInsufficientCards, len(cards))
	case len(cards) > 7:
		return EvaluatedHand{}, fmt.Errorf("%w: at most 7 cards, got %d", ErrInvalidInput, len(cards))
	}
	if err := CheckDistinct(cards); err != nil {
		return EvaluatedHand{}, err
	}

	var best EvaluatedHand
	found := false
	n := len(cards)
	var five [5]Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						hand := evaluate5(five)
						if !found || hand.Strength > best.Strength {
							best = hand
							found = true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// evaluate5 ranks five distinct cards.
func evaluate5(cards [5]Card) EvaluatedHand {
	var counts [13]int
	for _, c := range cards {
		counts[c.Rank()]++
	}

	// Group order: larger groups first, then higher rank.
	sorted := cards
	for i := 1; i < 5; i++ {
		c := sorted[i]
		j := i - 1
		for j >= 0 && groupLess(sorted[j], c, &counts) {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = c
	}

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit() != sorted[0].Suit() {
			flush = false
			break
		}
	}

	distinct := 0
	maxCount := 0
	pairs := 0
	for _, n := range counts {
		if n > 0 {
			distinct++
		}
		if n > maxCount {
			maxCount = n
		}
		if n == 2 {
			pairs++
		}
	}

	straight := false
	if distinct == 5 {
		hi, lo := sorted[0].Value(), sorted[4].Value()
		switch {
		case hi-lo == 4:
			straight = true
		case hi == 14 && sorted[1].Value() == 5:
			// Wheel: the Ace plays low and moves to the end.
			straight = true
			sorted = [5]Card{sorted[1], sorted[2], sorted[3], sorted[4], sorted[0]}
		}
	}

	var cat Category
	switch {
	case straight && flush && sorted[4].Value() == 10:
		cat = RoyalFlush
	case straight && flush:
		cat = StraightFlush
	case maxCount == 4:
		cat = FourOfAKind
	case maxCount == 3 && pairs == 1:
		cat = FullHouse
	case flush:
		cat = Flush
	case straight:
		cat = Straight
	case maxCount == 3:
		cat = ThreeOfAKind
	case pairs == 2:
		cat = TwoPair
	case pairs == 1:
		cat = Pair
	default:
		cat = HighCard
	}

	kickers := definingRanks(cat, sorted)
	return EvaluatedHand{
		Category: cat,
		Strength: makeStrength(cat, kickers...),
		Cards:    sorted,
		Kickers:  kickers,
	}
}

// groupLess orders a before b when a belongs to a smaller rank group, or the
// same group size at a lower rank, or the same rank in a lower suit.
func groupLess(a, b Card, counts *[13]int) bool {
	ca, cb := counts[a.Rank()], counts[b.Rank()]
	if ca != cb {
		return ca < cb
	}
	if a.Rank() != b.Rank() {
		return a.Rank() < b.Rank()
	}
	return a.Suit() < b.Suit()
}
