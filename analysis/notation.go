// Package analysis provides weighted hand ranges, opponent hand samplers and
// Monte Carlo equity estimation built on the bit-packed poker.Hand type.
package analysis

import (
	"fmt"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// Kind identifies the shape of a hand notation.
type Kind uint8

const (
	KindPair     Kind = iota // "AA"
	KindSuited               // "AKs"
	KindOffsuit              // "AKo"
	KindSpecific             // "AsKh"
)

// Notation is one hand class of a range. High and Low are ranks (0-12);
// for a specific combo Cards holds both cards, higher rank first.
type Notation struct {
	High, Low uint8
	Kind      Kind
	Cards     [2]poker.Card
}

// ParseNotation parses a single hand class: a pocket pair ("TT"), a suited
// or offsuit hand ("AKs", "T9o") or a concrete combo ("AsKh"). Rank letters
// are case-insensitive and the higher rank is moved first, so "kas" parses
// as "AKs".
func ParseNotation(token string) (Notation, error) {
	token = strings.TrimSpace(token)
	fail := func(reason string) (Notation, error) {
		return Notation{}, fmt.Errorf("%w: %q %s", poker.ErrInvalidRangeNotation, token, reason)
	}

	switch len(token) {
	case 2, 3:
	case 4:
		return parseSpecific(token)
	default:
		return fail("must be 2 to 4 characters")
	}

	r1, ok1 := poker.ParseRank(token[0])
	r2, ok2 := poker.ParseRank(token[1])
	if !ok1 || !ok2 {
		return fail("has an unknown rank")
	}
	high, low := max(r1, r2), min(r1, r2)

	if high == low {
		if len(token) == 3 {
			return fail("pairs take no suited or offsuit suffix")
		}
		return Notation{High: high, Low: low, Kind: KindPair}, nil
	}
	if len(token) == 2 {
		return fail("needs an s or o suffix")
	}
	switch token[2] {
	case 's', 'S':
		return Notation{High: high, Low: low, Kind: KindSuited}, nil
	case 'o', 'O':
		return Notation{High: high, Low: low, Kind: KindOffsuit}, nil
	}
	return fail("has an unknown suffix")
}

func parseSpecific(token string) (Notation, error) {
	cards, err := poker.ParseCards(token)
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q: %w", poker.ErrInvalidRangeNotation, token, err)
	}
	if cards[0] == cards[1] {
		return Notation{}, fmt.Errorf("%w: %q repeats a card", poker.ErrInvalidRangeNotation, token)
	}
	return specificNotation(cards[0], cards[1]), nil
}

func specificNotation(a, b poker.Card) Notation {
	if a.Rank() < b.Rank() || (a.Rank() == b.Rank() && a.Suit() < b.Suit()) {
		a, b = b, a
	}
	return Notation{High: a.Rank(), Low: b.Rank(), Kind: KindSpecific, Cards: [2]poker.Card{a, b}}
}

// NotationOf returns the pair, suited or offsuit class a two-card hand belongs to.
func NotationOf(hand poker.Hand) Notation {
	cards := hand.Cards()
	if len(cards) != 2 {
		return Notation{}
	}
	a, b := cards[0], cards[1]
	high, low := max(a.Rank(), b.Rank()), min(a.Rank(), b.Rank())
	switch {
	case high == low:
		return Notation{High: high, Low: low, Kind: KindPair}
	case a.Suit() == b.Suit():
		return Notation{High: high, Low: low, Kind: KindSuited}
	default:
		return Notation{High: high, Low: low, Kind: KindOffsuit}
	}
}

// String returns the canonical notation.
func (n Notation) String() string {
	if n.Kind == KindSpecific {
		return n.Cards[0].String() + n.Cards[1].String()
	}
	s := string(poker.RankChar(n.High)) + string(poker.RankChar(n.Low))
	switch n.Kind {
	case KindSuited:
		s += "s"
	case KindOffsuit:
		s += "o"
	}
	return s
}

// ComboCount returns how many concrete two-card hands the notation covers.
func (n Notation) ComboCount() int {
	switch n.Kind {
	case KindPair:
		return 6
	case KindSuited:
		return 4
	case KindOffsuit:
		return 12
	default:
		return 1
	}
}

// Combos expands the notation into its concrete two-card hands.
func (n Notation) Combos() []poker.Hand {
	combos := make([]poker.Hand, 0, n.ComboCount())
	switch n.Kind {
	case KindPair:
		for s1 := range uint8(4) {
			for s2 := s1 + 1; s2 < 4; s2++ {
				combos = append(combos, poker.NewHand(poker.NewCard(n.High, s1), poker.NewCard(n.High, s2)))
			}
		}
	case KindSuited:
		for s := range uint8(4) {
			combos = append(combos, poker.NewHand(poker.NewCard(n.High, s), poker.NewCard(n.Low, s)))
		}
	case KindOffsuit:
		for s1 := range uint8(4) {
			for s2 := range uint8(4) {
				if s1 != s2 {
					combos = append(combos, poker.NewHand(poker.NewCard(n.High, s1), poker.NewCard(n.Low, s2)))
				}
			}
		}
	case KindSpecific:
		combos = append(combos, poker.NewHand(n.Cards[0], n.Cards[1]))
	}
	return combos
}

// Pair reports whether the notation is a pocket pair.
func (n Notation) Pair() bool {
	return n.High == n.Low
}

// Suited reports whether both cards share a suit.
func (n Notation) Suited() bool {
	if n.Kind == KindSpecific {
		return n.Cards[0].Suit() == n.Cards[1].Suit()
	}
	return n.Kind == KindSuited
}

// Strength is a coarse 0-1 preflop estimate: pocket pairs score
// (rank+1)/13, other hands score their high rank/13 with a 10% bonus when
// suited, capped at 1.
func (n Notation) Strength() float64 {
	if n.Pair() {
		return float64(n.High+1) / 13
	}
	s := float64(n.High) / 13
	if n.Suited() {
		s *= 1.1
	}
	return min(s, 1)
}

// Tier buckets the notation into a preflop starting-hand tier.
func (n Notation) Tier() poker.StartingHandTier {
	return poker.ClassifyRanks(n.High, n.Low, n.Suited())
}
