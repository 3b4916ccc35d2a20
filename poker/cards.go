package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs]
type Card uint64

// Hand is a set of cards, one bit per card. It is used for hole cards,
// boards, dead-card sets, and evaluation input alike.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"

	// FullDeck has every one of the 52 card bits set.
	FullDeck Hand = (1 << 52) - 1
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

// index returns the bit position of the card (0-51), or 255 for the zero card.
func (c Card) index() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12).
func (c Card) Rank() uint8 {
	pos := c.index()
	if pos == 255 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	pos := c.index()
	if pos == 255 {
		return 255
	}
	return pos / 13
}

// Value returns the numeric rank value, 2 through 14 with the Ace high.
func (c Card) Value() int {
	return RankValue(c.Rank())
}

// RankValue converts a 0-12 rank to its 2-14 value.
func RankValue(rank uint8) int {
	return int(rank) + 2
}

// String returns the canonical notation, e.g. "As", "Td".
func (c Card) String() string {
	rank := c.Rank()
	suit := c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// RankChar returns the upper-case notation character for a rank.
func RankChar(rank uint8) byte {
	if rank > 12 {
		return '?'
	}
	return rankChars[rank]
}

// SuitChar returns the lower-case notation character for a suit.
func SuitChar(suit uint8) byte {
	if suit > 3 {
		return '?'
	}
	return suitChars[suit]
}

// ParseRank parses a rank character, case-insensitively.
func ParseRank(c byte) (uint8, bool) {
	switch c {
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	}
	if c >= '2' && c <= '9' {
		return c - '2', true
	}
	return 0, false
}

// ParseSuit parses a suit character, case-insensitively.
func ParseSuit(c byte) (uint8, bool) {
	switch c {
	case 'c', 'C':
		return Clubs, true
	case 'd', 'D':
		return Diamonds, true
	case 'h', 'H':
		return Hearts, true
	case 's', 'S':
		return Spades, true
	default:
		return 0, false
	}
}

// ParseCard parses a two character notation like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q must be two characters", ErrInvalidCardNotation, s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: %q has unknown rank %q", ErrInvalidCardNotation, s, s[0])
	}
	suit, ok := ParseSuit(s[1])
	if !ok {
		return 0, fmt.Errorf("%w: %q has unknown suit %q", ErrInvalidCardNotation, s, s[1])
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses concatenated card notation such as "AsKsQs".
// Spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has odd length %d", ErrInvalidCardNotation, s, len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseCardList parses a list of two character card strings.
func ParseCardList(strs []string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		card, err := ParseCard(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// CheckDistinct returns ErrDuplicateCard if any card appears more than once
// across all groups, either within a group or between groups.
func CheckDistinct(groups ...[]Card) error {
	var seen Hand
	for _, group := range groups {
		for _, card := range group {
			if seen.HasCard(card) {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, card)
			}
			seen.AddCard(card)
		}
	}
	return nil
}

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return (h & Hand(c)) != 0
}

// Overlaps reports whether the two hands share any card.
func (h Hand) Overlaps(other Hand) bool {
	return h&other != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards in the hand, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// GetSuitMask returns the ranks held in one suit as a 13-bit mask.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * 13)) & 0x1FFF)
}

// GetRankMask returns a 13-bit mask of the ranks present in any suit.
func (h Hand) GetRankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}

// String renders the cards highest rank first, e.g. "AsKh".
func (h Hand) String() string {
	cards := h.Cards()
	sortCardsDesc(cards)
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// sortCardsDesc orders cards by rank descending, then suit descending.
func sortCardsDesc(cards []Card) {
	for i := 1; i < len(cards); i++ {
		c := cards[i]
		j := i - 1
		for j >= 0 && less(cards[j], c) {
			cards[j+1] = cards[j]
			j--
		}
		cards[j+1] = c
	}
}

func less(a, b Card) bool {
	if a.Rank() != b.Rank() {
		return a.Rank() < b.Rank()
	}
	return a.Suit() < b.Suit()
}
