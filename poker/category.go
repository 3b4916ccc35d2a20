package poker

import (
	"fmt"
	"math/bits"
)

// HandCategory is a strategic tag describing how a hole-card pair connects
// with a board.
type HandCategory string

const (
	NutMadeHand      HandCategory = "NUT_MADE_HAND"
	Set              HandCategory = "SET"
	Trips            HandCategory = "TRIPS"
	BothCardsTwoPair HandCategory = "TWO_PAIR"
	OneCardTwoPair   HandCategory = "ONE_CARD_TWO_PAIR"
	Overpair         HandCategory = "OVERPAIR"
	TopPair          HandCategory = "TOP_PAIR"
	MidWeakPair      HandCategory = "MID_WEAK_PAIR"
	FlushDraw        HandCategory = "FLUSH_DRAW"
	StraightDraw     HandCategory = "STRAIGHT_DRAW"
	NoMadeHand       HandCategory = "NO_MADE_HAND_OR_DRAW"
)

// HandCategories lists every tag from strongest to weakest.
var HandCategories = []HandCategory{
	NutMadeHand, Set, Trips, BothCardsTwoPair, OneCardTwoPair, Overpair,
	TopPair, MidWeakPair, FlushDraw, StraightDraw, NoMadeHand,
}

// Categorize tags two hole cards against a board of three or more cards.
//
// Made hands are checked first, strongest to weakest. Draws are only
// considered when nothing is made: four cards of one suit is a flush draw,
// and four ranks inside any five-rank window is a straight draw (open-ended
// or gutshot alike). Aces count high only for draws.
func Categorize(hole, board []Card) (HandCategory, error) {
	if len(hole) != 2 {
		return "", fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(board) < 3 {
		return "", fmt.Errorf("%w: board needs at least 3 cards, got %d", ErrInsufficientCards, len(board))
	}
	if len(board) > 5 {
		return "", fmt.Errorf("%w: board has %d cards", ErrInvalidInput, len(board))
	}
	if err := CheckDistinct(hole, board); err != nil {
		return "", err
	}

	all := NewHand(board...)
	boardRanks := all.GetRankMask()
	all |= NewHand(hole...)

	h1, h2 := hole[0].Rank(), hole[1].Rank()
	pocket := h1 == h2

	switch Evaluate(all).Category() {
	case RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush, Straight:
		return NutMadeHand, nil
	case ThreeOfAKind:
		if pocket {
			return Set, nil
		}
		return Trips, nil
	case TwoPair:
		if boardRanks&(1<<h1) != 0 && boardRanks&(1<<h2) != 0 {
			return BothCardsTwoPair, nil
		}
		return OneCardTwoPair, nil
	case Pair:
		top := uint8(highestRank(boardRanks))
		if pocket && h1 > top {
			return Overpair, nil
		}
		if max(h1, h2) == top {
			return TopPair, nil
		}
		return MidWeakPair, nil
	}

	for suit := uint8(0); suit < 4; suit++ {
		if bits.OnesCount16(all.GetSuitMask(suit)) == 4 {
			return FlushDraw, nil
		}
	}
	if hasStraightDraw(all.GetRankMask()) {
		return StraightDraw, nil
	}
	return NoMadeHand, nil
}

// hasStraightDraw reports whether four distinct ranks sit inside a window of
// five consecutive ranks.
func hasStraightDraw(ranks uint16) bool {
	for low := 0; low+4 <= int(Ace); low++ {
		window := ranks >> low & 0x1F
		if bits.OnesCount16(window) >= 4 {
			return true
		}
	}
	return false
}
