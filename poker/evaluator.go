package poker

import (
	"math/bits"
)

// wheelMask is the A-2-3-4-5 rank pattern.
const wheelMask uint16 = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five

// Evaluate returns the strength of the best five-card hand inside h, which
// must hold 5 to 7 cards. It works on rank masks and never allocates, so it
// is the evaluator used by the simulators. The result is identical to
// BestOf(h.Cards()).Strength.
func Evaluate(h Hand) Strength {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask := h.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}
	return strengthFromMasks(suitMasks, rankMask)
}

func strengthFromMasks(suitMasks [4]uint16, rankMask uint16) Strength {
	// With at most seven cards only one suit can hold five.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if top := straightTop(suitMask); top > 0 {
			if top == 14 {
				return makeStrength(RoyalFlush, 14, 13, 12, 11, 10)
			}
			return makeStrength(StraightFlush, top, top-1, top-2, top-3, top-4)
		}
		r := topRanks(suitMask, 5)
		return makeStrength(Flush, r[0], r[1], r[2], r[3], r[4])
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		kicker := topRanks(rankMask&^(1<<quad), 1)
		return makeStrength(FourOfAKind, RankValue(uint8(quad)), kicker[0])
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		// A second set of trips plays as the pair.
		if pair := highestRank(pairsMask | tripsMask&^(1<<trip)); pair >= 0 {
			return makeStrength(FullHouse, RankValue(uint8(trip)), RankValue(uint8(pair)))
		}
	}

	if top := straightTop(rankMask); top > 0 {
		return makeStrength(Straight, top, top-1, top-2, top-3, top-4)
	}

	if trip := highestRank(tripsMask); trip >= 0 {
		k := topRanks(rankMask&^(1<<trip), 2)
		return makeStrength(ThreeOfAKind, RankValue(uint8(trip)), k[0], k[1])
	}

	if high := highestRank(pairsMask); high >= 0 {
		if low := highestRank(pairsMask &^ (1 << high)); low >= 0 {
			k := topRanks(rankMask&^(1<<high|1<<low), 1)
			return makeStrength(TwoPair, RankValue(uint8(high)), RankValue(uint8(low)), k[0])
		}
		k := topRanks(rankMask&^(1<<high), 3)
		return makeStrength(Pair, RankValue(uint8(high)), k[0], k[1], k[2])
	}

	r := topRanks(rankMask, 5)
	return makeStrength(HighCard, r[0], r[1], r[2], r[3], r[4])
}

// straightTop returns the value of the highest straight's top card in mask,
// 5 for a wheel, or 0 when there is no straight.
func straightTop(mask uint16) int {
	runs := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if runs != 0 {
		low := 15 - bits.LeadingZeros16(runs)
		return RankValue(uint8(low + 4))
	}
	if mask&wheelMask == wheelMask {
		return 5
	}
	return 0
}

// highestRank returns the highest rank set in mask, or -1 when empty.
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return 15 - bits.LeadingZeros16(mask)
}

// topRanks returns the values of the n highest ranks in mask, highest first.
func topRanks(mask uint16, n int) [5]int {
	var out [5]int
	for i := 0; i < n && mask != 0; i++ {
		r := highestRank(mask)
		out[i] = RankValue(uint8(r))
		mask &^= 1 << r
	}
	return out
}
