// Package classification sorts hands and ranges against a board: board
// texture, draw detection, strategic range partitions and board-based range
// filtering.
package classification

import (
	"math/bits"

	"github.com/lox/pokerequity/poker"
)

// BoardTexture represents the "wetness" of a board from dry to very wet.
type BoardTexture int

const (
	Dry BoardTexture = iota
	SemiWet
	Wet
	VeryWet
)

func (bt BoardTexture) String() string {
	switch bt {
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

// MarshalText renders the texture by name.
func (bt BoardTexture) MarshalText() ([]byte, error) {
	return []byte(bt.String()), nil
}

// FlushInfo describes how many cards of one suit the board shows.
type FlushInfo struct {
	MaxSuitCount int    `json:"max_suit_count"`
	DominantSuit string `json:"dominant_suit,omitempty"`
	Monotone     bool   `json:"monotone"`
	Rainbow      bool   `json:"rainbow"`
}

// StraightInfo describes how connected the board's ranks are.
type StraightInfo struct {
	Connected int  `json:"connected"` // longest run of consecutive ranks, ace high or low
	Gaps      int  `json:"gaps"`
	HasAce    bool `json:"has_ace"`
	Broadway  int  `json:"broadway"` // distinct ranks from ten to ace
}

// Texture is the full board reading behind a BoardTexture grade.
type Texture struct {
	Wetness   BoardTexture `json:"wetness"`
	Flush     FlushInfo    `json:"flush"`
	Straight  StraightInfo `json:"straight"`
	Paired    bool         `json:"paired"`
	HighCards int          `json:"high_cards"`
}

const (
	broadwayMask  uint16 = 0x1F00 // T through A
	allRanks      uint16 = 0x1FFF
	wheelLowRanks uint16 = 0x000F // 2 through 5
)

// AnalyzeBoardTexture grades how coordinated a board is.
func AnalyzeBoardTexture(board poker.Hand) BoardTexture {
	return AnalyzeTexture(board).Wetness
}

// AnalyzeTexture reads flush and straight potential, pairing and high-card
// concentration from a board and scores them into a wetness grade. Boards
// of fewer than three cards are always dry.
func AnalyzeTexture(board poker.Hand) Texture {
	t := Texture{
		Flush:    AnalyzeFlushPotential(board),
		Straight: AnalyzeStraightPotential(board),
	}
	n := board.CountCards()
	t.Paired = bits.OnesCount16(board.GetRankMask()) < n
	for suit := range uint8(4) {
		t.HighCards += bits.OnesCount16(board.GetSuitMask(suit) & broadwayMask)
	}
	if n < 3 {
		return t
	}

	var wetness int
	switch {
	case t.Flush.Monotone, t.Flush.MaxSuitCount >= 4:
		wetness += 4
	case t.Flush.MaxSuitCount == 3:
		wetness += 3
	case t.Flush.MaxSuitCount == 2:
		wetness++
	}
	switch {
	case t.Straight.Connected >= 4:
		wetness += 4
	case t.Straight.Connected == 3:
		wetness += 3
	case t.Straight.Connected == 2:
		wetness++
	}
	if t.Paired {
		wetness++
	}
	if t.HighCards >= 3 {
		wetness++
	}

	switch {
	case wetness <= 0:
		t.Wetness = Dry
	case wetness <= 3:
		t.Wetness = SemiWet
	case wetness <= 5:
		t.Wetness = Wet
	default:
		t.Wetness = VeryWet
	}
	return t
}

// AnalyzeFlushPotential counts the board's suits. When two suits tie on
// count, the one holding the higher card dominates.
func AnalyzeFlushPotential(board poker.Hand) FlushInfo {
	var info FlushInfo
	best, bestTop, suits := -1, -1, 0
	for suit := 3; suit >= 0; suit-- {
		mask := board.GetSuitMask(uint8(suit))
		count := bits.OnesCount16(mask)
		if count == 0 {
			continue
		}
		suits++
		top := bits.Len16(mask) - 1
		if count > info.MaxSuitCount || (count == info.MaxSuitCount && top > bestTop) {
			info.MaxSuitCount = count
			best, bestTop = suit, top
		}
	}
	if best >= 0 {
		info.DominantSuit = string(poker.SuitChar(uint8(best)))
	}
	n := board.CountCards()
	info.Monotone = suits == 1 && n >= 3
	info.Rainbow = suits == n && n >= 3
	return info
}

// AnalyzeStraightPotential measures the longest run of consecutive ranks
// and the total gap between the distinct ranks present. The ace plays low
// only when at least two of 2 through 5 are on the board.
func AnalyzeStraightPotential(board poker.Hand) StraightInfo {
	ranks := board.GetRankMask() & allRanks
	if ranks == 0 {
		return StraightInfo{}
	}
	info := StraightInfo{
		HasAce:   ranks&(1<<poker.Ace) != 0,
		Broadway: bits.OnesCount16(ranks & broadwayMask),
	}
	if bits.OnesCount16(ranks&wheelLowRanks) >= 2 {
		info.Connected = longestRun(withLowAce(ranks))
	} else {
		info.Connected = longestRun(ranks)
	}

	prev := -1
	for m := ranks; m != 0; m &= m - 1 {
		r := bits.TrailingZeros16(m)
		if prev >= 0 {
			info.Gaps += r - prev - 1
		}
		prev = r
	}
	return info
}

// withLowAce shifts a rank mask up one bit and mirrors the ace into bit 0,
// so the wheel appears as five consecutive bits.
func withLowAce(ranks uint16) uint16 {
	ext := ranks << 1
	if ranks&(1<<poker.Ace) != 0 {
		ext |= 1
	}
	return ext
}

func longestRun(m uint16) int {
	n := 0
	for ; m != 0; m &= m >> 1 {
		n++
	}
	return n
}
