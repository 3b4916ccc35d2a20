package classification

import (
	"math/bits"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// DrawType represents the types of draws a hand can have.
type DrawType int

const (
	FlushDraw DrawType = iota
	NutFlushDraw
	OpenEndedStraightDraw
	Gutshot
	DoubleGutshot
	ComboDraw
	BackdoorFlush
	BackdoorStraight
	Overcards
	NoDraw
)

func (dt DrawType) String() string {
	switch dt {
	case FlushDraw:
		return "flush draw"
	case NutFlushDraw:
		return "nut flush draw"
	case OpenEndedStraightDraw:
		return "open-ended straight draw"
	case Gutshot:
		return "gutshot"
	case DoubleGutshot:
		return "double gutshot"
	case ComboDraw:
		return "combo draw"
	case BackdoorFlush:
		return "backdoor flush"
	case BackdoorStraight:
		return "backdoor straight"
	case Overcards:
		return "overcards"
	case NoDraw:
		return "no draw"
	default:
		return "unknown"
	}
}

// MarshalText renders the draw by name.
func (dt DrawType) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// DrawInfo lists the draws a hand holds and the cards that improve it.
type DrawInfo struct {
	Draws    []DrawType `json:"draws"`
	Outs     int        `json:"outs"`
	NutOuts  int        `json:"nut_outs"`
	OutCards poker.Hand `json:"-"`
}

// Has reports whether the hand holds the given draw.
func (d DrawInfo) Has(dt DrawType) bool {
	for _, draw := range d.Draws {
		if draw == dt {
			return true
		}
	}
	return false
}

// HasStrongDraw reports a flush draw, an open-ender, a double gutshot or a
// combination of draws.
func (d DrawInfo) HasStrongDraw() bool {
	for _, draw := range d.Draws {
		switch draw {
		case FlushDraw, NutFlushDraw, OpenEndedStraightDraw, DoubleGutshot, ComboDraw:
			return true
		}
	}
	return false
}

// HasWeakDraw reports a gutshot, a backdoor draw or overcards.
func (d DrawInfo) HasWeakDraw() bool {
	for _, draw := range d.Draws {
		switch draw {
		case Gutshot, BackdoorFlush, BackdoorStraight, Overcards:
			return true
		}
	}
	return false
}

// IsComboDraw reports two or more draws with at least twelve outs.
func (d DrawInfo) IsComboDraw() bool {
	return d.Has(ComboDraw)
}

// Class returns "strong", "weak" or "none".
func (d DrawInfo) Class() string {
	switch {
	case d.HasStrongDraw():
		return "strong"
	case d.HasWeakDraw():
		return "weak"
	}
	return "none"
}

func (d DrawInfo) String() string {
	names := make([]string, len(d.Draws))
	for i, draw := range d.Draws {
		names[i] = draw.String()
	}
	return strings.Join(names, ", ")
}

// DetectDraws finds the draws two hole cards hold on a flop or turn board.
// A draw needs at least one hole card to take part in it; improvements the
// board makes on its own are not counted. Outs are counted once even when
// they complete more than one draw. A river board has no cards to come and
// reports NoDraw.
func DetectDraws(hole, board poker.Hand) DrawInfo {
	n := board.CountCards()
	if n < 3 || n > 4 {
		return DrawInfo{Draws: []DrawType{NoDraw}}
	}

	all := hole | board
	var (
		draws []DrawType
		outs  poker.Hand
		nuts  poker.Hand
	)

	flush := detectFlushDraw(hole, board)
	if flush.ok {
		if flush.nut {
			draws = append(draws, NutFlushDraw)
			nuts |= flush.outs
		} else {
			draws = append(draws, FlushDraw)
		}
		outs |= flush.outs
	}

	straight := detectStraightDraw(hole, board)
	if straight.draw != NoDraw {
		draws = append(draws, straight.draw)
		outs |= straight.outs
	}

	if n == 3 {
		if !flush.ok && hasBackdoorFlush(hole, board) {
			draws = append(draws, BackdoorFlush)
		}
		if straight.draw == NoDraw && hasBackdoorStraight(hole, board) {
			draws = append(draws, BackdoorStraight)
		}
	}

	if !flush.ok && straight.draw != OpenEndedStraightDraw {
		if over := overcardOuts(hole, board, all); over != 0 {
			draws = append(draws, Overcards)
			outs |= over
		}
	}

	total := outs.CountCards()
	if len(draws) >= 2 && total >= 12 {
		draws = append(draws, ComboDraw)
	}
	if len(draws) == 0 {
		draws = []DrawType{NoDraw}
	}
	return DrawInfo{
		Draws:    draws,
		Outs:     total,
		NutOuts:  nuts.CountCards(),
		OutCards: outs,
	}
}

type flushDraw struct {
	ok   bool
	nut  bool
	outs poker.Hand
}

// detectFlushDraw looks for exactly four cards of a suit with at least one
// in the hole. The draw is to the nuts when the hole holds the best card of
// the suit that is not on the board.
func detectFlushDraw(hole, board poker.Hand) flushDraw {
	for suit := range uint8(4) {
		holeMask := hole.GetSuitMask(suit)
		boardMask := board.GetSuitMask(suit)
		if holeMask == 0 || bits.OnesCount16(holeMask|boardMask) != 4 {
			continue
		}
		missing := allRanks &^ boardMask
		best := uint16(1) << (bits.Len16(missing) - 1)
		return flushDraw{
			ok:   true,
			nut:  holeMask&best != 0,
			outs: poker.Hand(allRanks&^(holeMask|boardMask)) << (suit * 13),
		}
	}
	return flushDraw{}
}

type straightDraw struct {
	draw DrawType
	outs poker.Hand
}

// detectStraightDraw finds the ranks that would complete a straight the
// hole cards help make. Two out ranks around four consecutive ranks are an
// open-ender; two out ranks otherwise are a double gutshot; one is a
// gutshot.
func detectStraightDraw(hole, board poker.Hand) straightDraw {
	all := hole | board
	ranks := all.GetRankMask()
	boardRanks := board.GetRankMask()
	if makesStraight(ranks) {
		return straightDraw{draw: NoDraw}
	}

	var outRanks uint16
	for r := range uint8(13) {
		bit := uint16(1) << r
		if ranks&bit != 0 {
			continue
		}
		if makesStraight(ranks|bit) && !makesStraight(boardRanks|bit) {
			outRanks |= bit
		}
	}

	var outs poker.Hand
	for m := outRanks; m != 0; m &= m - 1 {
		r := uint8(bits.TrailingZeros16(m))
		for suit := range uint8(4) {
			if c := poker.NewCard(r, suit); !all.HasCard(c) {
				outs.AddCard(c)
			}
		}
	}

	switch bits.OnesCount16(outRanks) {
	case 0:
		return straightDraw{draw: NoDraw}
	case 1:
		return straightDraw{draw: Gutshot, outs: outs}
	}
	if longestRun(withLowAce(ranks)) >= 4 {
		return straightDraw{draw: OpenEndedStraightDraw, outs: outs}
	}
	return straightDraw{draw: DoubleGutshot, outs: outs}
}

// makesStraight reports five consecutive ranks, counting the wheel.
func makesStraight(ranks uint16) bool {
	return longestRun(withLowAce(ranks)) >= 5
}

// hasBackdoorFlush reports exactly three cards of a suit on the flop with at
// least one from the hole.
func hasBackdoorFlush(hole, board poker.Hand) bool {
	for suit := range uint8(4) {
		holeMask := hole.GetSuitMask(suit)
		if holeMask != 0 && bits.OnesCount16(holeMask|board.GetSuitMask(suit)) == 3 {
			return true
		}
	}
	return false
}

// hasBackdoorStraight reports three ranks inside a five-rank window, one of
// them from the hole, so that a turn and river card could complete it.
func hasBackdoorStraight(hole, board poker.Hand) bool {
	ranks := withLowAce((hole | board).GetRankMask())
	holeRanks := withLowAce(hole.GetRankMask())
	for low := 0; low <= 9; low++ {
		window := uint16(0x1F) << low
		if bits.OnesCount16(ranks&window) >= 3 && holeRanks&window != 0 {
			return true
		}
	}
	return false
}

// overcardOuts returns the unseen cards matching hole cards ranked above
// every board card.
func overcardOuts(hole, board, used poker.Hand) poker.Hand {
	top := bits.Len16(board.GetRankMask()) - 1
	var outs poker.Hand
	for m := hole.GetRankMask(); m != 0; m &= m - 1 {
		r := bits.TrailingZeros16(m)
		if r <= top {
			continue
		}
		for suit := range uint8(4) {
			if c := poker.NewCard(uint8(r), suit); !used.HasCard(c) {
				outs.AddCard(c)
			}
		}
	}
	return outs
}
