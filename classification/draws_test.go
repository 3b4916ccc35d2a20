package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDraws(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hole    string
		board   string
		draws   []DrawType
		outs    int
		nutOuts int
	}{
		{"nut flush draw", "Ah5h", "Kh8h2c", []DrawType{NutFlushDraw, BackdoorStraight}, 9, 9},
		{"king high nut flush draw", "Kh4h", "Ah8h2c", []DrawType{NutFlushDraw, BackdoorStraight}, 9, 9},
		{"flush draw", "9h8h", "Kh2h5c", []DrawType{FlushDraw, BackdoorStraight}, 9, 0},
		{"open ender", "9c8d", "7h6s2c", []DrawType{OpenEndedStraightDraw}, 8, 0},
		{"gutshot with overcards", "9c8d", "6h5s2c", []DrawType{Gutshot, Overcards}, 10, 0},
		{"double gutshot", "Jc8d", "9h7s5c", []DrawType{DoubleGutshot, Overcards}, 11, 0},
		{"combo draw", "JhTh", "9h8h2c", []DrawType{FlushDraw, OpenEndedStraightDraw, ComboDraw}, 15, 0},
		{"backdoor flush", "AhKh", "7h2c3d", []DrawType{BackdoorFlush, BackdoorStraight, Overcards}, 6, 0},
		{"nothing", "2c7d", "KhQsJd", []DrawType{NoDraw}, 0, 0},
		{"turn open ender", "9c8d", "7h6s2cKd", []DrawType{OpenEndedStraightDraw}, 8, 0},
		{"river has no draws", "9c8d", "7h6s2cKdAs", []DrawType{NoDraw}, 0, 0},
		{"preflop has no draws", "9c8d", "", []DrawType{NoDraw}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info := DetectDraws(cards(tc.hole), cards(tc.board))
			assert.Equal(t, tc.draws, info.Draws)
			assert.Equal(t, tc.outs, info.Outs)
			assert.Equal(t, tc.nutOuts, info.NutOuts)
			assert.Equal(t, tc.outs, info.OutCards.CountCards())
			assert.False(t, info.OutCards.Overlaps(cards(tc.hole)|cards(tc.board)), "outs are unseen cards")
		})
	}
}

func TestBoardOnlyStraightIsNotADraw(t *testing.T) {
	t.Parallel()

	// Any nine or four completes the board's straight for everyone.
	info := DetectDraws(cards("2cKd"), cards("8h7s6c5d"))
	assert.False(t, info.Has(OpenEndedStraightDraw))
	assert.False(t, info.Has(Gutshot))
}

func TestDrawInfoMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		draws  []DrawType
		strong bool
		weak   bool
	}{
		{[]DrawType{FlushDraw}, true, false},
		{[]DrawType{NutFlushDraw}, true, false},
		{[]DrawType{OpenEndedStraightDraw}, true, false},
		{[]DrawType{DoubleGutshot}, true, false},
		{[]DrawType{Gutshot}, false, true},
		{[]DrawType{BackdoorFlush, BackdoorStraight}, false, true},
		{[]DrawType{Overcards}, false, true},
		{[]DrawType{FlushDraw, Gutshot}, true, true},
		{[]DrawType{NoDraw}, false, false},
	}

	for _, tc := range tests {
		info := DrawInfo{Draws: tc.draws}
		assert.Equal(t, tc.strong, info.HasStrongDraw(), "%v", tc.draws)
		assert.Equal(t, tc.weak, info.HasWeakDraw(), "%v", tc.draws)
		switch {
		case tc.strong:
			assert.Equal(t, "strong", info.Class())
		case tc.weak:
			assert.Equal(t, "weak", info.Class())
		default:
			assert.Equal(t, "none", info.Class())
		}
	}

	combo := DetectDraws(cards("JhTh"), cards("9h8h2c"))
	assert.True(t, combo.IsComboDraw())
	assert.Equal(t, "flush draw, open-ended straight draw, combo draw", combo.String())
	assert.False(t, DetectDraws(cards("9c8d"), cards("7h6s2c")).IsComboDraw())
}

func TestDrawTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nut flush draw", NutFlushDraw.String())
	assert.Equal(t, "double gutshot", DoubleGutshot.String())
	assert.Equal(t, "backdoor straight", BackdoorStraight.String())
	assert.Equal(t, "unknown", DrawType(42).String())
}
