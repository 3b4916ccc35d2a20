package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

func TestFilterForBoard(t *testing.T) {
	t.Parallel()

	preflop := analysis.MustParseRange("AA,KK,QQ,AKs,JTs,72o,98s")
	board := poker.MustParseCards("Ah7d2c")

	tests := []struct {
		profile Profile
		want    string
	}{
		{Tight, "AA,AKs,72o"},
		{Loose, "AA,KK,QQ,AKs,72o"},
	}

	for _, tc := range tests {
		t.Run(tc.profile.Name, func(t *testing.T) {
			t.Parallel()
			got, err := FilterForBoard(preflop, board, tc.profile)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	assert.Equal(t, 7, preflop.Len(), "input range is not modified")
}

func TestFilterForBoardKeepsDrawsAndWeights(t *testing.T) {
	t.Parallel()

	r := analysis.MustParseRange("JTs:0.5,54o,AsKs")
	got, err := FilterForBoard(r, poker.MustParseCards("9h8h2c"), Tight)
	require.NoError(t, err)
	assert.Equal(t, "JTs:0.5", got.String())

	blocked, err := FilterForBoard(analysis.MustParseRange("AsKs"), poker.MustParseCards("AsKd2c"), Tight)
	require.NoError(t, err)
	assert.True(t, blocked.IsEmpty())

	empty, err := FilterForBoard(nil, poker.MustParseCards("AsKd2c"), Tight)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = FilterForBoard(r, poker.MustParseCards("9h8h"), Tight)
	require.ErrorIs(t, err, poker.ErrInsufficientCards)
}

func TestParseProfile(t *testing.T) {
	t.Parallel()

	p, err := ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, "tight", p.Name)

	p, err = ParseProfile(" LOOSE ")
	require.NoError(t, err)
	assert.True(t, p.Continues(poker.MidWeakPair))
	assert.False(t, Tight.Continues(poker.MidWeakPair))
	assert.False(t, Loose.Continues(poker.NoMadeHand))

	_, err = ParseProfile("maniac")
	require.ErrorIs(t, err, poker.ErrInvalidInput)
}
