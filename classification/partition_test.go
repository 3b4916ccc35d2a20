package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

func TestPartition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rng   string
		board string
		want  map[Bucket]float64
		total int
	}{
		{"overpair is value", "AA", "Kh7d2c", map[Bucket]float64{BucketValue: 100}, 6},
		{"underpair is marginal", "QQ", "Kh7d2c", map[Bucket]float64{BucketMarginal: 100}, 6},
		{"top pair skips blocked combos", "AKs", "Ah7d2c", map[Bucket]float64{BucketValue: 100}, 3},
		{"draws split by suit", "JTs", "9h8h2c", map[Bucket]float64{BucketFlushDraw: 25, BucketStraightDraw: 75}, 4},
		{"air", "72o", "AhKdQc", map[Bucket]float64{BucketAir: 100}, 12},
		{"rounded thirds", "AsAd,KsKd,QsQd", "Kh7d2c", map[Bucket]float64{BucketValue: 66.67, BucketMarginal: 33.33}, 3},
		{"zero weight skipped", "AA,KK:0", "Qh7d2c", map[Bucket]float64{BucketValue: 100}, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result, err := Partition(analysis.MustParseRange(tc.rng), poker.MustParseCards(tc.board))
			require.NoError(t, err)
			assert.Equal(t, tc.total, result.Total)
			for _, b := range Buckets {
				assert.InDelta(t, tc.want[b], result.Percentages[b], 1e-9, b)
			}
		})
	}
}

func TestPartitionSumsToHundred(t *testing.T) {
	t.Parallel()

	r := analysis.MustParseRange("22+,A2s+,K9s+,QTs+,JTs,T9s,98s,87s,76s,ATo+,KJo+")
	for _, board := range []string{"Ah7d2c", "9h8h2c", "KsQsJs", "5c4d3h2s", "TdTc6h6s2c"} {
		result, err := Partition(r, poker.MustParseCards(board))
		require.NoError(t, err)

		var sum float64
		counted := 0
		for _, b := range Buckets {
			sum += result.Percentages[b]
			counted += result.Counts[b]
		}
		assert.InDelta(t, 100, sum, 0.05, board)
		assert.Equal(t, result.Total, counted, board)

		categorised := 0
		for _, n := range result.Categories {
			categorised += n
		}
		assert.Equal(t, result.Total, categorised, board)
	}
}

func TestPartitionCounts(t *testing.T) {
	t.Parallel()

	result, err := Partition(analysis.MustParseRange("JTs,AA"), poker.MustParseCards("9h8h2c"))
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 6, result.Counts[BucketValue])
	assert.Equal(t, 1, result.Categories[poker.FlushDraw])
	assert.Equal(t, 3, result.Categories[poker.StraightDraw])
	assert.Equal(t, 6, result.Categories[poker.Overpair])
	assert.Equal(t, SemiWet, result.Texture.Wetness)
}

func TestPartitionBlockedRange(t *testing.T) {
	t.Parallel()

	for _, r := range []*analysis.Range{analysis.MustParseRange("AsKs"), analysis.MustParseRange(""), nil} {
		result, err := Partition(r, poker.MustParseCards("AsKd2c"))
		require.NoError(t, err)
		assert.Zero(t, result.Total)
		require.Len(t, result.Percentages, len(Buckets))
		for _, b := range Buckets {
			assert.Zero(t, result.Percentages[b])
		}
	}
}

func TestPartitionRejectsBadBoards(t *testing.T) {
	t.Parallel()

	r := analysis.MustParseRange("AA")
	_, err := Partition(r, poker.MustParseCards("AhKd"))
	require.ErrorIs(t, err, poker.ErrInsufficientCards)

	_, err = Partition(r, nil)
	require.ErrorIs(t, err, poker.ErrInsufficientCards)

	_, err = Partition(r, poker.MustParseCards("AhKdQc2s3s4s"))
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = Partition(r, poker.MustParseCards("AhKdAh"))
	require.ErrorIs(t, err, poker.ErrDuplicateCard)
}

func TestBucketFor(t *testing.T) {
	t.Parallel()

	want := map[poker.HandCategory]Bucket{
		poker.NutMadeHand:      BucketValue,
		poker.Set:              BucketValue,
		poker.Trips:            BucketValue,
		poker.BothCardsTwoPair: BucketValue,
		poker.OneCardTwoPair:   BucketValue,
		poker.Overpair:         BucketValue,
		poker.TopPair:          BucketValue,
		poker.MidWeakPair:      BucketMarginal,
		poker.FlushDraw:        BucketFlushDraw,
		poker.StraightDraw:     BucketStraightDraw,
		poker.NoMadeHand:       BucketAir,
	}
	require.Len(t, want, len(poker.HandCategories))
	for cat, b := range want {
		assert.Equal(t, b, BucketFor(cat), cat)
	}
}
