package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

func TestRangeSamplerFollowsWeights(t *testing.T) {
	t.Parallel()

	sampler := NewRangeSampler(MustParseRange("AA,KK:0.5,QQ:0"))
	require.Equal(t, 12, sampler.Len())

	aces := poker.NewHand(poker.MustParseCards("AsAh")...)
	kings := poker.NewHand(poker.MustParseCards("KsKh")...)
	assert.InDelta(t, 1.0/9, sampler.Probability(aces), 1e-12)
	assert.InDelta(t, 0.5/9, sampler.Probability(kings), 1e-12)

	rng := randutil.New(3)
	counts := map[uint8]int{}
	const draws = 30000
	for range draws {
		h, ok := sampler.SampleHand(0, rng)
		require.True(t, ok)
		counts[h.Cards()[0].Rank()]++
	}
	assert.Zero(t, counts[poker.Queen], "zero weight hands are never drawn")
	assert.InDelta(t, 2.0/3, float64(counts[poker.Ace])/draws, 0.02)
	assert.InDelta(t, 1.0/3, float64(counts[poker.King])/draws, 0.02)
}

func TestSamplersRespectDeadCards(t *testing.T) {
	t.Parallel()

	dead := poker.NewHand(poker.MustParseCards("AsAhKd")...)
	samplers := map[string]HandSampler{
		"range":  NewRangeSampler(MustParseRange("AA,KK,AKs")),
		"combos": NewComboList(hand("KsKh"), hand("AdAc"), hand("AsKc")),
		"random": RandomHand{},
	}

	for name, s := range samplers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rng := randutil.New(8)
			live := s.Without(dead)
			for range 2000 {
				h, ok := live.SampleHand(0, rng)
				require.True(t, ok)
				require.Equal(t, 2, h.CountCards())
				require.False(t, h.Overlaps(dead), "%s overlaps dead cards", h)
			}
			for range 200 {
				extra := poker.NewHand(poker.MustParseCards("Ac")...)
				h, ok := s.SampleHand(dead|extra, rng)
				if !ok {
					continue
				}
				require.False(t, h.Overlaps(dead|extra))
			}
		})
	}
}

func TestSamplerLen(t *testing.T) {
	t.Parallel()

	dead := poker.NewHand(poker.MustParseCards("AsKs")...)
	assert.Equal(t, 1326, RandomHand{}.Len())
	assert.Equal(t, 1225, RandomHand{}.Without(dead).Len())

	r := NewRangeSampler(MustParseRange("AA,KK"))
	assert.Equal(t, 12, r.Len())
	assert.Equal(t, 6, r.Without(dead).Len())

	blocked := NewComboList(hand("AsKh")).Without(dead)
	assert.Zero(t, blocked.Len())
	_, ok := blocked.SampleHand(0, randutil.New(1))
	assert.False(t, ok)
}

func TestParseComboList(t *testing.T) {
	t.Parallel()

	list, err := ParseComboList([]string{"AsKh", "QQ", "AsKh"})
	require.NoError(t, err)
	assert.Equal(t, 7, list.Len())

	_, err = ParseComboList([]string{"AsXx"})
	require.ErrorIs(t, err, poker.ErrInvalidRangeNotation)
}

func TestSamplerFor(t *testing.T) {
	t.Parallel()

	assert.IsType(t, RandomHand{}, SamplerFor(nil))
	assert.IsType(t, RandomHand{}, SamplerFor(MustParseRange("")))
	assert.IsType(t, &RangeSampler{}, SamplerFor(MustParseRange("AA")))
}

func hand(s string) poker.Hand {
	return poker.NewHand(poker.MustParseCards(s)...)
}
