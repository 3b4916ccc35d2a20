package analysis

import (
	"sync"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

func TestEquityResult(t *testing.T) {
	t.Parallel()

	result := EquityResult{Wins: 300, Ties: 50, Losses: 650, Trials: 1000}
	assert.InDelta(t, 0.3, result.WinRate(), 1e-9)
	assert.InDelta(t, 0.05, result.TieRate(), 1e-9)
	assert.InDelta(t, 0.65, result.LossRate(), 1e-9)
	assert.InDelta(t, 0.325, result.Equity(), 1e-9)

	var empty EquityResult
	assert.Zero(t, empty.Equity())
	assert.Zero(t, empty.WinRate())
	lo, hi := empty.ConfidenceInterval()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestConfidenceInterval(t *testing.T) {
	t.Parallel()

	result := EquityResult{Wins: 500, Losses: 9500, Trials: 10000}
	lower, upper := result.ConfidenceInterval()
	assert.InDelta(t, 0.05, result.Equity(), 1e-9)
	assert.Less(t, lower, 0.05)
	assert.Greater(t, upper, 0.05)
	assert.InDelta(t, 0.0457, lower, 0.001)
	assert.InDelta(t, 0.0543, upper, 0.001)
}

func newTestSimulator(t *testing.T, opts ...Option) *Simulator {
	t.Helper()
	return NewSimulator(append([]Option{WithWorkers(4), WithClock(quartz.NewMock(t))}, opts...)...)
}

func TestEquityKnownMatchups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hero    string
		villain HandSampler
		board   string
		want    float64
	}{
		{"aces vs seven deuce", "AsAh", NewRangeSampler(MustParseRange("72o")), "", 0.88},
		{"aces vs any two", "AsAh", RandomHand{}, "", 0.852},
		{"aces vs kings", "AsAh", NewRangeSampler(MustParseRange("KK")), "", 0.82},
		{"coin flip", "QsQh", NewRangeSampler(MustParseRange("AKo")), "", 0.565},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			board := poker.MustParseCards(tc.board)
			result, err := newTestSimulator(t).Equity(poker.MustParseCards(tc.hero), tc.villain, board, 20000, randutil.New(42))
			require.NoError(t, err)
			assert.Equal(t, 20000, result.Trials+result.Rejected)
			assert.InDelta(t, tc.want, result.Equity(), 0.02)
			assert.Equal(t, result.Trials, result.Wins+result.Ties+result.Losses)
		})
	}
}

func TestEquityMatchesEnumeration(t *testing.T) {
	t.Parallel()

	hero := poker.MustParseCards("AsKs")
	board := poker.MustParseCards("Ah7d2c")
	villain := MustParseRange("AA,KK,QQ")

	exact, err := ExactEquity(hero, villain, board)
	require.NoError(t, err)
	assert.Equal(t, 10, exact.Combos)
	assert.Equal(t, 10*990, exact.Runouts)
	// One combo of aces has hero drawing nearly dead; kings and queens are
	// far behind.
	assert.InDelta(t, 0.83, exact.Equity(), 0.05)

	result, err := newTestSimulator(t).Equity(hero, NewRangeSampler(villain), board, 5000, randutil.New(20240101))
	require.NoError(t, err)
	assert.InDelta(t, exact.Equity(), result.Equity(), 0.03)

	lo, hi := result.ConfidenceInterval()
	assert.Less(t, lo, result.Equity())
	assert.Greater(t, hi, result.Equity())
}

func TestEquityRiverMatchesExact(t *testing.T) {
	t.Parallel()

	hero := poker.MustParseCards("JhTh")
	board := poker.MustParseCards("9h8c2hKd3s")
	villain := MustParseRange("AA,KQs,98s:0.5,QJo")

	exact, err := ExactEquity(hero, villain, board)
	require.NoError(t, err)
	assert.Equal(t, exact.Combos, exact.Runouts)
	assert.InDelta(t, 1.0, exact.Win+exact.Tie+exact.Loss, 1e-9)

	result, err := newTestSimulator(t).Equity(hero, NewRangeSampler(villain), board, 10000, randutil.New(9))
	require.NoError(t, err)
	assert.InDelta(t, exact.Equity(), result.Equity(), 0.02)
}

func TestEquityUnreachableRange(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t)
	hero := poker.MustParseCards("AsAh")
	board := poker.MustParseCards("Ad7c2d")

	_, err := sim.Equity(hero, NewRangeSampler(MustParseRange("AA")), board, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrUnreachableRange)

	_, err = sim.Equity(hero, NewComboList(hand("AsAd")), nil, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrUnreachableRange)

	_, err = sim.Equity(hero, NewRangeSampler(MustParseRange("QQ:0")), nil, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrUnreachableRange)

	_, err = ExactEquity(hero, MustParseRange("AA"), board)
	require.ErrorIs(t, err, poker.ErrUnreachableRange)
}

func TestEquityValidation(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t)
	rng := randutil.New(1)
	villain := RandomHand{}

	_, err := sim.Equity(poker.MustParseCards("AsKs"), villain, nil, 0, rng)
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = sim.Equity(poker.MustParseCards("As"), villain, nil, 10, rng)
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = sim.Equity(poker.MustParseCards("AsKs"), villain, poker.MustParseCards("2c3c4c5c6c7c"), 10, rng)
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = sim.Equity(poker.MustParseCards("AsKs"), villain, poker.MustParseCards("As7d2c"), 10, rng)
	require.ErrorIs(t, err, poker.ErrDuplicateCard)

	_, err = sim.Equity(poker.MustParseCards("AsKs"), nil, nil, 10, rng)
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = ExactEquity(poker.MustParseCards("AsKs"), MustParseRange("QQ"), nil)
	require.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestEquityDeterministic(t *testing.T) {
	t.Parallel()

	hero := poker.MustParseCards("8s8h")
	villain := NewRangeSampler(MustParseRange("ATs+,KQo,99+"))

	run := func(workers int) EquityResult {
		result, err := newTestSimulator(t, WithWorkers(workers)).Equity(hero, villain, nil, 3000, randutil.New(77))
		require.NoError(t, err)
		return result
	}

	a, b := run(3), run(3)
	assert.Equal(t, a, b)
	assert.Zero(t, a.Elapsed, "mock clock never advances")

	single := run(1)
	assert.Equal(t, 3000, single.Trials)
	assert.InDelta(t, a.Equity(), single.Equity(), 0.05)
}

func TestEquityProgress(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		reports []Progress
	)
	sim := newTestSimulator(t, WithWorkers(2), WithBatchSize(100), WithProgress(func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, p)
	}))

	_, err := sim.Equity(poker.MustParseCards("AsKs"), RandomHand{}, nil, 1050, randutil.New(5))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reports)
	// 525 trials per worker: five full batches and one partial each.
	assert.Len(t, reports, 12)
	maxDone := 0
	for _, p := range reports {
		assert.Equal(t, 1050, p.Total)
		maxDone = max(maxDone, p.Done)
	}
	assert.Equal(t, 1050, maxDone)
}

func TestRangeVsRange(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t)
	a := NewRangeSampler(MustParseRange("AA"))
	b := NewRangeSampler(MustParseRange("KK"))

	result, err := sim.RangeVsRange(a, b, nil, 20000, randutil.New(12))
	require.NoError(t, err)
	assert.InDelta(t, 0.82, result.EquityA, 0.02)
	assert.InDelta(t, 1.0, result.EquityA+result.EquityB, 1e-9)
	assert.InDelta(t, result.TieRate(), result.TiePercentage, 1e-12)
	assert.Zero(t, result.Rejected)

	overlapping, err := sim.RangeVsRange(NewRangeSampler(MustParseRange("AK")), NewRangeSampler(MustParseRange("AK")), nil, 5000, randutil.New(3))
	require.NoError(t, err)
	assert.Positive(t, overlapping.Rejected)
	assert.Equal(t, 5000, overlapping.Trials+overlapping.Rejected)
	assert.InDelta(t, 0.5, overlapping.EquityA, 0.03)
}

func TestRangeVsRangeUnreachable(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t)
	board := poker.MustParseCards("AsAhKd")

	_, err := sim.RangeVsRange(NewComboList(hand("AdAc")), NewRangeSampler(MustParseRange("AA")), board, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrUnreachableRange)

	_, err = sim.RangeVsRange(NewComboList(hand("AdKs")), NewComboList(hand("AdKc")), board, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrUnreachableRange)

	_, err = sim.RangeVsRange(NewComboList(hand("AdKs")), nil, board, 100, randutil.New(1))
	require.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestCalculateEquity(t *testing.T) {
	t.Parallel()

	result, err := CalculateEquity([]string{"As", "Ah"}, nil, "72o", 5000, 42)
	require.NoError(t, err)
	assert.InDelta(t, 0.88, result.Equity(), 0.03)

	random, err := CalculateEquity([]string{"As", "Ah"}, []string{"Kd", "7c", "2h"}, "", 2000, 42)
	require.NoError(t, err)
	assert.Greater(t, random.Equity(), 0.8)

	_, err = CalculateEquity([]string{"As", "Zh"}, nil, "", 100, 1)
	require.ErrorIs(t, err, poker.ErrInvalidCardNotation)

	_, err = CalculateEquity([]string{"As", "Ah"}, nil, "AAx", 100, 1)
	require.ErrorIs(t, err, poker.ErrInvalidRangeNotation)
}

func BenchmarkEquity(b *testing.B) {
	sim := NewSimulator(WithWorkers(1))
	hero := poker.MustParseCards("AsKs")
	villain := NewRangeSampler(MustParseRange("TT+,AQs+,AKo"))
	rng := randutil.New(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = sim.Equity(hero, villain, nil, 1000, rng)
	}
}
