package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerequity/poker"
)

func TestParseNotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   string
		kind   Kind
		combos int
	}{
		{"AA", "AA", KindPair, 6},
		{"22", "22", KindPair, 6},
		{"AKs", "AKs", KindSuited, 4},
		{"AKo", "AKo", KindOffsuit, 12},
		{"KAs", "AKs", KindSuited, 4},
		{"t9O", "T9o", KindOffsuit, 12},
		{"AsKh", "AsKh", KindSpecific, 1},
		{"7d8d", "8d7d", KindSpecific, 1},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			n, err := ParseNotation(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
			assert.Equal(t, tc.kind, n.Kind)
			assert.Equal(t, tc.combos, n.ComboCount())

			combos := n.Combos()
			assert.Len(t, combos, tc.combos)
			seen := make(map[poker.Hand]bool)
			for _, c := range combos {
				assert.Equal(t, 2, c.CountCards())
				assert.False(t, seen[c], "duplicate combo %s", c)
				seen[c] = true
				if tc.kind != KindSpecific {
					assert.Equal(t, n, NotationOf(c))
				}
			}
		})
	}
}

func TestParseNotationErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "A", "AAs", "AK", "AKx", "1Ks", "AsAs", "AsKx", "AKsuited"} {
		_, err := ParseNotation(input)
		require.ErrorIs(t, err, poker.ErrInvalidRangeNotation, input)
		assert.Contains(t, err.Error(), input)
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		notation  string
		notations int
		combos    int
	}{
		{"empty", "", 0, 0},
		{"whitespace only", " , ,", 0, 0},
		{"pocket aces", "AA", 1, 6},
		{"ace king any", "AK", 2, 16},
		{"multiple hands", "AA, KK ,AKs", 3, 16},
		{"pairs plus", "TT+", 5, 30},
		{"suited plus", "ATs+", 4, 16},
		{"offsuit plus", "KJo+", 2, 24},
		{"any plus", "QT+", 4, 32},
		{"pair dash", "22-55", 4, 24},
		{"reversed pair dash", "55-22", 4, 24},
		{"suited dash", "A5s-A2s", 4, 16},
		{"concrete combos", "AsKh,AsKs", 2, 2},
		{"overlapping notations", "AKs,AsKs", 2, 4},
		{"duplicate notation", "AA,AA", 1, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRange(tc.notation)
			require.NoError(t, err)
			assert.Equal(t, tc.notations, r.Len())
			assert.Equal(t, tc.combos, r.ComboCount())
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"AA,XX", "AKs+o", "A5s-K2s", "A5s-A2o", "AA:1.5", "AA:x", "AsKh+", "ZZ-22"} {
		_, err := ParseRange(input)
		require.ErrorIs(t, err, poker.ErrInvalidRangeNotation, input)
	}
}

func TestRangeWeights(t *testing.T) {
	t.Parallel()

	r, err := ParseRange("AA,KK:0.5,AKs:0.25,AA:0.75")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.InDelta(t, 0.75, r.Weight("AA"), 1e-12)
	assert.InDelta(t, 0.5, r.Weight("KK"), 1e-12)
	assert.InDelta(t, 0.25, r.Weight("KAs"), 1e-12)
	assert.Zero(t, r.Weight("QQ"))
	assert.Zero(t, r.Weight("junk"))
	assert.InDelta(t, 1.5, r.TotalWeight(), 1e-12)

	for _, c := range r.Expand() {
		assert.Equal(t, r.Weight(c.Notation.String()), c.Weight)
	}

	assert.Equal(t, "AA:0.75,KK:0.5,AKs:0.25", r.String())
	again, err := ParseRange(r.String())
	require.NoError(t, err)
	assert.Equal(t, r.Entries(), again.Entries())
}

func TestNewRange(t *testing.T) {
	t.Parallel()

	r, err := NewRange(map[string]float64{"AKo": 0.5, "AA": 1, "AKs": 1, "72o": 0.1})
	require.NoError(t, err)
	assert.Equal(t, "AA,AKs,AKo:0.5,72o:0.1", r.String())

	_, err = NewRange(map[string]float64{"AA": 2})
	require.ErrorIs(t, err, poker.ErrInvalidInput)

	_, err = NewRange(map[string]float64{"A": 1})
	require.ErrorIs(t, err, poker.ErrInvalidRangeNotation)
}

func TestFromNotations(t *testing.T) {
	t.Parallel()

	r, err := FromNotations([]string{"QQ", "AKs", "AsKh"})
	require.NoError(t, err)
	assert.Equal(t, []string{"QQ", "AKs", "AsKh"}, notationStrings(r.Notations()))
	assert.Equal(t, 11, r.ComboCount())

	_, err = FromNotations([]string{"QQ", "QQs"})
	require.ErrorIs(t, err, poker.ErrInvalidRangeNotation)
}

func TestRangeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"AA,KK,QQ", "TT+,ATs+,KQo", "22-55,A5s-A2s,T9s", "AK,76s"} {
		r, err := ParseRange(s)
		require.NoError(t, err)

		recovered := make(map[string]bool)
		for _, c := range r.Expand() {
			recovered[NotationOf(c.Hand).String()] = true
		}
		want := make(map[string]bool)
		for _, n := range r.Notations() {
			want[n.String()] = true
		}
		assert.Equal(t, want, recovered, s)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	r := MustParseRange("AA,KK:0.5,AKs:0.25,72o:0.1")
	r.Normalize()
	assert.InDelta(t, 1.0, r.TotalWeight(), 1e-9)
	first := r.Entries()

	r.Normalize()
	assert.InDelta(t, 1.0, r.TotalWeight(), 1e-9)
	for i, e := range r.Entries() {
		assert.InDelta(t, first[i].Weight, e.Weight, 1e-12)
	}
	assert.InDelta(t, 2*r.Weight("KK"), r.Weight("AA"), 1e-12)

	empty := MustParseRange("")
	assert.NotPanics(t, func() { empty.Normalize() })
	assert.Zero(t, empty.Len())

	zero := MustParseRange("AA:0")
	zero.Normalize()
	assert.Zero(t, zero.Weight("AA"))
}

func TestRangeRemove(t *testing.T) {
	t.Parallel()

	r := MustParseRange("AA,AsKs,KK")
	dead := poker.NewHand(poker.MustParseCards("AsAhAd")...)
	live := r.Remove(dead)
	assert.Equal(t, "KK", live.String())

	assert.Equal(t, r.String(), r.Remove(0).String())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	r := MustParseRange("AA,KK")
	c := r.Clone()
	require.NoError(t, c.Set(Notation{High: poker.Queen, Low: poker.Queen, Kind: KindPair}, 1))
	c.Normalize()

	assert.Equal(t, "AA,KK", r.String())
	assert.Equal(t, 3, c.Len())
}

func TestNotationStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		notation string
		want     float64
	}{
		{"AA", 1},
		{"22", 1.0 / 13},
		{"AKo", 12.0 / 13},
		{"AKs", 1},
		{"72o", 5.0 / 13},
		{"76s", 5.0 / 13 * 1.1},
		{"7h6h", 5.0 / 13 * 1.1},
	}
	for _, tc := range tests {
		n, err := ParseNotation(tc.notation)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, n.Strength(), 1e-12, tc.notation)
	}

	aa, _ := ParseNotation("AA")
	assert.Equal(t, poker.TierPremium, aa.Tier())
	seven, _ := ParseNotation("72o")
	assert.Equal(t, poker.TierTrash, seven.Tier())
}

func notationStrings(ns []Notation) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}
