package analysis

import (
	rand "math/rand/v2"
	"sort"

	"github.com/lox/pokerequity/poker"
)

// HandSampler draws opponent hole cards.
//
// Without restricts the sampler to hands clear of dead once per calculation;
// SampleHand then draws from that pool, skipping any hand that overlaps the
// per-draw dead set. It reports false when no hand is available.
type HandSampler interface {
	Without(dead poker.Hand) HandSampler
	Len() int
	SampleHand(dead poker.Hand, rng *rand.Rand) (poker.Hand, bool)
}

// maxRedraws bounds rejection sampling against the per-draw dead set
// before falling back to a scan of the live hands.
const maxRedraws = 32

// ComboList samples uniformly from an explicit list of hands.
type ComboList struct {
	hands []poker.Hand
}

// NewComboList builds a sampler over hands. Duplicates and hands that are
// not exactly two cards are dropped.
func NewComboList(hands ...poker.Hand) *ComboList {
	seen := make(map[poker.Hand]bool, len(hands))
	out := make([]poker.Hand, 0, len(hands))
	for _, h := range hands {
		if h.CountCards() != 2 || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return &ComboList{hands: out}
}

// ParseComboList builds a sampler from card strings such as "AsKh".
func ParseComboList(combos []string) (*ComboList, error) {
	hands := make([]poker.Hand, 0, len(combos))
	for _, s := range combos {
		n, err := ParseNotation(s)
		if err != nil {
			return nil, err
		}
		hands = append(hands, n.Combos()...)
	}
	return NewComboList(hands...), nil
}

func (c *ComboList) Without(dead poker.Hand) HandSampler {
	live := make([]poker.Hand, 0, len(c.hands))
	for _, h := range c.hands {
		if !h.Overlaps(dead) {
			live = append(live, h)
		}
	}
	return &ComboList{hands: live}
}

func (c *ComboList) Len() int {
	return len(c.hands)
}

func (c *ComboList) SampleHand(dead poker.Hand, rng *rand.Rand) (poker.Hand, bool) {
	if len(c.hands) == 0 {
		return 0, false
	}
	for range maxRedraws {
		h := c.hands[rng.IntN(len(c.hands))]
		if !h.Overlaps(dead) {
			return h, true
		}
	}
	return c.Without(dead).SampleHand(0, rng)
}

// RangeSampler draws hands in proportion to their notation weights. Zero
// weight hands are never drawn.
type RangeSampler struct {
	hands      []poker.Hand
	weights    []float64
	cumulative []float64
}

// NewRangeSampler expands r into a cumulative weight table.
func NewRangeSampler(r *Range) *RangeSampler {
	combos := r.Expand()
	hands := make([]poker.Hand, 0, len(combos))
	weights := make([]float64, 0, len(combos))
	for _, c := range combos {
		if c.Weight > 0 {
			hands = append(hands, c.Hand)
			weights = append(weights, c.Weight)
		}
	}
	return newRangeSampler(hands, weights)
}

func newRangeSampler(hands []poker.Hand, weights []float64) *RangeSampler {
	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}
	return &RangeSampler{hands: hands, weights: weights, cumulative: cumulative}
}

func (s *RangeSampler) Without(dead poker.Hand) HandSampler {
	hands := make([]poker.Hand, 0, len(s.hands))
	weights := make([]float64, 0, len(s.weights))
	for i, h := range s.hands {
		if !h.Overlaps(dead) {
			hands = append(hands, h)
			weights = append(weights, s.weights[i])
		}
	}
	return newRangeSampler(hands, weights)
}

func (s *RangeSampler) Len() int {
	return len(s.hands)
}

// Probability returns the chance of drawing hand with no extra dead cards.
func (s *RangeSampler) Probability(hand poker.Hand) float64 {
	if len(s.cumulative) == 0 {
		return 0
	}
	total := s.cumulative[len(s.cumulative)-1]
	for i, h := range s.hands {
		if h == hand {
			return s.weights[i] / total
		}
	}
	return 0
}

func (s *RangeSampler) SampleHand(dead poker.Hand, rng *rand.Rand) (poker.Hand, bool) {
	if len(s.hands) == 0 {
		return 0, false
	}
	total := s.cumulative[len(s.cumulative)-1]
	for range maxRedraws {
		u := rng.Float64() * total
		i := sort.Search(len(s.cumulative), func(i int) bool { return s.cumulative[i] > u })
		if i == len(s.hands) {
			i--
		}
		if h := s.hands[i]; !h.Overlaps(dead) {
			return h, true
		}
	}
	return s.Without(dead).SampleHand(0, rng)
}

// RandomHand draws any two cards not already dead.
type RandomHand struct {
	dead poker.Hand
}

func (r RandomHand) Without(dead poker.Hand) HandSampler {
	return RandomHand{dead: r.dead | dead}
}

func (r RandomHand) Len() int {
	n := 52 - r.dead.CountCards()
	return n * (n - 1) / 2
}

func (r RandomHand) SampleHand(dead poker.Hand, rng *rand.Rand) (poker.Hand, bool) {
	live := poker.FullDeck &^ (r.dead | dead)
	n := live.CountCards()
	if n < 2 {
		return 0, false
	}
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return poker.NewHand(nthCard(live, i), nthCard(live, j)), true
}

// nthCard returns the k-th lowest card of h.
func nthCard(h poker.Hand, k int) poker.Card {
	rest := uint64(h)
	for range k {
		rest &= rest - 1
	}
	return poker.Card(rest & -rest)
}

// SamplerFor picks the sampler for an opponent description: a non-empty
// range samples by weight, an empty one means any two cards.
func SamplerFor(r *Range) HandSampler {
	if r == nil || r.IsEmpty() {
		return RandomHand{}
	}
	return NewRangeSampler(r)
}
