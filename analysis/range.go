package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// Entry is one weighted notation of a range.
type Entry struct {
	Notation Notation
	Weight   float64
}

// Combo is one concrete two-card hand from an expanded range.
type Combo struct {
	Hand     poker.Hand
	Notation Notation
	Weight   float64
}

// Range is an ordered list of weighted hand notations. Weights are stored
// as given; nothing is normalised until a sampler builds its table or
// Normalize is called.
type Range struct {
	entries []Entry
	index   map[string]int
}

// NewRange builds a range from notation weights. Map iteration order is
// random, so entries are sorted strongest notation first.
func NewRange(weights map[string]float64) (*Range, error) {
	r := emptyRange()
	for token, weight := range weights {
		n, err := ParseNotation(token)
		if err != nil {
			return nil, err
		}
		if err := r.Set(n, weight); err != nil {
			return nil, err
		}
	}
	r.sortByStrength()
	return r, nil
}

// FromNotations builds a range giving every notation weight 1.
func FromNotations(tokens []string) (*Range, error) {
	r := emptyRange()
	for _, token := range tokens {
		n, err := ParseNotation(token)
		if err != nil {
			return nil, err
		}
		_ = r.Set(n, 1)
	}
	return r, nil
}

// ParseRange parses comma-separated range notation. Besides single
// notations it accepts the usual shorthand:
//
//	TT+       pairs from TT up to AA
//	ATs+      AT through AK, suited (o for offsuit, none for both)
//	22-55     pairs between two ranks
//	A5s-A2s   one high card with a span of kickers
//	AK        AKs and AKo
//	AKs:0.5   any token may carry a weight in [0,1]
//
// Whitespace is ignored and an empty string yields an empty range. A
// notation listed twice keeps the later weight.
func ParseRange(s string) (*Range, error) {
	r := emptyRange()
	for part := range strings.SplitSeq(s, ",") {
		part = strings.Join(strings.Fields(part), "")
		if part == "" {
			continue
		}
		if err := r.addToken(part); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustParseRange parses a range and panics on error (for tests and
// built-in tables).
func MustParseRange(s string) *Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse range %q: %v", s, err))
	}
	return r
}

func emptyRange() *Range {
	return &Range{index: make(map[string]int)}
}

func (r *Range) addToken(token string) error {
	weight := 1.0
	if body, w, ok := strings.Cut(token, ":"); ok {
		parsed, err := strconv.ParseFloat(w, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return fmt.Errorf("%w: %q weight must be a number in [0,1]", poker.ErrInvalidRangeNotation, token)
		}
		token, weight = body, parsed
	}

	notations, err := expandShorthand(token)
	if err != nil {
		return err
	}
	for _, n := range notations {
		_ = r.Set(n, weight)
	}
	return nil
}

// expandShorthand turns one token into the notations it names.
func expandShorthand(token string) ([]Notation, error) {
	fail := func(reason string) ([]Notation, error) {
		return nil, fmt.Errorf("%w: %q %s", poker.ErrInvalidRangeNotation, token, reason)
	}

	switch {
	case strings.HasSuffix(token, "+"):
		base := token[:len(token)-1]
		kinds, high, low, err := shorthandBase(base)
		if err != nil {
			return nil, err
		}
		if high == low {
			var out []Notation
			for rank := low; rank <= poker.Ace; rank++ {
				out = append(out, Notation{High: rank, Low: rank, Kind: KindPair})
			}
			return out, nil
		}
		var out []Notation
		for rank := low; rank < high; rank++ {
			for _, k := range kinds {
				out = append(out, Notation{High: high, Low: rank, Kind: k})
			}
		}
		return out, nil

	case strings.Contains(token, "-"):
		from, to, _ := strings.Cut(token, "-")
		k1, h1, l1, err := shorthandBase(from)
		if err != nil {
			return nil, err
		}
		k2, h2, l2, err := shorthandBase(to)
		if err != nil {
			return nil, err
		}
		if h1 == l1 && h2 == l2 {
			var out []Notation
			for rank := min(h1, h2); rank <= max(h1, h2); rank++ {
				out = append(out, Notation{High: rank, Low: rank, Kind: KindPair})
			}
			return out, nil
		}
		if h1 != h2 || len(k1) != len(k2) || k1[0] != k2[0] || h1 == l1 || h2 == l2 {
			return fail("must span one high card with matching suffixes")
		}
		var out []Notation
		for rank := max(l1, l2); ; rank-- {
			for _, k := range k1 {
				out = append(out, Notation{High: h1, Low: rank, Kind: k})
			}
			if rank == min(l1, l2) {
				break
			}
		}
		return out, nil

	case len(token) == 2:
		kinds, high, low, err := shorthandBase(token)
		if err != nil {
			return nil, err
		}
		out := make([]Notation, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, Notation{High: high, Low: low, Kind: k})
		}
		return out, nil
	}

	n, err := ParseNotation(token)
	if err != nil {
		return nil, err
	}
	return []Notation{n}, nil
}

// shorthandBase parses a 2-3 character notation that may omit the suffix,
// returning the kinds it covers.
func shorthandBase(base string) ([]Kind, uint8, uint8, error) {
	if len(base) == 2 {
		r1, ok1 := poker.ParseRank(base[0])
		r2, ok2 := poker.ParseRank(base[1])
		if !ok1 || !ok2 {
			return nil, 0, 0, fmt.Errorf("%w: %q has an unknown rank", poker.ErrInvalidRangeNotation, base)
		}
		if r1 == r2 {
			return []Kind{KindPair}, r1, r2, nil
		}
		return []Kind{KindSuited, KindOffsuit}, max(r1, r2), min(r1, r2), nil
	}
	n, err := ParseNotation(base)
	if err != nil {
		return nil, 0, 0, err
	}
	if n.Kind == KindSpecific {
		return nil, 0, 0, fmt.Errorf("%w: %q concrete combos cannot be extended", poker.ErrInvalidRangeNotation, base)
	}
	return []Kind{n.Kind}, n.High, n.Low, nil
}

// Set adds a notation or replaces its weight.
func (r *Range) Set(n Notation, weight float64) error {
	if weight < 0 || weight > 1 {
		return fmt.Errorf("%w: weight %g for %s outside [0,1]", poker.ErrInvalidInput, weight, n)
	}
	key := n.String()
	if i, ok := r.index[key]; ok {
		r.entries[i].Weight = weight
		return nil
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry{Notation: n, Weight: weight})
	return nil
}

func (r *Range) sortByStrength() {
	entries := r.entries
	for i := 1; i < len(entries); i++ {
		e := entries[i]
		j := i - 1
		for j >= 0 && entryLess(entries[j], e) {
			entries[j+1] = entries[j]
			j--
		}
		entries[j+1] = e
	}
	for i, e := range entries {
		r.index[e.Notation.String()] = i
	}
}

// entryLess orders pairs before suited before offsuit hands, then by ranks.
func entryLess(a, b Entry) bool {
	if a.Notation.Kind != b.Notation.Kind {
		return a.Notation.Kind > b.Notation.Kind
	}
	if a.Notation.High != b.Notation.High {
		return a.Notation.High < b.Notation.High
	}
	if a.Notation.Low != b.Notation.Low {
		return a.Notation.Low < b.Notation.Low
	}
	return a.Notation.String() > b.Notation.String()
}

// Entries returns a copy of the weighted notations in range order.
func (r *Range) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Notations returns the notations in range order.
func (r *Range) Notations() []Notation {
	out := make([]Notation, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Notation
	}
	return out
}

// Weight returns the weight of a notation, or 0 when it is absent or
// malformed.
func (r *Range) Weight(token string) float64 {
	n, err := ParseNotation(token)
	if err != nil {
		return 0
	}
	if i, ok := r.index[n.String()]; ok {
		return r.entries[i].Weight
	}
	return 0
}

// Len returns the number of notations.
func (r *Range) Len() int {
	return len(r.entries)
}

// IsEmpty reports whether the range holds no notations.
func (r *Range) IsEmpty() bool {
	return len(r.entries) == 0
}

// TotalWeight sums the notation weights.
func (r *Range) TotalWeight() float64 {
	var total float64
	for _, e := range r.entries {
		total += e.Weight
	}
	return total
}

// ComboCount returns the number of distinct concrete hands in the range.
func (r *Range) ComboCount() int {
	return len(r.Expand())
}

// Expand lists every concrete hand in the range with its notation's weight.
// A hand named by more than one notation appears once, carrying the weight
// of the last notation that names it.
func (r *Range) Expand() []Combo {
	combos := make([]Combo, 0, len(r.entries)*6)
	seen := make(map[poker.Hand]int, len(r.entries)*6)
	for _, e := range r.entries {
		for _, hand := range e.Notation.Combos() {
			if i, ok := seen[hand]; ok {
				combos[i].Notation = e.Notation
				combos[i].Weight = e.Weight
				continue
			}
			seen[hand] = len(combos)
			combos = append(combos, Combo{Hand: hand, Notation: e.Notation, Weight: e.Weight})
		}
	}
	return combos
}

// Normalize scales the weights in place so they sum to 1. An empty or
// all-zero range is left untouched.
func (r *Range) Normalize() *Range {
	total := r.TotalWeight()
	if total <= 0 {
		return r
	}
	for i := range r.entries {
		r.entries[i].Weight /= total
	}
	return r
}

// Clone returns an independent copy.
func (r *Range) Clone() *Range {
	c := &Range{entries: r.Entries(), index: make(map[string]int, len(r.index))}
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

// Remove returns the notations that keep at least one combo clear of dead.
func (r *Range) Remove(dead poker.Hand) *Range {
	return r.Keep(func(e Entry) bool {
		for _, hand := range e.Notation.Combos() {
			if !hand.Overlaps(dead) {
				return true
			}
		}
		return false
	})
}

// Keep returns a new range holding the entries for which keep reports true,
// in their original order and with their weights.
func (r *Range) Keep(keep func(Entry) bool) *Range {
	out := emptyRange()
	for _, e := range r.entries {
		if keep(e) {
			_ = out.Set(e.Notation, e.Weight)
		}
	}
	return out
}

// String renders the range so ParseRange reproduces it; weights other
// than 1 are written as a ":w" suffix.
func (r *Range) String() string {
	parts := make([]string, len(r.entries))
	for i, e := range r.entries {
		parts[i] = e.Notation.String()
		if e.Weight != 1 {
			parts[i] += ":" + strconv.FormatFloat(e.Weight, 'g', -1, 64)
		}
	}
	return strings.Join(parts, ",")
}
