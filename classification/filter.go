package classification

import (
	"fmt"
	"strings"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

// Profile is a player type's set of hand categories worth continuing with
// after the flop.
type Profile struct {
	Name      string
	continues map[poker.HandCategory]bool
}

func newProfile(name string, cats ...poker.HandCategory) Profile {
	p := Profile{Name: name, continues: make(map[poker.HandCategory]bool, len(cats))}
	for _, c := range cats {
		p.continues[c] = true
	}
	return p
}

var (
	// Tight continues with top pair or better and with good draws.
	Tight = newProfile("tight",
		poker.NutMadeHand, poker.Set, poker.Trips, poker.BothCardsTwoPair, poker.OneCardTwoPair,
		poker.Overpair, poker.TopPair, poker.FlushDraw, poker.StraightDraw)

	// Loose also continues with any pair.
	Loose = newProfile("loose",
		poker.NutMadeHand, poker.Set, poker.Trips, poker.BothCardsTwoPair, poker.OneCardTwoPair,
		poker.Overpair, poker.TopPair, poker.MidWeakPair, poker.FlushDraw, poker.StraightDraw)
)

// Continues reports whether the profile keeps playing a hand of category c.
func (p Profile) Continues(c poker.HandCategory) bool {
	return p.continues[c]
}

// ParseProfile looks a profile up by name.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tight":
		return Tight, nil
	case "loose":
		return Loose, nil
	}
	return Profile{}, fmt.Errorf("%w: unknown profile %q", poker.ErrInvalidInput, name)
}

// FilterForBoard narrows a preflop range to the notations a player of the
// given profile would still hold on this board: a notation stays, with its
// weight, when any of its combos clear of the board lands in a category the
// profile continues with.
func FilterForBoard(r *analysis.Range, board []poker.Card, profile Profile) (*analysis.Range, error) {
	if err := validatePartitionBoard(board); err != nil {
		return nil, err
	}
	if r == nil {
		return analysis.MustParseRange(""), nil
	}

	boardHand := poker.NewHand(board...)
	var err error
	kept := r.Keep(func(e analysis.Entry) bool {
		for _, combo := range e.Notation.Combos() {
			if combo.Overlaps(boardHand) {
				continue
			}
			cat, cerr := poker.Categorize(combo.Cards(), board)
			if cerr != nil {
				err = cerr
				return false
			}
			if profile.Continues(cat) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return kept, nil
}
