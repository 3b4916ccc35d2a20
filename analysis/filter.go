package analysis

import (
	"fmt"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// Action is an observed opponent action used to narrow a range.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
	ActionAllIn Action = "allin"
)

// Street is the betting round an action happened on.
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// ParseAction parses an action name, case-insensitively. "all-in" and
// "all_in" are accepted for ActionAllIn.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise, ActionAllIn:
		return a, nil
	case "all-in", "all_in":
		return ActionAllIn, nil
	}
	return "", fmt.Errorf("%w: unknown action %q", poker.ErrInvalidInput, s)
}

// ParseStreet parses a street name, case-insensitively.
func ParseStreet(s string) (Street, error) {
	st := Street(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case Preflop, Flop, Turn, River:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown street %q", poker.ErrInvalidInput, s)
}

// StreetForBoard maps a board size to its street.
func StreetForBoard(cards int) (Street, error) {
	switch cards {
	case 0:
		return Preflop, nil
	case 3:
		return Flop, nil
	case 4:
		return Turn, nil
	case 5:
		return River, nil
	}
	return "", fmt.Errorf("%w: board of %d cards", poker.ErrInvalidInput, cards)
}

// FilterByAction reweights the range after an opponent action, sized
// relative to the pot. It is a deterministic heuristic, not solved play.
// Each weight is multiplied by a factor built from the notation strength s
// (see Notation.Strength):
//
//	fold                  empty range
//	check                 unchanged
//	call   size <= 0.5    0.9
//	       size <= 1.0    0.7 + 0.3s
//	       larger         s
//	bet, raise, all-in
//	       size <= 1.0    0.5 + 0.5s
//	       larger         s
//
// On the river a factor of s becomes s*s, polarising large bets further.
// Notations whose weight drops to zero are removed. Unknown actions leave the
// range unchanged.
func (r *Range) FilterByAction(action Action, size float64, street Street) *Range {
	switch action {
	case ActionFold:
		return emptyRange()
	case ActionCall, ActionBet, ActionRaise, ActionAllIn:
	default:
		return r.Clone()
	}

	size = max(size, 0)
	out := emptyRange()
	for _, e := range r.entries {
		w := e.Weight * actionFactor(action, size, street, e.Notation.Strength())
		if w <= 0 {
			continue
		}
		_ = out.Set(e.Notation, min(w, 1))
	}
	return out
}

// Size thresholds, as fractions of the pot. Raises are measured in pot
// fractions like calls, so a small raise tops out at pot size rather than
// the 3 big blinds a preflop-only rule would use.
const (
	smallCallSize  = 0.5
	mediumCallSize = 1.0
	smallRaiseSize = 1.0
)

func actionFactor(action Action, size float64, street Street, s float64) float64 {
	large := s
	if street == River {
		large = s * s
	}
	if action == ActionCall {
		switch {
		case size <= smallCallSize:
			return 0.9
		case size <= mediumCallSize:
			return 0.7 + 0.3*s
		}
		return large
	}
	if size <= smallRaiseSize {
		return 0.5 + 0.5*s
	}
	return large
}
