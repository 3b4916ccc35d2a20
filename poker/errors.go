package poker

import "errors"

// Error kinds surfaced by the card model, the evaluator, and the packages
// built on top of them. Callers match them with errors.Is; the wrapped
// message names the offending token or card.
var (
	ErrInvalidCardNotation  = errors.New("invalid card notation")
	ErrInvalidRangeNotation = errors.New("invalid range notation")
	ErrDuplicateCard        = errors.New("duplicate card")
	ErrInsufficientCards    = errors.New("insufficient cards")
	ErrUnreachableRange     = errors.New("unreachable range")
	ErrInvalidInput         = errors.New("invalid input")
)
