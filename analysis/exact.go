package analysis

import (
	"fmt"

	"github.com/lox/pokerequity/poker"
)

// ExactResult is the weighted showdown result of hero against every live
// combo of a range, averaged over every runout of the board.
type ExactResult struct {
	Win     float64
	Tie     float64
	Loss    float64
	Combos  int
	Runouts int
}

// Equity returns the win share plus half the tie share.
func (e ExactResult) Equity() float64 {
	return e.Win + e.Tie/2
}

// ExactEquity enumerates every villain combo clear of hero and the board
// and, for boards of three or four cards, every way to complete the board.
// Each combo counts in proportion to its notation weight.
func ExactEquity(hero []poker.Card, villain *Range, board []poker.Card) (ExactResult, error) {
	if len(hero) != 2 {
		return ExactResult{}, fmt.Errorf("%w: hero needs 2 cards, got %d", poker.ErrInvalidInput, len(hero))
	}
	if len(board) < 3 || len(board) > 5 {
		return ExactResult{}, fmt.Errorf("%w: exact equity needs a board of 3 to 5 cards, got %d", poker.ErrInvalidInput, len(board))
	}
	if err := poker.CheckDistinct(hero, board); err != nil {
		return ExactResult{}, err
	}

	heroHand := poker.NewHand(hero...)
	boardHand := poker.NewHand(board...)
	known := heroHand | boardHand
	need := 5 - len(board)

	var result ExactResult
	var total float64
	for _, c := range villain.Expand() {
		if c.Weight <= 0 || c.Hand.Overlaps(known) {
			continue
		}
		var win, tie, loss int
		forEachRunout(poker.FullDeck&^(known|c.Hand), need, func(runout poker.Hand) {
			full := boardHand | runout
			switch showdown(heroHand|full, c.Hand|full) {
			case outcomeWin:
				win++
			case outcomeTie:
				tie++
			default:
				loss++
			}
		})
		n := float64(win + tie + loss)
		result.Win += c.Weight * float64(win) / n
		result.Tie += c.Weight * float64(tie) / n
		result.Loss += c.Weight * float64(loss) / n
		result.Runouts += win + tie + loss
		result.Combos++
		total += c.Weight
	}
	if result.Combos == 0 {
		return ExactResult{}, fmt.Errorf("%w: every opponent hand collides with %s", poker.ErrUnreachableRange, known)
	}

	result.Win /= total
	result.Tie /= total
	result.Loss /= total
	return result, nil
}

// forEachRunout calls fn with every set of need cards drawn from live.
// need is 0, 1 or 2.
func forEachRunout(live poker.Hand, need int, fn func(poker.Hand)) {
	switch need {
	case 0:
		fn(0)
	case 1:
		for _, c := range live.Cards() {
			fn(poker.NewHand(c))
		}
	case 2:
		cards := live.Cards()
		for i := range cards {
			for j := i + 1; j < len(cards); j++ {
				fn(poker.NewHand(cards[i], cards[j]))
			}
		}
	}
}
