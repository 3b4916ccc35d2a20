package poker

import (
	"fmt"
)

// Outcome is the result of comparing two hands from the first hand's side.
type Outcome int

const (
	Lose Outcome = -1
	Tie  Outcome = 0
	Win  Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "tie"
	}
}

// rankExtractor returns the defining rank values of a hand whose cards are
// already in group order (see evaluate5).
type rankExtractor func(cards [5]Card) []int

// extractors maps each category to its defining-rank extractor. Every
// category's tie-break is the same lexicographic comparison over the
// sequence its extractor produces.
var extractors = [...]rankExtractor{
	HighCard:      allRanks,
	Pair:          groupRanks,
	TwoPair:       groupRanks,
	ThreeOfAKind:  groupRanks,
	Straight:      straightRanks,
	Flush:         allRanks,
	FullHouse:     groupRanks,
	FourOfAKind:   groupRanks,
	StraightFlush: straightRanks,
	RoyalFlush:    straightRanks,
}

// kickerLabels names each position of a category's defining sequence.
var kickerLabels = [...][]string{
	HighCard:      {"high card", "second card", "third card", "fourth card", "fifth card"},
	Pair:          {"pair", "kicker", "second kicker", "third kicker"},
	TwoPair:       {"top pair", "bottom pair", "kicker"},
	ThreeOfAKind:  {"trips", "kicker", "second kicker"},
	Straight:      {"straight"},
	Flush:         {"flush", "second flush card", "third flush card", "fourth flush card", "fifth flush card"},
	FullHouse:     {"trips", "pair"},
	FourOfAKind:   {"quads", "kicker"},
	StraightFlush: {"straight flush"},
	RoyalFlush:    {"royal flush"},
}

func definingRanks(cat Category, cards [5]Card) []int {
	if int(cat) >= len(extractors) {
		return nil
	}
	return extractors[cat](cards)
}

// allRanks returns all five values in order.
func allRanks(cards [5]Card) []int {
	ranks := make([]int, 5)
	for i, c := range cards {
		ranks[i] = c.Value()
	}
	return ranks
}

// groupRanks returns each distinct rank once, in group order.
func groupRanks(cards [5]Card) []int {
	ranks := make([]int, 0, 4)
	for _, c := range cards {
		v := c.Value()
		if len(ranks) == 0 || ranks[len(ranks)-1] != v {
			ranks = append(ranks, v)
		}
	}
	return ranks
}

// straightRanks returns the run from its top card down; the Ace of a wheel
// counts as 1.
func straightRanks(cards [5]Card) []int {
	top := cards[0].Value()
	return []int{top, top - 1, top - 2, top - 3, top - 4}
}

// compareRankSequences compares two defining sequences element by element,
// stopping at the first difference.
func compareRankSequences(a, b []int) Outcome {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] > b[i]:
			return Win
		case a[i] < b[i]:
			return Lose
		}
	}
	return Tie
}

// Compare compares two evaluated hands: strength first, then for equal
// categories the explicit kicker sequence.
func Compare(a, b EvaluatedHand) Outcome {
	switch {
	case a.Strength > b.Strength:
		return Win
	case a.Strength < b.Strength:
		return Lose
	case a.Category != b.Category:
		if a.Category > b.Category {
			return Win
		}
		return Lose
	}
	return compareRankSequences(definingRanks(a.Category, a.Cards), definingRanks(b.Category, b.Cards))
}

// CompareCards ranks both card sets (5-7 cards each) and compares their best hands.
func CompareCards(fullA, fullB []Card) (Outcome, error) {
	a, err := BestOf(fullA)
	if err != nil {
		return Tie, fmt.Errorf("first hand: %w", err)
	}
	b, err := BestOf(fullB)
	if err != nil {
		return Tie, fmt.Errorf("second hand: %w", err)
	}
	return Compare(a, b), nil
}

// Explain compares two hands and describes why the result came out as it did.
func Explain(a, b EvaluatedHand) (Outcome, string) {
	result := Compare(a, b)
	if result == Tie {
		return result, "hands tie"
	}

	winner, loser := a, b
	if result == Lose {
		winner, loser = b, a
	}
	explanation := fmt.Sprintf("%s beats %s", winner, loser)

	if winner.Category != loser.Category {
		return result, explanation + fmt.Sprintf(" (%s beats %s)", winner.Category, loser.Category)
	}

	wr := definingRanks(winner.Category, winner.Cards)
	lr := definingRanks(loser.Category, loser.Cards)
	labels := kickerLabels[winner.Category]
	for i := 0; i < len(wr) && i < len(lr); i++ {
		if wr[i] == lr[i] {
			continue
		}
		label := "kicker"
		if i < len(labels) {
			label = labels[i]
		}
		return result, explanation + fmt.Sprintf(" with higher %s (%s vs %s)", label, valueName(wr[i]), valueName(lr[i]))
	}
	return result, explanation
}

// valueName renders a 1-14 rank value as its notation character.
func valueName(v int) string {
	if v == 1 {
		return "A"
	}
	if v < 2 || v > 14 {
		return "?"
	}
	return string(RankChar(uint8(v - 2)))
}
