package classification

import (
	"fmt"
	"math"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

// Bucket is a strategic group of hand categories.
type Bucket string

const (
	BucketValue        Bucket = "value"
	BucketMarginal     Bucket = "marginal"
	BucketFlushDraw    Bucket = "flush_draw"
	BucketStraightDraw Bucket = "straight_draw"
	BucketAir          Bucket = "bluff_air"
)

// Buckets lists every bucket, strongest first.
var Buckets = []Bucket{BucketValue, BucketMarginal, BucketFlushDraw, BucketStraightDraw, BucketAir}

// BucketFor maps a hand category to its bucket. Two pair or better, overpairs
// and top pair are value; weaker pairs are marginal.
func BucketFor(c poker.HandCategory) Bucket {
	switch c {
	case poker.NutMadeHand, poker.Set, poker.Trips, poker.BothCardsTwoPair,
		poker.OneCardTwoPair, poker.Overpair, poker.TopPair:
		return BucketValue
	case poker.MidWeakPair:
		return BucketMarginal
	case poker.FlushDraw:
		return BucketFlushDraw
	case poker.StraightDraw:
		return BucketStraightDraw
	default:
		return BucketAir
	}
}

// PartitionResult is the share of a range's live combos in each bucket.
type PartitionResult struct {
	Percentages map[Bucket]float64         `json:"percentages"`
	Counts      map[Bucket]int             `json:"counts"`
	Categories  map[poker.HandCategory]int `json:"categories"`
	Total       int                        `json:"total"`
	Texture     Texture                    `json:"texture"`
}

// Partition categorises every combo of the range that does not collide with
// the board and reports the percentage of combos per bucket, rounded to two
// decimals. Combos are counted once each regardless of weight; zero-weight
// notations are skipped. A range the board blocks entirely yields all-zero
// percentages.
func Partition(r *analysis.Range, board []poker.Card) (PartitionResult, error) {
	if err := validatePartitionBoard(board); err != nil {
		return PartitionResult{}, err
	}

	boardHand := poker.NewHand(board...)
	result := PartitionResult{
		Percentages: make(map[Bucket]float64, len(Buckets)),
		Counts:      make(map[Bucket]int, len(Buckets)),
		Categories:  make(map[poker.HandCategory]int),
		Texture:     AnalyzeTexture(boardHand),
	}
	for _, b := range Buckets {
		result.Percentages[b] = 0
		result.Counts[b] = 0
	}
	if r == nil {
		return result, nil
	}

	for _, combo := range r.Expand() {
		if combo.Weight <= 0 || combo.Hand.Overlaps(boardHand) {
			continue
		}
		cat, err := poker.Categorize(combo.Hand.Cards(), board)
		if err != nil {
			return PartitionResult{}, fmt.Errorf("categorize %s: %w", combo.Hand, err)
		}
		result.Categories[cat]++
		result.Counts[BucketFor(cat)]++
		result.Total++
	}

	if result.Total == 0 {
		return result, nil
	}
	for _, b := range Buckets {
		pct := float64(result.Counts[b]) / float64(result.Total) * 100
		result.Percentages[b] = math.Round(pct*100) / 100
	}
	return result, nil
}

func validatePartitionBoard(board []poker.Card) error {
	if len(board) < 3 {
		return fmt.Errorf("%w: partitioning needs a board of at least 3 cards, got %d", poker.ErrInsufficientCards, len(board))
	}
	if len(board) > 5 {
		return fmt.Errorf("%w: board has %d cards", poker.ErrInvalidInput, len(board))
	}
	return poker.CheckDistinct(board)
}
