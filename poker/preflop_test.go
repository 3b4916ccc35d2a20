package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStartingHand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
		want  StartingHandTier
	}{
		{"pocket aces", "AsAh", TierPremium},
		{"pocket jacks", "JhJd", TierPremium},
		{"ace king offsuit", "AcKh", TierPremium},
		{"pocket tens", "TcTh", TierStrong},
		{"ace queen suited", "AsQs", TierStrong},
		{"ace jack offsuit", "AdJc", TierStrong},
		{"pocket sevens", "7h7c", TierMedium},
		{"king queen suited", "KsQs", TierMedium},
		{"queen jack suited", "QdJd", TierMedium},
		{"pocket sixes", "6c6h", TierWeak},
		{"pocket twos", "2c2h", TierWeak},
		{"suited connector", "7h6h", TierWeak},
		{"suited one gapper", "9d7d", TierWeak},
		{"king queen offsuit", "KsQd", TierTrash},
		{"seven deuce", "7c2h", TierTrash},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tc.cards)
			assert.Equal(t, tc.want, ClassifyStartingHand(cards[0], cards[1]))
			assert.Equal(t, tc.want, ClassifyStartingHand(cards[1], cards[0]))
		})
	}

	assert.Equal(t, TierUnknown, ClassifyStartingHand(0, NewCard(Ace, Spades)))
	assert.Equal(t, TierUnknown, ClassifyRanks(13, Ace, false))
}
