package poker

// StartingHandTier is a coarse preflop strength bucket for two hole cards.
type StartingHandTier string

const (
	TierPremium StartingHandTier = "Premium"
	TierStrong  StartingHandTier = "Strong"
	TierMedium  StartingHandTier = "Medium"
	TierWeak    StartingHandTier = "Weak"
	TierTrash   StartingHandTier = "Trash"
	TierUnknown StartingHandTier = "Unknown"
)

// StartingHandTiers lists the tiers from strongest to weakest.
var StartingHandTiers = []StartingHandTier{TierPremium, TierStrong, TierMedium, TierWeak, TierTrash}

// ClassifyStartingHand buckets two hole cards:
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited cards within two ranks), Trash (everything else).
func ClassifyStartingHand(card1, card2 Card) StartingHandTier {
	if card1 == 0 || card2 == 0 || card1 == card2 {
		return TierUnknown
	}
	return ClassifyRanks(card1.Rank(), card2.Rank(), card1.Suit() == card2.Suit())
}

// ClassifyRanks buckets a starting hand given by its two ranks (0-12) and
// whether it is suited.
func ClassifyRanks(r1, r2 uint8, suited bool) StartingHandTier {
	if r1 > Ace || r2 > Ace {
		return TierUnknown
	}
	small, big := RankValue(r1), RankValue(r2)
	if small > big {
		small, big = big, small
	}
	pair := small == big

	switch {
	case pair && small >= 11, small == 13 && big == 14:
		return TierPremium
	case pair && small == 10, big == 14 && (small == 12 || small == 11):
		return TierStrong
	case pair && small >= 7, suited && small >= 10:
		return TierMedium
	case pair, suited && big-small <= 2:
		return TierWeak
	}
	return TierTrash
}
