package rules

import "github.com/sonu9716/Dating-app-sub000/internal/domain/enums"

const MaxEmergencyContacts = 3

// CanonicalPair orders an unordered user pair as (min, max) so match
// lookups and uniqueness constraints are symmetric.
func CanonicalPair(userID, targetID int64) (int64, int64) {
	if userID > targetID {
		return targetID, userID
	}
	return userID, targetID
}

// Positive reports whether a decision can participate in a match.
// LIKE and SUPERLIKE are equivalent for reciprocity.
func Positive(decision enums.SwipeDecision) bool {
	return decision == enums.SwipeDecisionLike || decision == enums.SwipeDecisionSuperLike
}

// Reciprocal reports whether two opposing decisions form a match.
func Reciprocal(forward, reverse enums.SwipeDecision) bool {
	return Positive(forward) && Positive(reverse)
}
