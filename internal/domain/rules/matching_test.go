package rules

import (
	"testing"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
)

func TestCanonicalPairOrdersAscending(t *testing.T) {
	a, b := CanonicalPair(9, 5)
	if a != 5 || b != 9 {
		t.Fatalf("unexpected pair: got (%d, %d) want (5, 9)", a, b)
	}

	a, b = CanonicalPair(5, 9)
	if a != 5 || b != 9 {
		t.Fatalf("unexpected pair: got (%d, %d) want (5, 9)", a, b)
	}
}

func TestReciprocalTreatsSuperLikeAsLike(t *testing.T) {
	if !Reciprocal(enums.SwipeDecisionLike, enums.SwipeDecisionSuperLike) {
		t.Fatalf("expected like + superlike to be reciprocal")
	}
	if !Reciprocal(enums.SwipeDecisionSuperLike, enums.SwipeDecisionSuperLike) {
		t.Fatalf("expected superlike + superlike to be reciprocal")
	}
}

func TestReciprocalRejectsPass(t *testing.T) {
	if Reciprocal(enums.SwipeDecisionLike, enums.SwipeDecisionPass) {
		t.Fatalf("pass must never form a match")
	}
	if Reciprocal(enums.SwipeDecisionPass, enums.SwipeDecisionLike) {
		t.Fatalf("pass must never form a match")
	}
}
