package enums

type SwipeDecision string

const (
	SwipeDecisionLike      SwipeDecision = "LIKE"
	SwipeDecisionPass      SwipeDecision = "PASS"
	SwipeDecisionSuperLike SwipeDecision = "SUPERLIKE"
)
