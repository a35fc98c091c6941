package model

import (
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
)

type SwipeDecision struct {
	ID        int64               `json:"id"`
	ActorID   int64               `json:"actor_id"`
	TargetID  int64               `json:"target_id"`
	Decision  enums.SwipeDecision `json:"decision"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
