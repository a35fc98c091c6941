package model

import (
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
)

type EmergencyContact struct {
	ID           int64                     `json:"id"`
	OwnerID      int64                     `json:"owner_id"`
	Name         string                    `json:"name"`
	Phone        string                    `json:"phone"`
	Relationship enums.ContactRelationship `json:"relationship"`
	LinkedUserID *int64                    `json:"linked_user_id,omitempty"`
	Verified     bool                      `json:"verified"`
	CreatedAt    time.Time                 `json:"created_at"`
}
