package model

import (
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
)

type EmergencyEvent struct {
	ID                 string                `json:"id"`
	SessionID          string                `json:"session_id"`
	TriggeredAt        time.Time             `json:"triggered_at"`
	LastKnownLocation  string                `json:"last_known_location"`
	Status             enums.EmergencyStatus `json:"status"`
	NotifiedContactIDs []int64               `json:"notified_contact_ids"`
}
