package model

import (
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
)

type SafetySession struct {
	ID                      string              `json:"id"`
	OwnerID                 int64               `json:"owner_id"`
	MatchID                 int64               `json:"match_id"`
	Location                string              `json:"location"`
	StartTime               time.Time           `json:"start_time"`
	PlannedDurationMinutes  int                 `json:"planned_duration_minutes"`
	CheckInFrequencyMinutes int                 `json:"check_in_frequency_minutes"`
	Status                  enums.SessionStatus `json:"status"`
	LastCheckIn             time.Time           `json:"last_check_in"`
	EndTime                 *time.Time          `json:"end_time,omitempty"`
	EmergencyActivated      bool                `json:"emergency_activated"`
	EmergencyActivatedAt    *time.Time          `json:"emergency_activated_at,omitempty"`
}

// ElapsedSeconds is derived on demand, never persisted.
func (s SafetySession) ElapsedSeconds(now time.Time) int64 {
	elapsed := int64(now.Sub(s.StartTime) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
