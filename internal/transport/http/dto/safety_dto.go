package dto

import "time"

type StartSessionRequest struct {
	MatchID         int64  `json:"match_id"`
	Location        string `json:"location"`
	DurationMinutes int    `json:"duration_minutes"`
}

type SessionResponse struct {
	ID                      string     `json:"id"`
	MatchID                 int64      `json:"match_id"`
	Location                string     `json:"location"`
	Status                  string     `json:"status"`
	StartTime               time.Time  `json:"start_time"`
	PlannedDurationMinutes  int        `json:"planned_duration_minutes"`
	CheckInFrequencyMinutes int        `json:"check_in_frequency_minutes"`
	LastCheckIn             time.Time  `json:"last_check_in"`
	ElapsedSeconds          int64      `json:"elapsed_seconds"`
	EndTime                 *time.Time `json:"end_time,omitempty"`
	EmergencyActivated      bool       `json:"emergency_activated"`
	EmergencyActivatedAt    *time.Time `json:"emergency_activated_at,omitempty"`
}

type TriggerEmergencyRequest struct {
	LastKnownLocation string  `json:"last_known_location"`
	ContactIDs        []int64 `json:"contact_ids"`
}

type EmergencyEventResponse struct {
	ID                 string    `json:"id"`
	SessionID          string    `json:"session_id"`
	TriggeredAt        time.Time `json:"triggered_at"`
	LastKnownLocation  string    `json:"last_known_location"`
	Status             string    `json:"status"`
	NotifiedContactIDs []int64   `json:"notified_contact_ids"`
}

type EmergencyEventsResponse struct {
	Items []EmergencyEventResponse `json:"items"`
}
