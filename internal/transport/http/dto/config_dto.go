package dto

type ClientConfigResponse struct {
	MaxEmergencyContacts           int `json:"max_emergency_contacts"`
	DefaultCheckInFrequencyMinutes int `json:"default_check_in_frequency_minutes"`
	DefaultPlannedDurationMinutes  int `json:"default_planned_duration_minutes"`
	MaxPlannedDurationMinutes      int `json:"max_planned_duration_minutes"`
	SwipesPerMinute                int `json:"swipes_per_minute"`
}
