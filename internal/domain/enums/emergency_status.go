package enums

type EmergencyStatus string

const (
	EmergencyStatusPending      EmergencyStatus = "PENDING"
	EmergencyStatusAcknowledged EmergencyStatus = "ACKNOWLEDGED"
)
