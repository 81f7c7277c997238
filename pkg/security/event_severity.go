package security

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventUserRegistered: SeverityINFO,
	EventLoginSuccess:   SeverityINFO,

	EventRegisterRejected:   SeverityMEDIUM,
	EventUnauthorizedAccess: SeverityMEDIUM,

	EventLoginFailed:  SeverityWARN,
	EventInvalidToken: SeverityWARN,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}
