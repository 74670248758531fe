package models

import "time"

// Event types recorded in the stove log.
const (
	EventIgnite         = "IGNITE"
	EventShutdown       = "SHUTDOWN"
	EventPowerChange    = "POWER_CHANGE"
	EventFanChange      = "FAN_CHANGE"
	EventModeChange     = "MODE_CHANGE"
	EventExternalChange = "EXTERNAL_CHANGE"
	EventError          = "ERROR"
)

// StoveEvent is a single log entry.
type StoveEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
