package domain

import "github.com/google/uuid"

// EventType defines the type of real-time event.
type EventType string

const (
	EventRunStarted   EventType = "RUN_STARTED"
	EventDatapoint    EventType = "DATAPOINT"
	EventRunCompleted EventType = "RUN_COMPLETED"
	EventRunFailed    EventType = "RUN_FAILED"
)

// Event is the payload sent over WebSocket to run subscribers.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	RunID   uuid.UUID   `json:"runId"` // Used for routing to specific run "rooms"
}
