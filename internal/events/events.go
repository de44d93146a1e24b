package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of events this service emits
type EventType string

const (
	// Attempt events
	EventAttemptSubmitted EventType = "attempt.submitted"

	// Content events
	EventTestCreated EventType = "test.created"
	EventTestUpdated EventType = "test.updated"
	EventTestDeleted EventType = "test.deleted"
)

const (
	eventSource  = "online-test-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by every published event
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Data      any            `json:"data"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh id.
func NewEvent(eventType EventType, data any) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// AttemptSubmittedEvent is emitted once a submission has been committed.
type AttemptSubmittedEvent struct {
	AttemptID   uint      `json:"attempt_id"`
	TestID      uint      `json:"test_id"`
	UserID      uint      `json:"user_id"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type TestChangedEvent struct {
	TestID         uint   `json:"test_id"`
	Title          string `json:"title,omitempty"`
	TotalQuestions int    `json:"total_questions"`
	ChangedBy      uint   `json:"changed_by"`
}
