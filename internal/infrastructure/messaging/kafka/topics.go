// Package kafka publishes CarePath-Insight platform events to Apache Kafka.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topic constants.
const (
	TopicNoteSubmitted = "carepath.note.submitted"
	TopicNoteAnalyzed  = "carepath.note.analyzed"
	TopicNoteDeleted   = "carepath.note.deleted"
	TopicDeadLetter    = "carepath.dead_letter"
)

// schemaVersion tags every envelope so downstream consumers can evolve.
const schemaVersion = "1.0"

// EventEnvelope standardizes event messages across topics.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEnvelope wraps a payload into a versioned envelope.
func NewEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        "carepath-insight",
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       raw,
	}, nil
}

// NoteSubmittedPayload announces a stored note.
type NoteSubmittedPayload struct {
	NoteID      string    `json:"note_id"`
	PatientRef  string    `json:"patient_ref,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NoteAnalyzedPayload announces a completed analysis.  The full result
// travels in the message body published by the analysis service; this
// payload is the envelope-level summary.
type NoteAnalyzedPayload struct {
	NoteID       string    `json:"note_id"`
	SectionCount int       `json:"section_count"`
	StayDays     int       `json:"stay_days"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

// NoteDeletedPayload announces a removed note.
type NoteDeletedPayload struct {
	NoteID    string    `json:"note_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
