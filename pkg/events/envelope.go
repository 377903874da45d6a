package events

import (
	"encoding/json"
	"time"
)

const SchemaVersionV1 = "v1"

type Initiator string

const (
	InitiatorUser   Initiator = "user"
	InitiatorSystem Initiator = "system"
)

// Meta holds auxiliary metadata not part of the core payload.
type Meta struct {
	Service       string    `json:"service"`
	Initiator     Initiator `json:"initiator"`
	Retries       int       `json:"retries"`
	SchemaVersion string    `json:"schema_version"`
}

// Envelope defines the standard message envelope used for all events.
//
// MessageID and TraceID are optional. CorrelationID is required and links
// every event belonging to the same request chain. OccurredAt is serialized
// in RFC3339 UTC by the standard library.
type Envelope[T any] struct {
	MessageID     string    `json:"message_id,omitempty"`
	TraceID       string    `json:"trace_id,omitempty"`
	CorrelationID string    `json:"correlation_id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       T         `json:"payload"`
	Meta          Meta      `json:"meta"`
}

// MarshalEnvelope serializes the envelope to JSON.
func MarshalEnvelope[T any](e Envelope[T]) ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEnvelope deserializes the envelope from JSON into the provided payload type.
func UnmarshalEnvelope[T any](data []byte) (Envelope[T], error) {
	var e Envelope[T]
	if err := json.Unmarshal(data, &e); err != nil {
		return e, err
	}
	return e, nil
}

// EnvelopeError represents a structural fault of an event envelope.
type EnvelopeError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e EnvelopeError) Error() string {
	return e.Field + ": " + e.Message
}

// EnvelopeValidationResult contains envelope validation results and errors.
type EnvelopeValidationResult struct {
	Valid  bool            `json:"valid"`
	Errors []EnvelopeError `json:"errors,omitempty"`
}

// ValidateEnvelope validates the envelope structure and metadata. Payload
// validation against the event schema is a separate step via Validate.
func ValidateEnvelope[T any](envelope Envelope[T]) EnvelopeValidationResult {
	result := EnvelopeValidationResult{Valid: true}

	fail := func(field, message string) {
		result.Valid = false
		result.Errors = append(result.Errors, EnvelopeError{Field: field, Message: message})
	}

	if envelope.CorrelationID == "" {
		fail("correlation_id", "correlation_id is required")
	}
	if envelope.Type == "" {
		fail("type", "type is required")
	}
	if envelope.OccurredAt.IsZero() {
		fail("occurred_at", "occurred_at is required")
	}
	if envelope.Meta.Service == "" {
		fail("meta.service", "meta.service is required")
	}
	if envelope.Meta.Initiator == "" {
		fail("meta.initiator", "meta.initiator is required")
	}
	if envelope.Meta.SchemaVersion == "" {
		fail("meta.schema_version", "meta.schema_version is required")
	}

	return result
}
