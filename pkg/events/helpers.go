package events

import (
	"time"
)

// NewEnvelope creates a new envelope with the given payload and metadata.
func NewEnvelope[T any](correlationID, eventType string, payload T, meta Meta) Envelope[T] {
	return Envelope[T]{
		CorrelationID: correlationID,
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
		Meta:          meta,
	}
}

// NewMeta creates a new Meta struct with the required fields.
func NewMeta(service string, initiator Initiator) Meta {
	return Meta{
		Service:       service,
		Initiator:     initiator,
		Retries:       0,
		SchemaVersion: SchemaVersionV1,
	}
}

// WithMessageID adds a message ID to the envelope for idempotency.
func (e Envelope[T]) WithMessageID(messageID string) Envelope[T] {
	e.MessageID = messageID
	return e
}

// WithTraceID adds a trace ID to the envelope for distributed tracing.
func (e Envelope[T]) WithTraceID(traceID string) Envelope[T] {
	e.TraceID = traceID
	return e
}

// IncrementRetries increments the retry count in the meta field.
func (e Envelope[T]) IncrementRetries() Envelope[T] {
	e.Meta.Retries++
	return e
}
