package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaProducer publishes event envelopes. When constructed with a schema
// registry it validates every payload against its schema before writing, so
// schema drift is caught at the producer instead of at every consumer.
type KafkaProducer struct {
	w        *kafka.Writer
	registry *Registry
}

func NewKafkaProducer(brokers []string, registry *Registry) *KafkaProducer {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Balancer:     &kafka.Hash{},
		RequiredAcks: int(kafka.RequireAll),
		Async:        false,
	})
	return &KafkaProducer{w: w, registry: registry}
}

func (p *KafkaProducer) Close() error {
	return p.w.Close()
}

// PublishEvent validates the envelope payload against the registered schema
// for its event type and writes it to the topic named after the type.
func (p *KafkaProducer) PublishEvent(ctx context.Context, key []byte, envelope Envelope[any]) error {
	if result := ValidateEnvelope(envelope); !result.Valid {
		return fmt.Errorf("invalid envelope: %v", result.Errors)
	}

	if p.registry != nil {
		if err := p.checkPayloadSchema(envelope); err != nil {
			return err
		}
	}

	value, err := MarshalEnvelope(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	kafkaHeaders := make([]kafka.Header, 0, len(envelope.KafkaHeaders()))
	for _, h := range envelope.KafkaHeaders() {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{
			Key:   h.Key,
			Value: h.Value,
		})
	}

	msg := kafka.Message{
		Topic:   envelope.Type,
		Key:     key,
		Value:   value,
		Headers: kafkaHeaders,
		Time:    time.Now(),
	}
	return p.w.WriteMessages(ctx, msg)
}

func (p *KafkaProducer) checkPayloadSchema(envelope Envelope[any]) error {
	def, err := p.registry.SchemaFor(envelope.Type)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(envelope.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("payload of %s is not an object: %w", envelope.Type, err)
	}

	if _, err := Validate(payload, def); err != nil {
		return err
	}
	return nil
}

// BuildEnvelope wraps an event payload in an envelope with a fresh message ID
// and default metadata for the given service.
func BuildEnvelope[T any](event T, eventType, correlationID, service string) Envelope[any] {
	return Envelope[any]{
		MessageID:     uuid.NewString(),
		CorrelationID: correlationID,
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		Payload:       event,
		Meta:          NewMeta(service, InitiatorSystem),
	}
}

// BuildEnvelopeWithMeta creates an envelope with custom meta information.
func BuildEnvelopeWithMeta[T any](event T, eventType, correlationID string, meta Meta) Envelope[any] {
	return Envelope[any]{
		MessageID:     uuid.NewString(),
		CorrelationID: correlationID,
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		Payload:       event,
		Meta:          meta,
	}
}
