package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

// EventProcessor handles a validated event payload. The payload map contains
// exactly the declared schema fields; undeclared keys have been dropped.
type EventProcessor interface {
	Handle(ctx context.Context, eventType string, payload map[string]any, correlationID string) error
}

// KafkaConsumer reads event envelopes from a topic, resolves the schema for
// each event type through the registry, validates the payload, and passes the
// validated fields to the processor. Events failing validation are logged and
// skipped; dead-lettering policy belongs to the calling service.
type KafkaConsumer struct {
	reader    *kafka.Reader
	registry  *Registry
	processor EventProcessor
}

func NewKafkaConsumer(brokers []string, topic, groupID string, registry *Registry) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &KafkaConsumer{reader: reader, registry: registry}
}

func (kc *KafkaConsumer) SetProcessor(processor EventProcessor) {
	kc.processor = processor
}

func (kc *KafkaConsumer) Run(ctx context.Context) error {
	for {
		m, err := kc.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if kc.processor == nil {
			log.Printf("no processor set for consumer")
			continue
		}

		eventType, correlationID, payload, err := kc.decodeEnvelope(m.Value)
		if err != nil {
			log.Printf("invalid message format: %v", err)
			continue
		}

		validated, err := kc.validatePayload(eventType, payload)
		if err != nil {
			if errors.Is(err, ErrSchemaNotFound) {
				log.Printf("skipping event: %v", err)
				continue
			}
			log.Printf("payload validation failed for %s: %v", eventType, err)
			continue
		}

		if err = kc.processor.Handle(ctx, eventType, validated, correlationID); err != nil {
			log.Printf("handle error for %s: %v", eventType, err)
		}
	}
}

// decodeEnvelope extracts the event type, correlation ID, and raw payload
// object from a serialized envelope.
func (kc *KafkaConsumer) decodeEnvelope(data []byte) (eventType, correlationID string, payload map[string]any, err error) {
	var rawEnvelope map[string]json.RawMessage
	if err = json.Unmarshal(data, &rawEnvelope); err != nil {
		return "", "", nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	typeRaw, ok := rawEnvelope["type"]
	if !ok {
		return "", "", nil, errors.New("missing type in message")
	}
	if err = json.Unmarshal(typeRaw, &eventType); err != nil {
		return "", "", nil, fmt.Errorf("invalid type format: %w", err)
	}

	correlationRaw, ok := rawEnvelope["correlation_id"]
	if !ok {
		return "", "", nil, errors.New("missing correlation_id in message")
	}
	if err = json.Unmarshal(correlationRaw, &correlationID); err != nil {
		return "", "", nil, fmt.Errorf("invalid correlation_id format: %w", err)
	}

	payloadRaw, ok := rawEnvelope["payload"]
	if !ok {
		return "", "", nil, errors.New("missing payload in message")
	}
	if err = json.Unmarshal(payloadRaw, &payload); err != nil {
		return "", "", nil, fmt.Errorf("payload is not an object: %w", err)
	}

	return eventType, correlationID, payload, nil
}

// validatePayload resolves the schema for the event type and validates the
// payload against it.
func (kc *KafkaConsumer) validatePayload(eventType string, payload map[string]any) (map[string]any, error) {
	def, err := kc.registry.SchemaFor(eventType)
	if err != nil {
		return nil, err
	}
	return Validate(payload, def)
}

// ValidateMessage validates the envelope structure of a serialized message
// before processing.
func (kc *KafkaConsumer) ValidateMessage(data []byte) (EnvelopeValidationResult, error) {
	var envelope Envelope[any]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return EnvelopeValidationResult{Valid: false}, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	return ValidateEnvelope(envelope), nil
}

func (kc *KafkaConsumer) Close() error {
	if kc.reader != nil {
		return kc.reader.Close()
	}
	return nil
}
