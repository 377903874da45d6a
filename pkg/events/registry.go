package events

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSchemaNotFound indicates the requested event type has no registered
	// schema. This usually means a protocol-version mismatch between services
	// or a caller bug, never a transient condition.
	ErrSchemaNotFound = errors.New("no schema registered for event type")

	// ErrDuplicateSchema indicates two schemas were registered under the same
	// event type. Duplicate registration is a startup configuration error.
	ErrDuplicateSchema = errors.New("schema already registered for event type")
)

// Registry maps event-type names to schema definitions. It is populated once
// at process start and never mutated afterwards, so lookups from any number
// of goroutines need no synchronization.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry returns an empty registry ready for registration.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a schema under the given event type. Registering the same
// event type twice fails; services are expected to treat this as fatal.
func (r *Registry) Register(eventType string, def Definition) error {
	if _, exists := r.defs[eventType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, eventType)
	}
	r.defs[eventType] = def
	return nil
}

// MustRegister is Register for static catalog construction, where a duplicate
// name is a programming error.
func (r *Registry) MustRegister(eventType string, def Definition) {
	if err := r.Register(eventType, def); err != nil {
		panic(err)
	}
}

// SchemaFor resolves the schema an inbound event of the given type must be
// validated against.
func (r *Registry) SchemaFor(eventType string) (Definition, error) {
	def, ok := r.defs[eventType]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrSchemaNotFound, eventType)
	}
	return def, nil
}

// EventTypes returns every registered event-type name in lexical order.
func (r *Registry) EventTypes() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
