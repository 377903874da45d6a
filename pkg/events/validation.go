package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// SchemaErrorInfo is the structured breakdown of a failed payload validation:
// schema fields the payload omits, payload values that fail their type or
// constraint check, and payload keys the schema does not declare.
type SchemaErrorInfo struct {
	MissingFields    []string          `json:"missing_fields"`
	MistypedFields   map[string]string `json:"mistyped_fields"`
	UnexpectedFields []string          `json:"unexpected_fields"`
}

// SchemaValidationError reports every fault found while validating a payload
// against an event schema. It carries the complete offending payload so that
// callers can log or dead-letter the event without re-fetching it.
type SchemaValidationError struct {
	Payload map[string]any
	Info    SchemaErrorInfo
}

func (e *SchemaValidationError) Error() string {
	info, _ := json.Marshal(e.Info)
	payload, _ := json.Marshal(e.Payload)
	return fmt.Sprintf(
		"the event payload failed validation against the corresponding event schema: %s."+
			" The complete payload is: %s",
		info, payload,
	)
}

// Validate checks an untyped payload against a schema definition.
//
// On success it returns the declared fields of the payload, type-checked and
// coerced; payload keys the schema does not declare are silently dropped. On
// failure it returns a *SchemaValidationError aggregating every detectable
// fault from a single pass, not just the first one. A payload with extra keys
// but otherwise valid declared fields succeeds; the extras are reported only
// when the payload fails for another reason.
//
// Validate is a pure function: it never mutates the payload and holds no
// state between calls, so concurrent validations need no synchronization.
func Validate(payload map[string]any, def Definition) (map[string]any, error) {
	missing := []string{}
	mistyped := map[string]string{}
	fields := make(map[string]any, len(def.Fields))

	for _, f := range def.Fields {
		value, present := payload[f.Name]
		if !present {
			if f.Required {
				missing = append(missing, f.Name)
			} else if f.Default != nil {
				fields[f.Name] = f.Default
			}
			continue
		}
		coerced, err := coerceValue(f, value)
		if err != nil {
			mistyped[f.Name] = err.Error()
			continue
		}
		fields[f.Name] = coerced
	}

	if len(missing) == 0 && len(mistyped) == 0 {
		return fields, nil
	}

	unexpected := []string{}
	for key := range payload {
		if _, declared := def.field(key); !declared {
			unexpected = append(unexpected, key)
		}
	}
	sort.Strings(unexpected)

	return nil, &SchemaValidationError{
		Payload: payload,
		Info: SchemaErrorInfo{
			MissingFields:    missing,
			MistypedFields:   mistyped,
			UnexpectedFields: unexpected,
		},
	}
}

// GetValidatedPayload validates the payload against the definition and
// decodes the surviving fields into the schema's record type.
func GetValidatedPayload[T any](payload map[string]any, def Definition) (T, error) {
	var out T
	fields, err := Validate(payload, def)
	if err != nil {
		return out, err
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("encode validated fields: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode validated payload into %T: %w", out, err)
	}
	return out, nil
}

func coerceValue(f FieldSpec, value any) (any, error) {
	if value == nil {
		if f.Nullable {
			return nil, nil
		}
		return nil, errors.New("null is not allowed")
	}

	var coerced any
	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("not a valid string (got %s)", jsonTypeName(value))
		}
		coerced = s

	case KindInt:
		n, err := coerceInt(value)
		if err != nil {
			return nil, err
		}
		coerced = n

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("not a valid boolean (got %s)", jsonTypeName(value))
		}
		coerced = b

	case KindEnum:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("not a valid string (got %s)", jsonTypeName(value))
		}
		if !contains(f.Enum, s) {
			return nil, fmt.Errorf("must be one of [%s], got %q", strings.Join(f.Enum, ", "), s)
		}
		coerced = s

	case KindDateTime:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("not a valid datetime (got %s)", jsonTypeName(value))
		}
		if err := ValidUploadDate(s); err != nil {
			return nil, fmt.Errorf("not a valid datetime: %s", s)
		}
		coerced = s

	case KindList:
		items, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("not a valid list (got %s)", jsonTypeName(value))
		}
		out := make([]any, len(items))
		for i, item := range items {
			elem, err := coerceValue(*f.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out[i] = elem
		}
		coerced = out

	case KindRecord:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("not a valid object (got %s)", jsonTypeName(value))
		}
		nested, err := Validate(m, Definition{Name: f.Name, Fields: f.Fields})
		if err != nil {
			var verr *SchemaValidationError
			if errors.As(err, &verr) {
				info, _ := json.Marshal(verr.Info)
				return nil, fmt.Errorf("nested record failed validation: %s", info)
			}
			return nil, err
		}
		coerced = nested

	case KindObject:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("not a valid object (got %s)", jsonTypeName(value))
		}
		coerced = m

	default:
		return nil, fmt.Errorf("unsupported field kind %v", f.Kind)
	}

	if f.Check != nil {
		if err := f.Check(coerced); err != nil {
			return nil, err
		}
	}
	return coerced, nil
}

func coerceInt(value any) (int64, error) {
	switch n := value.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not a valid integer (got fractional number %v)", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("not a valid integer (got %q)", n.String())
		}
		return i, nil
	default:
		return 0, fmt.Errorf("not a valid integer (got %s)", jsonTypeName(value))
	}
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
