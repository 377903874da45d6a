package events

import (
	"bytes"
	"encoding/json"
	"fmt"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

// JSON Schema export. The descriptor definitions are the source of truth for
// the catalog; services that exchange schemas with non-Go consumers (schema
// registries, documentation, contract tests) render them as draft-07
// documents here.

// JSONSchema renders a schema definition as a draft-07 JSON Schema document.
func JSONSchema(def Definition) map[string]any {
	doc := recordSchema(def.Fields)
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	doc["title"] = def.Name
	return doc
}

// CompileJSONSchema renders the definition and compiles the resulting
// document, guaranteeing that the export is itself a valid JSON Schema.
func CompileJSONSchema(def Definition) (*santhosh.Schema, error) {
	raw, err := json.Marshal(JSONSchema(def))
	if err != nil {
		return nil, fmt.Errorf("encode schema document: %w", err)
	}

	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft7
	resource := def.Name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(resource)
}

func recordSchema(fields []FieldSpec) map[string]any {
	properties := make(map[string]any, len(fields))
	required := []string{}
	for _, f := range fields {
		properties[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func fieldSchema(f FieldSpec) map[string]any {
	var doc map[string]any
	switch f.Kind {
	case KindString:
		doc = map[string]any{"type": "string"}
	case KindInt:
		doc = map[string]any{"type": "integer"}
	case KindBool:
		doc = map[string]any{"type": "boolean"}
	case KindEnum:
		doc = map[string]any{"type": "string", "enum": f.Enum}
	case KindDateTime:
		doc = map[string]any{"type": "string", "format": "date-time"}
	case KindList:
		doc = map[string]any{"type": "array"}
		if f.Elem != nil {
			doc["items"] = fieldSchema(*f.Elem)
		}
	case KindRecord:
		doc = recordSchema(f.Fields)
	case KindObject:
		doc = map[string]any{"type": "object"}
	default:
		doc = map[string]any{}
	}

	if f.Nullable {
		if t, ok := doc["type"]; ok {
			doc["type"] = []any{t, "null"}
		}
	}
	if f.Description != "" {
		doc["description"] = f.Description
	}
	if f.Default != nil {
		doc["default"] = f.Default
	}
	return doc
}
