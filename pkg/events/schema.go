package events

// FieldKind identifies the wire type a schema field expects.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindBool
	KindEnum
	KindDateTime
	KindList
	KindRecord
	// KindObject accepts any JSON object without inspecting its members.
	// Used for free-form metadata content carried inside an event.
	KindObject
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindDateTime:
		return "datetime"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// CheckFunc is a custom constraint applied to a field value after its kind
// has been verified. It returns a reason describing the violation.
type CheckFunc func(value any) error

// FieldSpec describes a single schema field.
//
// Required controls whether the key must be present in the payload.
// Nullable controls whether an explicit null is accepted as the value.
// The two are independent: a field can be required yet nullable.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	Nullable bool

	// Enum holds the allowed literals for KindEnum fields.
	Enum []string
	// Elem describes the element type for KindList fields.
	Elem *FieldSpec
	// Fields describes the nested record for KindRecord fields.
	Fields []FieldSpec
	// Check is an optional custom constraint, e.g. ValidUploadDate.
	Check CheckFunc
	// Default is substituted when an optional field is absent.
	Default any

	Description string
}

// Definition is a named, ordered set of field specifications. Definitions are
// declared once at startup and never mutated afterwards, so they are safe for
// concurrent use.
type Definition struct {
	Name   string
	Fields []FieldSpec
}

// FieldNames returns the declared field names in declaration order.
func (d Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

func (d Definition) field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// String declares a required string field.
func String(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString, Required: true, Description: description}
}

// NullableString declares a required field holding either a string or null.
func NullableString(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString, Required: true, Nullable: true, Description: description}
}

// OptionalString declares a field that may be absent or null.
func OptionalString(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString, Nullable: true, Description: description}
}

// Int declares a required integer field.
func Int(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindInt, Required: true, Description: description}
}

// Bool declares a required boolean field.
func Bool(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindBool, Required: true, Description: description}
}

// Enum declares a required enumerated string field.
func Enum(name, description string, allowed ...string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindEnum, Required: true, Enum: allowed, Description: description}
}

// DateTime declares a required RFC 3339 datetime field carried as a string.
func DateTime(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindDateTime, Required: true, Description: description}
}

// StringList declares a required list-of-strings field.
func StringList(name, description string) FieldSpec {
	elem := FieldSpec{Kind: KindString}
	return FieldSpec{Name: name, Kind: KindList, Required: true, Elem: &elem, Description: description}
}

// Record declares a required nested record field.
func Record(name, description string, fields ...FieldSpec) FieldSpec {
	return FieldSpec{Name: name, Kind: KindRecord, Required: true, Fields: fields, Description: description}
}

// Object declares a required free-form JSON object field.
func Object(name, description string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindObject, Required: true, Description: description}
}

// AllowNull marks the field as accepting an explicit null value.
func (f FieldSpec) AllowNull() FieldSpec {
	f.Nullable = true
	return f
}

// WithCheck attaches a custom constraint to the field.
func (f FieldSpec) WithCheck(check CheckFunc) FieldSpec {
	f.Check = check
	return f
}

// WithDefault makes the field optional with the given default value.
func (f FieldSpec) WithDefault(value any) FieldSpec {
	f.Required = false
	f.Default = value
	return f
}

// WithElem overrides the element spec of a list field.
func (f FieldSpec) WithElem(elem FieldSpec) FieldSpec {
	f.Elem = &elem
	return f
}

// extend builds a derived field list from a base plus additional fields.
// Schema inheritance in the catalog is expressed by flattening field sets at
// declaration time rather than by type embedding.
func extend(base []FieldSpec, extra ...FieldSpec) []FieldSpec {
	fields := make([]FieldSpec, 0, len(base)+len(extra))
	fields = append(fields, base...)
	fields = append(fields, extra...)
	return fields
}
