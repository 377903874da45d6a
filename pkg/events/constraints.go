package events

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Shared constraint checks referenced by multiple schema definitions. Each is
// declared once here so that schemas carrying the same field shape cannot
// drift apart.

var constraintValidator = validator.New()

// uploadDateLayouts covers the ISO 8601 shapes produced by upstream services:
// RFC 3339 with or without sub-second precision, and naive timestamps without
// a zone designator.
var uploadDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidUploadDate ensures the value can be interpreted as an ISO 8601
// datetime. It is attached to every upload_date field in the catalog.
func ValidUploadDate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("upload date must be a string, got %T", value)
	}
	for _, layout := range uploadDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return fmt.Errorf("could not convert upload date to datetime: %s", s)
}

// ValidEmail ensures the value is a well-formed email address.
func ValidEmail(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("email must be a string, got %T", value)
	}
	if err := constraintValidator.Var(s, "email"); err != nil {
		return fmt.Errorf("not a valid email address: %s", s)
	}
	return nil
}

// ValidDRSURI ensures the value looks like a GA4GH DRS URI.
func ValidDRSURI(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("DRS URI must be a string, got %T", value)
	}
	if err := constraintValidator.Var(s, "uri,startswith=drs://"); err != nil {
		return fmt.Errorf("not a valid DRS URI: %s", s)
	}
	return nil
}

// Email declares a required string field constrained to email syntax.
func Email(name, description string) FieldSpec {
	return String(name, description).WithCheck(ValidEmail)
}

// EmailList declares a list-of-emails field defaulting to empty.
func EmailList(name, description string) FieldSpec {
	elem := FieldSpec{Kind: KindString, Check: ValidEmail}
	return FieldSpec{
		Name:        name,
		Kind:        KindList,
		Elem:        &elem,
		Default:     []any{},
		Description: description,
	}
}

// UploadDate declares the shared upload_date field.
func UploadDate() FieldSpec {
	return String("upload_date",
		"The date and time when this file was uploaded, as an ISO 8601 string.",
	).WithCheck(ValidUploadDate)
}
