package events

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// exampleDefinition mirrors the simplest possible schema: one string field
// and one integer field.
var exampleDefinition = Definition{
	Name: "example",
	Fields: []FieldSpec{
		String("some_param", ""),
		Int("another_param", ""),
	},
}

type examplePayload struct {
	SomeParam    string `json:"some_param"`
	AnotherParam int    `json:"another_param"`
}

func mustFail(t *testing.T, err error) *SchemaValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	var verr *SchemaValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *SchemaValidationError, got %T: %v", err, err)
	}
	return verr
}

func TestValidateHappy(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": float64(1234)}

	fields, err := Validate(payload, exampleDefinition)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if fields["some_param"] != "test" {
		t.Errorf("Expected some_param %q, got %v", "test", fields["some_param"])
	}
	if fields["another_param"] != int64(1234) {
		t.Errorf("Expected another_param 1234, got %v", fields["another_param"])
	}
}

func TestValidateMistyped(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": "test"}

	_, err := Validate(payload, exampleDefinition)
	verr := mustFail(t, err)

	if len(verr.Info.MissingFields) != 0 {
		t.Errorf("Expected no missing fields, got %v", verr.Info.MissingFields)
	}
	if len(verr.Info.UnexpectedFields) != 0 {
		t.Errorf("Expected no unexpected fields, got %v", verr.Info.UnexpectedFields)
	}
	reason, ok := verr.Info.MistypedFields["another_param"]
	if !ok {
		t.Fatalf("Expected another_param in mistyped fields, got %v", verr.Info.MistypedFields)
	}
	if reason == "" {
		t.Error("Mistyped reason should not be empty")
	}
}

func TestValidateMissing(t *testing.T) {
	payload := map[string]any{"some_param": "test"}

	_, err := Validate(payload, exampleDefinition)
	verr := mustFail(t, err)

	if !reflect.DeepEqual(verr.Info.MissingFields, []string{"another_param"}) {
		t.Errorf("Expected missing [another_param], got %v", verr.Info.MissingFields)
	}
}

func TestValidateMissingOrderFollowsDeclaration(t *testing.T) {
	def := Definition{
		Name: "ordered",
		Fields: []FieldSpec{
			String("first", ""),
			String("second", ""),
			String("third", ""),
		},
	}

	_, err := Validate(map[string]any{}, def)
	verr := mustFail(t, err)

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(verr.Info.MissingFields, want) {
		t.Errorf("Expected missing %v, got %v", want, verr.Info.MissingFields)
	}
}

func TestValidateExtrasDroppedOnSuccess(t *testing.T) {
	payload := map[string]any{
		"some_param":    "test",
		"another_param": float64(1234),
		"extra_field":   "x",
	}

	fields, err := Validate(payload, exampleDefinition)
	if err != nil {
		t.Fatalf("Payload with extra fields must succeed, got: %v", err)
	}
	if _, present := fields["extra_field"]; present {
		t.Error("extra_field must not appear in the validated instance")
	}

	typed, err := GetValidatedPayload[examplePayload](payload, exampleDefinition)
	if err != nil {
		t.Fatalf("GetValidatedPayload failed: %v", err)
	}
	if typed.SomeParam != "test" || typed.AnotherParam != 1234 {
		t.Errorf("Unexpected decoded payload: %+v", typed)
	}
}

func TestValidateExtrasReportedOnFailure(t *testing.T) {
	payload := map[string]any{
		"another_param": "oops",
		"extra_field":   "x",
		"also_extra":    true,
	}

	_, err := Validate(payload, exampleDefinition)
	verr := mustFail(t, err)

	want := []string{"also_extra", "extra_field"}
	if !reflect.DeepEqual(verr.Info.UnexpectedFields, want) {
		t.Errorf("Expected unexpected %v, got %v", want, verr.Info.UnexpectedFields)
	}
	if !reflect.DeepEqual(verr.Info.MissingFields, []string{"some_param"}) {
		t.Errorf("Expected missing [some_param], got %v", verr.Info.MissingFields)
	}
	if _, ok := verr.Info.MistypedFields["another_param"]; !ok {
		t.Errorf("Expected another_param in mistyped fields, got %v", verr.Info.MistypedFields)
	}
}

func TestValidateAggregatesAllFaultsInOnePass(t *testing.T) {
	def := Definition{
		Name: "multi",
		Fields: []FieldSpec{
			String("a", ""),
			Int("b", ""),
			Bool("c", ""),
		},
	}
	payload := map[string]any{
		"b":       "not-an-int",
		"c":       float64(1),
		"surplus": "y",
	}

	_, err := Validate(payload, def)
	verr := mustFail(t, err)

	if len(verr.Info.MissingFields) != 1 || len(verr.Info.MistypedFields) != 2 || len(verr.Info.UnexpectedFields) != 1 {
		t.Errorf("Expected 1 missing, 2 mistyped, 1 unexpected; got %+v", verr.Info)
	}
}

func TestValidateIdempotent(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": "test", "extra": 1.0}

	_, err1 := Validate(payload, exampleDefinition)
	_, err2 := Validate(payload, exampleDefinition)

	verr1 := mustFail(t, err1)
	verr2 := mustFail(t, err2)

	if !reflect.DeepEqual(verr1.Info, verr2.Info) {
		t.Errorf("Repeated validation produced different reports: %+v vs %+v", verr1.Info, verr2.Info)
	}
}

func TestValidateUploadDate(t *testing.T) {
	def := Definition{Name: "dated", Fields: []FieldSpec{UploadDate()}}

	if _, err := Validate(map[string]any{"upload_date": "2024-03-01T12:30:00Z"}, def); err != nil {
		t.Errorf("RFC3339 upload date should validate: %v", err)
	}
	if _, err := Validate(map[string]any{"upload_date": "2024-03-01T12:30:00.123456"}, def); err != nil {
		t.Errorf("Naive ISO 8601 upload date should validate: %v", err)
	}

	_, err := Validate(map[string]any{"upload_date": "not-a-date"}, def)
	verr := mustFail(t, err)

	reason := verr.Info.MistypedFields["upload_date"]
	if !strings.Contains(reason, "not-a-date") {
		t.Errorf("Reason should name the unparseable string, got %q", reason)
	}
}

func TestValidateEnumField(t *testing.T) {
	def := Definition{
		Name:   "staged",
		Fields: []FieldSpec{Enum("stage", "", "download", "upload")},
	}

	if _, err := Validate(map[string]any{"stage": "download"}, def); err != nil {
		t.Errorf("Allowed literal should validate: %v", err)
	}

	_, err := Validate(map[string]any{"stage": "sideload"}, def)
	verr := mustFail(t, err)
	if !strings.Contains(verr.Info.MistypedFields["stage"], "download") {
		t.Errorf("Enum reason should list allowed literals, got %q", verr.Info.MistypedFields["stage"])
	}
}

func TestValidateNullability(t *testing.T) {
	def := Definition{
		Name: "nullable",
		Fields: []FieldSpec{
			NullableString("description", ""),
			String("title", ""),
		},
	}

	fields, err := Validate(map[string]any{"description": nil, "title": "t"}, def)
	if err != nil {
		t.Fatalf("Null in a nullable field should validate: %v", err)
	}
	if value, present := fields["description"]; !present || value != nil {
		t.Errorf("Nullable field should be present with nil value, got %v", fields)
	}

	_, err = Validate(map[string]any{"description": nil, "title": nil}, def)
	verr := mustFail(t, err)
	if _, ok := verr.Info.MistypedFields["title"]; !ok {
		t.Errorf("Null in a non-nullable field should be mistyped, got %+v", verr.Info)
	}
}

func TestValidateOptionalFieldWithDefault(t *testing.T) {
	def := Definition{
		Name: "defaults",
		Fields: []FieldSpec{
			String("subject", ""),
			EmailList("email_cc", ""),
		},
	}

	fields, err := Validate(map[string]any{"subject": "hello"}, def)
	if err != nil {
		t.Fatalf("Absent optional field should validate: %v", err)
	}
	cc, ok := fields["email_cc"].([]any)
	if !ok || len(cc) != 0 {
		t.Errorf("Expected default empty list for email_cc, got %v", fields["email_cc"])
	}
}

func TestValidateListElements(t *testing.T) {
	def := Definition{
		Name:   "checksums",
		Fields: []FieldSpec{StringList("parts", "")},
	}

	if _, err := Validate(map[string]any{"parts": []any{"a", "b"}}, def); err != nil {
		t.Errorf("Valid list should validate: %v", err)
	}

	_, err := Validate(map[string]any{"parts": []any{"a", float64(2)}}, def)
	verr := mustFail(t, err)
	if !strings.Contains(verr.Info.MistypedFields["parts"], "element 1") {
		t.Errorf("List reason should locate the bad element, got %q", verr.Info.MistypedFields["parts"])
	}
}

func TestValidateNestedRecords(t *testing.T) {
	payload := map[string]any{
		"accession":   "DS001",
		"title":       "A dataset",
		"stage":       "download",
		"description": nil,
		"dac_alias":   "DAC-1",
		"dac_email":   "dac@example.org",
		"files": []any{
			map[string]any{
				"accession":      "F001",
				"description":    "a file",
				"file_extension": ".fastq.gz",
			},
		},
	}

	if _, err := Validate(payload, MetadataDatasetOverviewDefinition); err != nil {
		t.Fatalf("Dataset overview should validate: %v", err)
	}

	payload["files"] = []any{
		map[string]any{"accession": "F001"},
	}
	_, err := Validate(payload, MetadataDatasetOverviewDefinition)
	verr := mustFail(t, err)
	if !strings.Contains(verr.Info.MistypedFields["files"], "file_extension") {
		t.Errorf("Nested failure should surface under files, got %q", verr.Info.MistypedFields["files"])
	}
}

func TestValidateEmailConstraint(t *testing.T) {
	payload := map[string]any{
		"recipient_email": "not-an-email",
		"subject":         "s",
		"recipient_name":  "n",
		"plaintext_body":  "b",
	}

	_, err := Validate(payload, NotificationDefinition)
	verr := mustFail(t, err)
	if !strings.Contains(verr.Info.MistypedFields["recipient_email"], "not-an-email") {
		t.Errorf("Email reason should name the bad value, got %q", verr.Info.MistypedFields["recipient_email"])
	}
}

func TestValidateDoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": float64(1)}
	serialized, _ := json.Marshal(payload)

	if _, err := Validate(payload, exampleDefinition); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	after, _ := json.Marshal(payload)
	if string(serialized) != string(after) {
		t.Error("Validate must not mutate the payload")
	}
}

func TestValidateConcurrent(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": float64(1234)}

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := Validate(payload, exampleDefinition)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent validation failed: %v", err)
		}
	}
}

func TestSchemaValidationErrorMessage(t *testing.T) {
	payload := map[string]any{"some_param": "test", "another_param": "test"}

	_, err := Validate(payload, exampleDefinition)
	verr := mustFail(t, err)

	msg := verr.Error()
	if !strings.Contains(msg, "missing_fields") ||
		!strings.Contains(msg, "mistyped_fields") ||
		!strings.Contains(msg, "unexpected_fields") {
		t.Errorf("Error message should embed the error info, got %q", msg)
	}
	if !strings.Contains(msg, `"some_param":"test"`) {
		t.Errorf("Error message should embed the serialized payload, got %q", msg)
	}
}

func TestGetValidatedPayloadReturnsTypedRecord(t *testing.T) {
	payload := map[string]any{
		"upload_date":               "2024-03-01T12:30:00Z",
		"file_id":                   "file-1",
		"object_id":                 "obj-1",
		"bucket_id":                 "inbox",
		"s3_endpoint_alias":         "main",
		"submitter_public_key":      "key",
		"decrypted_size":            float64(1024),
		"expected_decrypted_sha256": "abc",
		"ignored_by_schema":         true,
	}

	received, err := GetValidatedPayload[FileUploadReceived](payload, FileUploadReceivedDefinition)
	if err != nil {
		t.Fatalf("GetValidatedPayload failed: %v", err)
	}
	if received.FileID != "file-1" || received.DecryptedSize != 1024 {
		t.Errorf("Unexpected decoded record: %+v", received)
	}
}
