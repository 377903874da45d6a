package events

import (
	"testing"
	"time"
)

func TestNotificationValidate(t *testing.T) {
	notification := Notification{
		RecipientEmail: "someone@example.org",
		Subject:        "Access granted",
		RecipientName:  "Someone",
		PlaintextBody:  "Your access request was approved.",
	}
	if err := notification.Validate(); err != nil {
		t.Errorf("Valid notification rejected: %v", err)
	}

	notification.RecipientEmail = "not-an-email"
	if err := notification.Validate(); err == nil {
		t.Error("Malformed recipient email should fail")
	}

	notification.RecipientEmail = "someone@example.org"
	notification.EmailCC = []string{"cc@example.org", "broken"}
	if err := notification.Validate(); err == nil {
		t.Error("Malformed cc address should fail")
	}
}

func TestFileUploadReceivedValidate(t *testing.T) {
	received := FileUploadReceived{
		UploadDate:              "2024-03-01T12:30:00Z",
		FileID:                  "file-1",
		ObjectID:                "obj-1",
		BucketID:                "inbox",
		S3EndpointAlias:         "main",
		SubmitterPublicKey:      "key",
		DecryptedSize:           1024,
		ExpectedDecryptedSHA256: "abc",
	}
	if err := received.Validate(); err != nil {
		t.Errorf("Valid record rejected: %v", err)
	}

	received.UploadDate = "not-a-date"
	if err := received.Validate(); err == nil {
		t.Error("Unparseable upload date should fail")
	}

	received.UploadDate = "2024-03-01T12:30:00Z"
	received.FileID = ""
	if err := received.Validate(); err == nil {
		t.Error("Missing file ID should fail")
	}
}

func TestFileInternallyRegisteredValidate(t *testing.T) {
	registered := FileInternallyRegistered{
		FileUploadValidationSuccess: FileUploadValidationSuccess{
			UploadDate:           "2024-03-01T12:30:00Z",
			FileID:               "file-1",
			ObjectID:             "obj-1",
			BucketID:             "permanent",
			S3EndpointAlias:      "main",
			DecryptedSize:        1024,
			DecryptionSecretID:   "secret-1",
			EncryptedPartSize:    16,
			EncryptedPartsMD5:    []string{"m1"},
			EncryptedPartsSHA256: []string{"s1"},
			DecryptedSHA256:      "abc",
		},
		EncryptedSize: 2048,
	}
	if err := registered.Validate(); err != nil {
		t.Errorf("Valid record rejected: %v", err)
	}

	registered.EncryptedSize = 0
	if err := registered.Validate(); err == nil {
		t.Error("Missing encrypted size should fail")
	}
}

func TestAccessRequestDetailsValidate(t *testing.T) {
	details := AccessRequestDetails{
		UserID:       UserID{UserID: "user-1"},
		ID:           "req-1",
		DatasetID:    "DS001",
		DatasetTitle: "A dataset",
		Status:       AccessRequestAllowed,
		RequestText:  "Please grant access.",
		DACAlias:     "DAC-1",
		DACEmail:     "dac@example.org",
		AccessStarts: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AccessEnds:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := details.Validate(); err != nil {
		t.Errorf("Valid record rejected: %v", err)
	}

	details.Status = "revoked"
	if err := details.Validate(); err == nil {
		t.Error("Unknown status should fail")
	}
}

func TestUserIvaStateValidate(t *testing.T) {
	ivaType := IvaTypePhone
	state := UserIvaState{
		UserID: UserID{UserID: "user-1"},
		Type:   &ivaType,
		State:  IvaStateVerified,
	}
	if err := state.Validate(); err != nil {
		t.Errorf("Valid record rejected: %v", err)
	}

	// Null value and type address all IVAs of the user.
	state.Type = nil
	state.Value = nil
	if err := state.Validate(); err != nil {
		t.Errorf("Null value/type should be allowed: %v", err)
	}

	state.State = "Lost"
	if err := state.Validate(); err == nil {
		t.Error("Unknown state should fail")
	}
}

func TestUserValidate(t *testing.T) {
	title := AcademicTitleDr
	user := User{
		UserID: UserID{UserID: "user-1"},
		Name:   "Ada Lovelace",
		Title:  &title,
		Email:  "ada@example.org",
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Valid record rejected: %v", err)
	}

	bogus := AcademicTitle("Sir")
	user.Title = &bogus
	if err := user.Validate(); err == nil {
		t.Error("Unknown academic title should fail")
	}
}
