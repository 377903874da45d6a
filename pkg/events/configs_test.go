package events

import "testing"

func TestValidateConfig(t *testing.T) {
	complete := FileDeletionRequestEventsConfig{
		FilesToDeleteTopic:      EventTypeFileDeletionRequested,
		FileDeletionRequestType: EventTypeFileDeletionRequested,
	}
	if err := ValidateConfig(complete); err != nil {
		t.Errorf("Complete config rejected: %v", err)
	}

	incomplete := FileDeletionRequestEventsConfig{
		FilesToDeleteTopic: EventTypeFileDeletionRequested,
	}
	if err := ValidateConfig(incomplete); err == nil {
		t.Error("Config missing the event type should fail")
	}
}

func TestValidateConfigEmbeddedTopic(t *testing.T) {
	cfg := FileValidationSuccessEventsConfig{
		InterrogationSuccessEventType: EventTypeFileUploadValidationSuccess,
	}
	if err := ValidateConfig(cfg); err == nil {
		t.Error("Config missing the embedded topic should fail")
	}

	cfg.FileInterrogationsTopic = "file-interrogations"
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("Complete config rejected: %v", err)
	}
}
