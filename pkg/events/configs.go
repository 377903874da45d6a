package events

// Topic and event-type configuration fields, one struct per event family.
// These are pure data declarations: services embed them into their own config
// structs so that every producer and consumer of an event family discovers
// the topic and type names through the same settings. The env tags document
// the canonical environment variables; parsing is owned by the services.

// ValidateConfig checks that every required topic/type setting is populated.
func ValidateConfig(cfg any) error {
	return constraintValidator.Struct(cfg)
}

// FileMetadataEventsConfig is for events related to new file metadata
// arrivals.
type FileMetadataEventsConfig struct {
	FileMetadataEventTopic string `env:"FILE_METADATA_EVENT_TOPIC" json:"file_metadata_event_topic" validate:"required"`
	FileMetadataEventType  string `env:"FILE_METADATA_EVENT_TYPE" json:"file_metadata_event_type" validate:"required"`
}

// FileUploadReceivedEventsConfig is for events about new file uploads.
type FileUploadReceivedEventsConfig struct {
	FileUploadReceivedTopic     string `env:"FILE_UPLOAD_RECEIVED_TOPIC" json:"file_upload_received_topic" validate:"required"`
	FileUploadReceivedEventType string `env:"FILE_UPLOAD_RECEIVED_EVENT_TYPE" json:"file_upload_received_event_type" validate:"required"`
}

// FileInterrogationsConfig names the topic for file interrogation outcomes.
type FileInterrogationsConfig struct {
	FileInterrogationsTopic string `env:"FILE_INTERROGATIONS_TOPIC" json:"file_interrogations_topic" validate:"required"`
}

// FileValidationSuccessEventsConfig is for events conveying that a file
// interrogation was successful.
type FileValidationSuccessEventsConfig struct {
	FileInterrogationsConfig
	InterrogationSuccessEventType string `env:"INTERROGATION_SUCCESS_EVENT_TYPE" json:"interrogation_success_event_type" validate:"required"`
}

// FileValidationFailureEventsConfig is for events conveying that a file
// interrogation was unsuccessful.
type FileValidationFailureEventsConfig struct {
	FileInterrogationsConfig
	InterrogationFailureEventType string `env:"INTERROGATION_FAILURE_EVENT_TYPE" json:"interrogation_failure_event_type" validate:"required"`
}

// FileToRegisterEventsConfig is for events containing info about a file to
// register.
type FileToRegisterEventsConfig struct {
	FilesToRegisterEventTopic string `env:"FILES_TO_REGISTER_EVENT_TOPIC" json:"files_to_register_event_topic" validate:"required"`
	FilesToRegisterEventType  string `env:"FILES_TO_REGISTER_EVENT_TYPE" json:"files_to_register_event_type" validate:"required"`
}

// FileRegisteredEventsConfig is for events conveying that a file was
// registered in the permanent bucket.
type FileRegisteredEventsConfig struct {
	FileRegisteredEventTopic string `env:"FILE_REGISTERED_EVENT_TOPIC" json:"file_registered_event_topic" validate:"required"`
	FileRegisteredEventType  string `env:"FILE_REGISTERED_EVENT_TYPE" json:"file_registered_event_type" validate:"required"`
}

// FileStagingRequestedEventsConfig is for events indicating that a file was
// requested for download but is not present in the outbox.
type FileStagingRequestedEventsConfig struct {
	FilesToStageEventTopic string `env:"FILES_TO_STAGE_EVENT_TOPIC" json:"files_to_stage_event_topic" validate:"required"`
	FilesToStageEventType  string `env:"FILES_TO_STAGE_EVENT_TYPE" json:"files_to_stage_event_type" validate:"required"`
}

// FileStagedEventsConfig is for events indicating that a file was staged to
// the download bucket.
type FileStagedEventsConfig struct {
	FileStagedEventTopic string `env:"FILE_STAGED_EVENT_TOPIC" json:"file_staged_event_topic" validate:"required"`
	FileStagedEventType  string `env:"FILE_STAGED_EVENT_TYPE" json:"file_staged_event_type" validate:"required"`
}

// DownloadServedEventsConfig is for events indicating that a file was
// downloaded.
type DownloadServedEventsConfig struct {
	DownloadServedEventTopic string `env:"DOWNLOAD_SERVED_EVENT_TOPIC" json:"download_served_event_topic" validate:"required"`
	DownloadServedEventType  string `env:"DOWNLOAD_SERVED_EVENT_TYPE" json:"download_served_event_type" validate:"required"`
}

// FileDeletionRequestEventsConfig is for events that require deleting a file.
type FileDeletionRequestEventsConfig struct {
	FilesToDeleteTopic      string `env:"FILES_TO_DELETE_TOPIC" json:"files_to_delete_topic" validate:"required"`
	FileDeletionRequestType string `env:"FILE_DELETION_REQUEST_EVENT_TYPE" json:"file_deletion_request_event_type" validate:"required"`
}

// FileDeletedEventsConfig is for events indicating that a file has been
// deleted successfully.
type FileDeletedEventsConfig struct {
	FileDeletedEventTopic string `env:"FILE_DELETED_EVENT_TOPIC" json:"file_deleted_event_topic" validate:"required"`
	FileDeletedEventType  string `env:"FILE_DELETED_EVENT_TYPE" json:"file_deleted_event_type" validate:"required"`
}

// NotificationEventsConfig is for notification events.
type NotificationEventsConfig struct {
	NotificationEventTopic string `env:"NOTIFICATION_EVENT_TOPIC" json:"notification_event_topic" validate:"required"`
	NotificationEventType  string `env:"NOTIFICATION_EVENT_TYPE" json:"notification_event_type" validate:"required"`
}

// AccessRequestEventsConfig names the topic used to consume access request
// events.
type AccessRequestEventsConfig struct {
	AccessRequestEventsTopic string `env:"ACCESS_REQUEST_EVENTS_TOPIC" json:"access_request_events_topic" validate:"required"`
}

// AccessRequestCreatedEventsConfig is for events conveying that an access
// request was created.
type AccessRequestCreatedEventsConfig struct {
	AccessRequestEventsConfig
	AccessRequestCreatedEventType string `env:"ACCESS_REQUEST_CREATED_EVENT_TYPE" json:"access_request_created_event_type" validate:"required"`
}

// AccessRequestAllowedEventsConfig is for events conveying that an access
// request was approved.
type AccessRequestAllowedEventsConfig struct {
	AccessRequestEventsConfig
	AccessRequestAllowedEventType string `env:"ACCESS_REQUEST_ALLOWED_EVENT_TYPE" json:"access_request_allowed_event_type" validate:"required"`
}

// AccessRequestDeniedEventsConfig is for events conveying that an access
// request was denied.
type AccessRequestDeniedEventsConfig struct {
	AccessRequestEventsConfig
	AccessRequestDeniedEventType string `env:"ACCESS_REQUEST_DENIED_EVENT_TYPE" json:"access_request_denied_event_type" validate:"required"`
}

// IvaChangeEventsConfig is for events communicating updates to IVA states.
type IvaChangeEventsConfig struct {
	IvaStateChangedEventTopic string `env:"IVA_STATE_CHANGED_EVENT_TOPIC" json:"iva_state_changed_event_topic" validate:"required"`
	IvaStateChangedEventType  string `env:"IVA_STATE_CHANGED_EVENT_TYPE" json:"iva_state_changed_event_type" validate:"required"`
}

// AuthEventsConfig names the topic containing auth-related events.
type AuthEventsConfig struct {
	AuthEventTopic string `env:"AUTH_EVENT_TOPIC" json:"auth_event_topic" validate:"required"`
}

// SecondFactorRecreatedEventsConfig is for events conveying that the second
// authentication factor of a user has been recreated.
type SecondFactorRecreatedEventsConfig struct {
	AuthEventsConfig
	SecondFactorRecreatedEventType string `env:"SECOND_FACTOR_RECREATED_EVENT_TYPE" json:"second_factor_recreated_event_type" validate:"required"`
}
