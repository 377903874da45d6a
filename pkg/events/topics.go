package events

// Event-type names for all HelixArchive services. These names key the schema
// registry and are carried in message metadata by the transport layer, so
// every producer and consumer must use the same spelling.
const (
	// Metadata events
	EventTypeMetadataDatasetDeleted     = "metadata_dataset_deleted"
	EventTypeMetadataDatasetOverview    = "metadata_dataset_overview"
	EventTypeMetadataSubmissionUpserted = "metadata_submission_upserted"

	// File lifecycle events
	EventTypeFileUploadReceived          = "file_upload_received"
	EventTypeFileUploadValidationSuccess = "file_upload_validation_success"
	EventTypeFileUploadValidationFailure = "file_upload_validation_failure"
	EventTypeFileInternallyRegistered    = "file_internally_registered"
	EventTypeFileRegisteredForDownload   = "file_registered_for_download"
	EventTypeNonStagedFileRequested      = "non_staged_file_requested"
	EventTypeFileStagedForDownload       = "file_staged_for_download"
	EventTypeFileDownloadServed          = "file_download_served"
	EventTypeFileDeletionRequested       = "file_deletion_requested"
	EventTypeFileDeletionSuccess         = "file_deletion_success"

	// Notification events
	EventTypeNotification = "notification"

	// Search index events
	EventTypeSearchableResourceDeleted  = "searchable_resource_deleted"
	EventTypeSearchableResourceUpserted = "searchable_resource_upserted"

	// Access-control events
	EventTypeUserID                = "user_id"
	EventTypeSecondFactorRecreated = "second_factor_recreated"
	EventTypeAccessRequestDetails  = "access_request_details"
	EventTypeIvaStateChanged       = "iva_state_changed"
)
