package events

// Schema definitions for every event type in the catalog. Base field sets
// shared by several events are declared once and flattened into the derived
// definitions here, at declaration time.

var datasetIDFields = []FieldSpec{
	String("accession", "The dataset accession."),
}

var datasetFileFields = []FieldSpec{
	String("accession", "The file accession."),
	NullableString("description", "The description of the file."),
	String("file_extension", "The file extension with a leading dot."),
}

// MetadataDatasetIDDefinition relays a dataset ID, e.g. for deletion.
var MetadataDatasetIDDefinition = Definition{
	Name:   "metadata_dataset_id",
	Fields: datasetIDFields,
}

// MetadataDatasetOverviewDefinition summarizes a dataset and its files.
var MetadataDatasetOverviewDefinition = Definition{
	Name: "metadata_dataset_overview",
	Fields: extend(datasetIDFields,
		String("title", "The title of the dataset."),
		Enum("stage", "The current stage of this dataset.", "download", "upload"),
		NullableString("description", "The description of the dataset."),
		String("dac_alias", "The alias of the Data Access Committee."),
		Email("dac_email", "The email address of the Data Access Committee."),
		FieldSpec{
			Name:        "files",
			Kind:        KindList,
			Required:    true,
			Elem:        &FieldSpec{Kind: KindRecord, Fields: datasetFileFields},
			Description: "Files contained in the dataset.",
		},
	),
}

var submissionFileFields = []FieldSpec{
	String("file_id", "The public ID of the file as present in the metadata catalog."),
	String("file_name", "The name of the file as it was submitted."),
	Int("decrypted_size", "The size of the entire decrypted file content in bytes."),
	String("decrypted_sha256", "The SHA-256 checksum of the entire decrypted file content."),
}

// MetadataSubmissionUpsertedDefinition covers new or updated metadata
// submissions.
var MetadataSubmissionUpsertedDefinition = Definition{
	Name: "metadata_submission_upserted",
	Fields: []FieldSpec{
		{
			Name:        "associated_files",
			Kind:        KindList,
			Required:    true,
			Elem:        &FieldSpec{Kind: KindRecord, Fields: submissionFileFields},
			Description: "Files associated with or affected by the submission.",
		},
	},
}

var searchableResourceInfoFields = []FieldSpec{
	String("accession", "The resource accession."),
	String("class_name", "The name of the class this artifact resource corresponds to."),
}

// SearchableResourceInfoDefinition identifies an artifact resource.
var SearchableResourceInfoDefinition = Definition{
	Name:   "searchable_resource_info",
	Fields: searchableResourceInfoFields,
}

// SearchableResourceDefinition adds the resource content.
var SearchableResourceDefinition = Definition{
	Name: "searchable_resource",
	Fields: extend(searchableResourceInfoFields,
		Object("content", "The metadata content of this artifact resource."),
	),
}

var artifactTagFields = []FieldSpec{
	String("study_accession", "The ID of the study this artifact pertains to."),
	String("artifact_name", "The name of the artifact."),
}

// ArtifactDefinition describes a metadata transformation artifact.
var ArtifactDefinition = Definition{
	Name: "artifact",
	Fields: extend(artifactTagFields,
		Object("content", "The metadata content of the artifact."),
	),
}

// uploadDateFields is the shared base for every event carrying a stringified
// upload_date. All of them use the single ValidUploadDate constraint.
var uploadDateFields = []FieldSpec{
	UploadDate(),
}

// FileUploadReceivedDefinition covers newly received file uploads.
var FileUploadReceivedDefinition = Definition{
	Name: "file_upload_received",
	Fields: extend(uploadDateFields,
		String("file_id", "The public ID of the file as present in the metadata catalog."),
		String("object_id", "The ID of the file in the specific S3 bucket."),
		String("bucket_id", "The ID/name of the S3 bucket used to store the file."),
		String("s3_endpoint_alias", "Alias of the object storage location holding the object."),
		String("submitter_public_key", "The public key of the submitter."),
		Int("decrypted_size", "The size of the entire decrypted file content in bytes."),
		String("expected_decrypted_sha256", "The expected SHA-256 checksum of the decrypted content."),
	),
}

// FileUploadValidationSuccessDefinition covers successful file
// interrogations.
var FileUploadValidationSuccessDefinition = Definition{
	Name: "file_upload_validation_success",
	Fields: extend(uploadDateFields,
		String("file_id", "The public ID of the file as present in the metadata catalog."),
		String("object_id", "The ID of the file in the specific S3 bucket."),
		String("bucket_id", "The ID/name of the S3 bucket used to store the file."),
		String("s3_endpoint_alias", "Alias of the object storage location holding the object."),
		Int("decrypted_size", "The size of the entire decrypted file content in bytes."),
		String("decryption_secret_id", "The ID of the symmetric file encryption secret."),
		Int("content_offset", "The offset in bytes at which the encrypted content starts."),
		Int("encrypted_part_size", "The part size used for the encrypted-content checksums."),
		StringList("encrypted_parts_md5", "MD5 checksums of the encrypted content parts."),
		StringList("encrypted_parts_sha256", "SHA-256 checksums of the encrypted content parts."),
		String("decrypted_sha256", "The SHA-256 checksum of the entire decrypted file content."),
	),
}

// FileUploadValidationFailureDefinition covers failed file interrogations.
var FileUploadValidationFailureDefinition = Definition{
	Name: "file_upload_validation_failure",
	Fields: extend(uploadDateFields,
		String("file_id", "The public ID of the file as present in the metadata catalog."),
		String("object_id", "The ID of the file in the specific S3 bucket."),
		String("bucket_id", "The ID/name of the S3 bucket used to store the file."),
		String("s3_endpoint_alias", "Alias of the object storage location holding the object."),
		String("reason", "The reason why the validation failed."),
	),
}

// FileInternallyRegisteredDefinition extends the validation-success shape
// with the encrypted size.
var FileInternallyRegisteredDefinition = Definition{
	Name: "file_internally_registered",
	Fields: extend(FileUploadValidationSuccessDefinition.Fields,
		Int("encrypted_size", "The size of the encrypted file content in bytes."),
	),
}

// FileRegisteredForDownloadDefinition covers files that became available via
// the DRS-compatible download API.
var FileRegisteredForDownloadDefinition = Definition{
	Name: "file_registered_for_download",
	Fields: extend(uploadDateFields,
		String("file_id", "The public ID of the file as present in the metadata catalog."),
		String("decrypted_sha256", "The SHA-256 checksum of the entire decrypted file content."),
		String("drs_uri", "A GA4GH DRS URI for accessing the file.").WithCheck(ValidDRSURI),
	),
}

var stagedFileFields = []FieldSpec{
	String("file_id", "The public ID of the file as present in the metadata catalog."),
	String("target_object_id", "The ID of the file in the specific S3 bucket."),
	String("target_bucket_id", "The ID/name of the S3 bucket in which the object was expected."),
	String("s3_endpoint_alias", "Alias of the object storage location holding the object."),
	String("decrypted_sha256", "The SHA-256 checksum of the entire decrypted file content."),
}

// NonStagedFileRequestedDefinition covers download requests for files not yet
// present in the outbox.
var NonStagedFileRequestedDefinition = Definition{
	Name:   "non_staged_file_requested",
	Fields: stagedFileFields,
}

// FileStagedForDownloadDefinition covers files staged to the outbox storage.
var FileStagedForDownloadDefinition = Definition{
	Name:   "file_staged_for_download",
	Fields: stagedFileFields,
}

// FileDownloadServedDefinition covers served downloads, for auditing.
var FileDownloadServedDefinition = Definition{
	Name: "file_download_served",
	Fields: extend(stagedFileFields,
		String("context", "The context in which the download was served."),
	),
}

var fileDeletionFields = []FieldSpec{
	String("file_id", "The public ID of the file as present in the metadata catalog."),
}

// FileDeletionRequestedDefinition covers requests to delete a file from the
// file backend.
var FileDeletionRequestedDefinition = Definition{
	Name:   "file_deletion_requested",
	Fields: fileDeletionFields,
}

// FileDeletionSuccessDefinition covers completed file deletions.
var FileDeletionSuccessDefinition = Definition{
	Name:   "file_deletion_success",
	Fields: fileDeletionFields,
}

// NotificationDefinition covers email notifications to be dispatched by the
// notification service.
var NotificationDefinition = Definition{
	Name: "notification",
	Fields: []FieldSpec{
		Email("recipient_email", "The primary recipient of the email."),
		EmailList("email_cc", "The list of recipients cc'd on the email."),
		EmailList("email_bcc", "The list of recipients bcc'd on the email."),
		String("subject", "The subject line for the notification."),
		String("recipient_name", "The full name of the recipient."),
		String("plaintext_body", "The basic text for the notification body."),
	},
}

var userIDFields = []FieldSpec{
	String("user_id", "The user ID."),
}

// UserIDDefinition relays a user ID.
var UserIDDefinition = Definition{
	Name:   "user_id",
	Fields: userIDFields,
}

// UserDefinition publishes user data changes.
var UserDefinition = Definition{
	Name: "user",
	Fields: extend(userIDFields,
		String("name", "Full name of the user."),
		OptionalString("title", "Academic title of the user."),
		Email("email", "Preferred e-mail address of the user."),
	),
}

// AccessRequestDetailsDefinition conveys the details of a dataset access
// request.
var AccessRequestDetailsDefinition = Definition{
	Name: "access_request_details",
	Fields: extend(userIDFields,
		String("id", "The access request ID."),
		String("dataset_id", "The dataset ID."),
		String("dataset_title", "The dataset title."),
		OptionalString("dataset_description", "A description of the dataset."),
		Enum("status", "The status of the access request.", "allowed", "denied", "pending"),
		String("request_text", "Text note submitted with the request."),
		String("dac_alias", "The alias of the responsible Data Access Committee."),
		Email("dac_email", "The email address of the Data Access Committee."),
		OptionalString("ticket_id", "The ID of the ticket associated with the request."),
		OptionalString("internal_note", "A note only visible to Data Stewards."),
		OptionalString("note_to_requester", "A note visible to the requester."),
		DateTime("access_starts", "The beginning of the access validity period, UTC."),
		DateTime("access_ends", "The end of the access validity period, UTC."),
	),
}

// UserIvaStateDefinition notifies about IVA state changes. A null value or
// type addresses all IVAs of the user.
var UserIvaStateDefinition = Definition{
	Name: "iva_state_change",
	Fields: extend(userIDFields,
		NullableString("value", "The value of the IVA (null = all IVAs of the user)."),
		Enum("type", "The type of the IVA (null = all IVAs of the user).",
			"Phone", "Fax", "PostalAddress", "InPerson").AllowNull(),
		Enum("state", "The new state of the IVA.",
			"Unverified", "CodeRequested", "CodeCreated", "CodeTransmitted", "Verified"),
	),
}

// catalog pairs every event type with its schema, in a stable order.
var catalog = []struct {
	EventType  string
	Definition Definition
}{
	{EventTypeMetadataDatasetDeleted, MetadataDatasetIDDefinition},
	{EventTypeMetadataDatasetOverview, MetadataDatasetOverviewDefinition},
	{EventTypeMetadataSubmissionUpserted, MetadataSubmissionUpsertedDefinition},
	{EventTypeFileUploadReceived, FileUploadReceivedDefinition},
	{EventTypeFileUploadValidationSuccess, FileUploadValidationSuccessDefinition},
	{EventTypeFileUploadValidationFailure, FileUploadValidationFailureDefinition},
	{EventTypeFileInternallyRegistered, FileInternallyRegisteredDefinition},
	{EventTypeFileRegisteredForDownload, FileRegisteredForDownloadDefinition},
	{EventTypeNonStagedFileRequested, NonStagedFileRequestedDefinition},
	{EventTypeFileStagedForDownload, FileStagedForDownloadDefinition},
	{EventTypeFileDownloadServed, FileDownloadServedDefinition},
	{EventTypeFileDeletionRequested, FileDeletionRequestedDefinition},
	{EventTypeFileDeletionSuccess, FileDeletionSuccessDefinition},
	{EventTypeNotification, NotificationDefinition},
	{EventTypeSearchableResourceDeleted, SearchableResourceInfoDefinition},
	{EventTypeSearchableResourceUpserted, SearchableResourceDefinition},
	{EventTypeUserID, UserIDDefinition},
	{EventTypeSecondFactorRecreated, UserIDDefinition},
	{EventTypeAccessRequestDetails, AccessRequestDetailsDefinition},
	{EventTypeIvaStateChanged, UserIvaStateDefinition},
}

// NewDefaultRegistry builds the registry holding every schema in the catalog.
// Call it once at process start and pass the result to consumers.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, entry := range catalog {
		if err := r.Register(entry.EventType, entry.Definition); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewDefaultRegistry panics when the catalog is misconfigured. A
// duplicate event-type name is a programming error, so panicking at startup
// is the intended behavior.
func MustNewDefaultRegistry() *Registry {
	r, err := NewDefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
