package events

import "time"

// Typed payload records for every event in the catalog. Producing services
// build these structs directly and validate them with Validate() before
// publishing; consuming services obtain them from GetValidatedPayload after
// the descriptor-driven validation of the raw payload.

// DatasetStage is the current stage that a metadata dataset is in.
type DatasetStage string

const (
	DatasetStageDownload DatasetStage = "download"
	DatasetStageUpload   DatasetStage = "upload"
)

// MetadataDatasetFile is a file that is part of a dataset.
type MetadataDatasetFile struct {
	Accession     string  `json:"accession" validate:"required"`
	Description   *string `json:"description"`
	FileExtension string  `json:"file_extension" validate:"required"`
}

// MetadataDatasetID relays a dataset ID, e.g. for deletion.
type MetadataDatasetID struct {
	Accession string `json:"accession" validate:"required"`
}

func (s *MetadataDatasetID) Validate() error {
	return constraintValidator.Struct(s)
}

// MetadataDatasetOverview summarizes a dataset and the files it contains.
type MetadataDatasetOverview struct {
	MetadataDatasetID
	Title       string                `json:"title" validate:"required"`
	Stage       DatasetStage          `json:"stage" validate:"required,oneof=download upload"`
	Description *string               `json:"description"`
	DACAlias    string                `json:"dac_alias" validate:"required"`
	DACEmail    string                `json:"dac_email" validate:"required,email"`
	Files       []MetadataDatasetFile `json:"files" validate:"required,dive"`
}

func (s *MetadataDatasetOverview) Validate() error {
	return constraintValidator.Struct(s)
}

// MetadataSubmissionFile is a file associated with or affected by a new or
// updated metadata submission.
type MetadataSubmissionFile struct {
	FileID          string `json:"file_id" validate:"required"`
	FileName        string `json:"file_name" validate:"required"`
	DecryptedSize   int64  `json:"decrypted_size" validate:"required,min=0"`
	DecryptedSHA256 string `json:"decrypted_sha256" validate:"required"`
}

// MetadataSubmissionUpserted is emitted when a metadata submission is created
// or updated.
type MetadataSubmissionUpserted struct {
	AssociatedFiles []MetadataSubmissionFile `json:"associated_files" validate:"required,dive"`
}

func (s *MetadataSubmissionUpserted) Validate() error {
	return constraintValidator.Struct(s)
}

// SearchableResourceInfo identifies an artifact resource.
type SearchableResourceInfo struct {
	Accession string `json:"accession" validate:"required"`
	ClassName string `json:"class_name" validate:"required"`
}

func (s *SearchableResourceInfo) Validate() error {
	return constraintValidator.Struct(s)
}

// SearchableResource carries the resource content in addition to the
// identifying information.
type SearchableResource struct {
	SearchableResourceInfo
	Content map[string]any `json:"content" validate:"required"`
}

func (s *SearchableResource) Validate() error {
	return constraintValidator.Struct(s)
}

// ArtifactTag identifies an artifact by name and study accession.
type ArtifactTag struct {
	StudyAccession string `json:"study_accession" validate:"required"`
	ArtifactName   string `json:"artifact_name" validate:"required"`
}

// Artifact carries the metadata content of an artifact.
type Artifact struct {
	ArtifactTag
	Content map[string]any `json:"content" validate:"required"`
}

func (s *Artifact) Validate() error {
	return constraintValidator.Struct(s)
}

// FileUploadReceived is emitted when a new file upload is received.
type FileUploadReceived struct {
	UploadDate              string `json:"upload_date" validate:"required"`
	FileID                  string `json:"file_id" validate:"required"`
	ObjectID                string `json:"object_id" validate:"required"`
	BucketID                string `json:"bucket_id" validate:"required"`
	S3EndpointAlias         string `json:"s3_endpoint_alias" validate:"required"`
	SubmitterPublicKey      string `json:"submitter_public_key" validate:"required"`
	DecryptedSize           int64  `json:"decrypted_size" validate:"required,min=0"`
	ExpectedDecryptedSHA256 string `json:"expected_decrypted_sha256" validate:"required"`
}

func (s *FileUploadReceived) Validate() error {
	if err := constraintValidator.Struct(s); err != nil {
		return err
	}
	return ValidUploadDate(s.UploadDate)
}

// FileUploadValidationSuccess is emitted when an uploaded file passed
// interrogation.
type FileUploadValidationSuccess struct {
	UploadDate           string   `json:"upload_date" validate:"required"`
	FileID               string   `json:"file_id" validate:"required"`
	ObjectID             string   `json:"object_id" validate:"required"`
	BucketID             string   `json:"bucket_id" validate:"required"`
	S3EndpointAlias      string   `json:"s3_endpoint_alias" validate:"required"`
	DecryptedSize        int64    `json:"decrypted_size" validate:"required,min=0"`
	DecryptionSecretID   string   `json:"decryption_secret_id" validate:"required"`
	ContentOffset        int64    `json:"content_offset" validate:"min=0"`
	EncryptedPartSize    int64    `json:"encrypted_part_size" validate:"required,min=0"`
	EncryptedPartsMD5    []string `json:"encrypted_parts_md5" validate:"required"`
	EncryptedPartsSHA256 []string `json:"encrypted_parts_sha256" validate:"required"`
	DecryptedSHA256      string   `json:"decrypted_sha256" validate:"required"`
}

func (s *FileUploadValidationSuccess) Validate() error {
	if err := constraintValidator.Struct(s); err != nil {
		return err
	}
	return ValidUploadDate(s.UploadDate)
}

// FileUploadValidationFailure is emitted when an uploaded file failed
// interrogation.
type FileUploadValidationFailure struct {
	UploadDate      string `json:"upload_date" validate:"required"`
	FileID          string `json:"file_id" validate:"required"`
	ObjectID        string `json:"object_id" validate:"required"`
	BucketID        string `json:"bucket_id" validate:"required"`
	S3EndpointAlias string `json:"s3_endpoint_alias" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
}

func (s *FileUploadValidationFailure) Validate() error {
	if err := constraintValidator.Struct(s); err != nil {
		return err
	}
	return ValidUploadDate(s.UploadDate)
}

// FileInternallyRegistered is emitted when a newly uploaded file is
// registered in the permanent storage.
type FileInternallyRegistered struct {
	FileUploadValidationSuccess
	EncryptedSize int64 `json:"encrypted_size" validate:"required,min=0"`
}

func (s *FileInternallyRegistered) Validate() error {
	if err := constraintValidator.Struct(s); err != nil {
		return err
	}
	return ValidUploadDate(s.UploadDate)
}

// FileRegisteredForDownload is emitted when a file becomes available through
// the DRS-compatible download API.
type FileRegisteredForDownload struct {
	UploadDate      string `json:"upload_date" validate:"required"`
	FileID          string `json:"file_id" validate:"required"`
	DecryptedSHA256 string `json:"decrypted_sha256" validate:"required"`
	DRSURI          string `json:"drs_uri" validate:"required"`
}

func (s *FileRegisteredForDownload) Validate() error {
	if err := constraintValidator.Struct(s); err != nil {
		return err
	}
	return ValidUploadDate(s.UploadDate)
}

// NonStagedFileRequested is emitted when a download was requested for a file
// that is not yet present in the outbox.
type NonStagedFileRequested struct {
	FileID          string `json:"file_id" validate:"required"`
	TargetObjectID  string `json:"target_object_id" validate:"required"`
	TargetBucketID  string `json:"target_bucket_id" validate:"required"`
	S3EndpointAlias string `json:"s3_endpoint_alias" validate:"required"`
	DecryptedSHA256 string `json:"decrypted_sha256" validate:"required"`
}

func (s *NonStagedFileRequested) Validate() error {
	return constraintValidator.Struct(s)
}

// FileStagedForDownload is emitted when a file is staged to the outbox.
type FileStagedForDownload struct {
	NonStagedFileRequested
}

func (s *FileStagedForDownload) Validate() error {
	return constraintValidator.Struct(s)
}

// FileDownloadServed is emitted when file content was served for download.
// Useful for auditing.
type FileDownloadServed struct {
	NonStagedFileRequested
	Context string `json:"context" validate:"required"`
}

func (s *FileDownloadServed) Validate() error {
	return constraintValidator.Struct(s)
}

// FileDeletionRequested is emitted when a file shall be removed from the file
// backend.
type FileDeletionRequested struct {
	FileID string `json:"file_id" validate:"required"`
}

func (s *FileDeletionRequested) Validate() error {
	return constraintValidator.Struct(s)
}

// FileDeletionSuccess is emitted when a service has deleted a file from its
// database and the buckets it controls.
type FileDeletionSuccess struct {
	FileDeletionRequested
}

func (s *FileDeletionSuccess) Validate() error {
	return constraintValidator.Struct(s)
}

// Notification is emitted by services that want to send an email
// notification; the notification service picks it up.
type Notification struct {
	RecipientEmail string   `json:"recipient_email" validate:"required,email"`
	EmailCC        []string `json:"email_cc" validate:"omitempty,dive,email"`
	EmailBCC       []string `json:"email_bcc" validate:"omitempty,dive,email"`
	Subject        string   `json:"subject" validate:"required"`
	RecipientName  string   `json:"recipient_name" validate:"required"`
	PlaintextBody  string   `json:"plaintext_body" validate:"required"`
}

func (s *Notification) Validate() error {
	return constraintValidator.Struct(s)
}

// UserID relays a user ID.
type UserID struct {
	UserID string `json:"user_id" validate:"required"`
}

func (s *UserID) Validate() error {
	return constraintValidator.Struct(s)
}

// AcademicTitle is an academic title.
type AcademicTitle string

const (
	AcademicTitleDr   AcademicTitle = "Dr."
	AcademicTitleProf AcademicTitle = "Prof."
)

// User publishes user data changes.
type User struct {
	UserID
	Name  string         `json:"name" validate:"required"`
	Title *AcademicTitle `json:"title,omitempty" validate:"omitempty,oneof=Dr. Prof."`
	Email string         `json:"email" validate:"required,email"`
}

func (s *User) Validate() error {
	return constraintValidator.Struct(s)
}

// AccessRequestStatus is the status of an access request.
type AccessRequestStatus string

const (
	AccessRequestAllowed AccessRequestStatus = "allowed"
	AccessRequestDenied  AccessRequestStatus = "denied"
	AccessRequestPending AccessRequestStatus = "pending"
)

// AccessRequestDetails conveys the details of a dataset access request.
type AccessRequestDetails struct {
	UserID
	ID                 string              `json:"id" validate:"required"`
	DatasetID          string              `json:"dataset_id" validate:"required"`
	DatasetTitle       string              `json:"dataset_title" validate:"required"`
	DatasetDescription *string             `json:"dataset_description,omitempty"`
	Status             AccessRequestStatus `json:"status" validate:"required,oneof=allowed denied pending"`
	RequestText        string              `json:"request_text" validate:"required"`
	DACAlias           string              `json:"dac_alias" validate:"required"`
	DACEmail           string              `json:"dac_email" validate:"required,email"`
	TicketID           *string             `json:"ticket_id,omitempty"`
	InternalNote       *string             `json:"internal_note,omitempty"`
	NoteToRequester    *string             `json:"note_to_requester,omitempty"`
	AccessStarts       time.Time           `json:"access_starts" validate:"required"`
	AccessEnds         time.Time           `json:"access_ends" validate:"required"`
}

func (s *AccessRequestDetails) Validate() error {
	return constraintValidator.Struct(s)
}

// IvaType is the type of an independent verification address.
type IvaType string

const (
	IvaTypePhone         IvaType = "Phone"
	IvaTypeFax           IvaType = "Fax"
	IvaTypePostalAddress IvaType = "PostalAddress"
	IvaTypeInPerson      IvaType = "InPerson"
)

// IvaState is the verification state of an IVA.
type IvaState string

const (
	IvaStateUnverified      IvaState = "Unverified"
	IvaStateCodeRequested   IvaState = "CodeRequested"
	IvaStateCodeCreated     IvaState = "CodeCreated"
	IvaStateCodeTransmitted IvaState = "CodeTransmitted"
	IvaStateVerified        IvaState = "Verified"
)

// UserIvaState notifies about state changes of a user's IVA(s). A null value
// or type addresses all IVAs of the user.
type UserIvaState struct {
	UserID
	Value *string  `json:"value"`
	Type  *IvaType `json:"type"`
	State IvaState `json:"state" validate:"required,oneof=Unverified CodeRequested CodeCreated CodeTransmitted Verified"`
}

func (s *UserIvaState) Validate() error {
	return constraintValidator.Struct(s)
}
