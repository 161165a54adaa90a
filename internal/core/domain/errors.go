package domain

import "errors"

// ============================================================================
// Upload Errors
// ============================================================================

var (
	ErrMissingUpload     = errors.New("no file uploaded (multipart field \"file\")")
	ErrInvalidUploadType = errors.New("uploaded file must have a .csv extension")
	ErrUploadTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrMalformedCSV      = errors.New("malformed CSV")
	ErrNoUpload          = errors.New("no file has been uploaded in this session")
)

// ============================================================================
// Schema Errors
// ============================================================================

var (
	ErrColumnNotFound    = errors.New("column not found")
	ErrNonNumericFeature = errors.New("feature column is not numeric")
)

// ============================================================================
// Reference Errors
// ============================================================================

var (
	ErrReferenceUnavailable    = errors.New("reference data unavailable")
	ErrReferenceLengthMismatch = errors.New("reference row count does not match uploaded row count")
	ErrUnknownMergeStrategy    = errors.New("unknown merge strategy")
)

// ============================================================================
// Model Errors
// ============================================================================

var (
	ErrInvalidModelArtifact = errors.New("invalid model artifact")
	ErrInferenceFailed      = errors.New("model inference failed")
)
