package vault

import "errors"

// Error classes callers are expected to branch on with errors.Is. Expected
// failure modes are values of this taxonomy, never panics and never
// generic errors the caller has to string-match.
var (
	// ErrValidation covers malformed input rejected before any I/O,
	// including identical owner and user passwords.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateID is returned when the caller-chosen document id is
	// already taken. Rejected before pipeline work begins.
	ErrDuplicateID = errors.New("document id already exists")

	// ErrNotFound is returned when no record exists for the id at access
	// time.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidCredential is returned when the presented password matches
	// neither stored hash. The message never indicates which hash was
	// closer.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrPipeline covers malformed documents and rendering failures. No
	// partial record is persisted when it occurs.
	ErrPipeline = errors.New("redaction pipeline failed")

	// ErrStorage covers object-store and database I/O failures. Retryable
	// by the caller.
	ErrStorage = errors.New("storage failure")
)
