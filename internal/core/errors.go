package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeValidation = "validation_error"
	ErrCodeStorage    = "storage_error"
	ErrCodeTransport  = "transport_error"
	ErrCodeBadRequest = "bad_request"
)

var (
	// ErrValidation marks an event with a missing or blank required field.
	// Such events are dropped: no persistence, no broadcast.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a persistence failure. The operation is aborted
	// before any broadcast so no message is emitted that was not saved.
	ErrStorage = errors.New("storage failed")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
	err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.err
}

func validationError(msg string) *CoreError {
	return &CoreError{Code: ErrCodeValidation, Message: msg, err: ErrValidation}
}

func storageError(msg string, err error) *CoreError {
	return &CoreError{Code: ErrCodeStorage, Message: msg, err: errors.Join(ErrStorage, err)}
}
