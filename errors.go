package crudgen

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for the two failure classes a caller can react to.
var (
	// ErrInvalidRequest indicates missing or malformed request input.
	ErrInvalidRequest = errors.New("crudgen: invalid request")
	// ErrGenerationFailed indicates artifacts could not be written.
	ErrGenerationFailed = errors.New("crudgen: failed to generate files")
)

// RequestError reports a request field that failed validation. Nothing is
// generated or written when it is returned.
type RequestError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("crudgen: %s %s", e.Field, e.Message)
}

// Is reports whether the target matches the sentinel error for RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// WriteError reports a failed directory creation or file write. Files
// written before the failure are left in place.
type WriteError struct {
	Path  string
	Cause error
}

func newWriteError(err error) *WriteError {
	we := &WriteError{Cause: err}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		we.Path = pathErr.Path
	}
	return we
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Cause == nil {
		return ErrGenerationFailed.Error()
	}
	return ErrGenerationFailed.Error() + ": " + e.Cause.Error()
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrGenerationFailed
}
