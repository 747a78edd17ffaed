package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates a document type or upload the caller rejects.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrReadFailed indicates the file content could not be read.
	// No document exists yet, so the error propagates to the caller.
	ErrReadFailed = errors.New("read failed")

	// ErrFetchFailed indicates the URL could not be fetched.
	// No document exists yet, so the error propagates to the caller.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrParse indicates structured content could not be parsed.
	// The orchestrator records it on the document instead of returning it.
	ErrParse = errors.New("parse error")

	// ErrConversionUnavailable indicates no converter could handle the content.
	// The binary processor degrades to raw text when it sees this.
	ErrConversionUnavailable = errors.New("conversion unavailable")

	// ErrRegistrationFailed indicates the registration collaborator rejected a document.
	ErrRegistrationFailed = errors.New("registration failed")
)
