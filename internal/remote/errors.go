package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for remote collection operations.
var (
	// ErrNotFound matches lookups that returned zero or more than one row.
	ErrNotFound = errors.New("creator not found")
	// ErrNotConfigured matches calls made without an endpoint or credential.
	ErrNotConfigured = errors.New("remote collection not configured")
	// ErrDuplicate matches writes rejected because the name is taken.
	ErrDuplicate = errors.New("creator name already exists")
)

// notFoundCode is the PostgREST code for a single-object request that
// matched zero or many rows.
const notFoundCode = "PGRST116"

// UniqueViolationCode is the SQLSTATE of a unique constraint violation.
// PostgREST passes it through in the error body.
const UniqueViolationCode = "23505"

// APIError is an error body returned by the PostgREST endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Error returns the collaborator's message verbatim.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote request failed with status %d", e.Status)
}

// Is reports PGRST116 responses as ErrNotFound and unique violations as
// ErrDuplicate.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == notFoundCode
	case ErrDuplicate:
		return e.Code == UniqueViolationCode
	}
	return false
}

// configError keeps the configuration message verbatim while matching
// ErrNotConfigured.
type configError struct {
	reason error
}

func (e *configError) Error() string {
	return e.reason.Error()
}

func (e *configError) Unwrap() []error {
	return []error{ErrNotConfigured, e.reason}
}
