package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode marks a malformed scanned payload. Detected entirely
	// client-side, never sent to the server.
	ErrDecode = errors.New("invalid scan payload")

	// ErrPermissionDenied marks a refused camera, gallery or location
	// capability.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNetwork marks a transport-level failure: DNS, connection refused,
	// timeout. Carried by APIError with status 0.
	ErrNetwork = errors.New("network error")

	// ErrSessionExpired marks a server-signalled 401. The gateway clears the
	// stored token as a side effect before surfacing it.
	ErrSessionExpired = errors.New("session expired")

	// ErrValidation marks a missing or malformed form field, caught before
	// any network call is attempted.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned when a login attempt is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDocumentNotFound is the distinct not-found outcome of a manual
	// tracking lookup.
	ErrDocumentNotFound = errors.New("travel document not found")

	// ErrInvalidTransition rejects a status change that would skip or
	// reverse the document lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidFlowState rejects a flow operation called outside the state
	// it is legal in.
	ErrInvalidFlowState = errors.New("operation not valid in current flow state")
)

// APIError is the normalised error shape produced by the API gateway for any
// failed call. Status 0 means the transport failed before an HTTP status
// existed; 401 means the session expired; anything else carries the server's
// own message when one was provided.
type APIError struct {
	Status  int
	Message string
	Body    []byte // raw response body, for caller inspection
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Unwrap maps gateway statuses onto the sentinel taxonomy so callers can use
// errors.Is without inspecting status codes themselves.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 0:
		return ErrNetwork
	case http.StatusUnauthorized:
		return ErrSessionExpired
	default:
		return nil
	}
}
