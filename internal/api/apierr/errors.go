package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeDebugDisabled      = "DEBUG_DISABLED"
	CodeAccessCodeNotFound = "ACCESS_CODE_NOT_FOUND"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeRequestCancelled   = "REQUEST_CANCELLED"
	CodeTimeout            = "TIMEOUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// StatusClientClosedRequest is returned when the caller went away mid-request
const StatusClientClosedRequest = 499

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status an error maps to
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidInput, Message: "Input is required"}}
	case errors.Is(err, model.ErrAccessCodeNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeAccessCodeNotFound, Message: "Access code not found"}}
	case errors.Is(err, model.ErrTransientFailure):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeStoreUnavailable, Message: "Document store unavailable"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid or expired session"}}
	case errors.Is(err, auth.ErrInvalidDebugToken):
		return &httpError{http.StatusForbidden, APIError{Code: CodeForbidden, Message: "Invalid debug token"}}
	case errors.Is(err, auth.ErrDebugDisabled):
		return &httpError{http.StatusNotFound, APIError{Code: CodeDebugDisabled, Message: "Debug access is disabled"}}

	// Map context errors
	case errors.Is(err, context.Canceled):
		return &httpError{StatusClientClosedRequest, APIError{Code: CodeRequestCancelled, Message: "Request cancelled"}}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{http.StatusGatewayTimeout, APIError{Code: CodeTimeout, Message: "Request timed out"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// WithDetails attaches extra fields to the error response err maps to
func WithDetails(err error, details map[string]any) error {
	he := *toHTTPError(err)
	he.apiError.Details = details
	return &he
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
