package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/pairings-web/internal/connection"
	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidIdentity    = "INVALID_IDENTITY"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRejected           = "REJECTED"
	CodePairingUnavailable = "PAIRING_UNAVAILABLE"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

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

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Rejections carry the
// pairing service's reason; transport failures carry no diagnostics.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, identity.ErrMalformedIdentity):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidIdentity, err.Error()}}
	case errors.Is(err, model.ErrNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, reason(err, "A valid proof is required")}}
	case errors.Is(err, model.ErrRejected):
		return &httpError{http.StatusBadRequest, APIError{CodeRejected, reason(err, "Request rejected")}}
	case errors.Is(err, model.ErrPairingUnavailable):
		return &httpError{http.StatusConflict, APIError{CodePairingUnavailable, reason(err, "No round can be paired")}}
	case errors.Is(err, model.ErrTransportFailure):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeBackendUnavailable, "Backend service unavailable"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

func reason(err error, fallback string) string {
	if message, ok := connection.Reason(err); ok {
		return message
	}
	return fallback
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
