package operation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tombee/zoho-expense/internal/operation/transport"
)

// ErrorType classifies operation errors for appropriate handling.
type ErrorType string

const (
	// ErrorTypeAuth indicates authentication or authorization failure (401, 403)
	ErrorTypeAuth ErrorType = "auth_error"

	// ErrorTypeNotFound indicates resource not found (404)
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeValidation indicates invalid request data (400, 422) or an
	// unknown resource/operation
	ErrorTypeValidation ErrorType = "validation_error"

	// ErrorTypeRateLimit indicates rate limit exceeded (429)
	ErrorTypeRateLimit ErrorType = "rate_limited"

	// ErrorTypeServer indicates server-side error (500, 502, 503, 504)
	ErrorTypeServer ErrorType = "server_error"

	// ErrorTypeTimeout indicates operation timeout or cancellation
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeConnection indicates network/DNS error
	ErrorTypeConnection ErrorType = "connection_error"

	// ErrorTypeApplication indicates the API accepted the request but reported
	// a non-zero result code in the response envelope
	ErrorTypeApplication ErrorType = "application_error"
)

// Error represents an operation execution error with classification.
type Error struct {
	// Type classifies the error
	Type ErrorType

	// Message is the human-readable error description
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// SuggestText provides guidance on how to resolve the error.
	SuggestText string

	// RequestID from the external service
	RequestID string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("OperationError: %s", e.Message)

	if e.Type != "" {
		msg = fmt.Sprintf("%s (type: %s)", msg, e.Type)
	}

	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}

	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements pkg/errors.UserVisibleError.
// Operation errors are always user-visible.
func (e *Error) IsUserVisible() bool {
	return true
}

// UserMessage implements pkg/errors.UserVisibleError.
func (e *Error) UserMessage() string {
	return e.Message
}

// Suggestion implements pkg/errors.UserVisibleError.
func (e *Error) Suggestion() string {
	return e.SuggestText
}

// ClassifyHTTPError classifies an HTTP status code into an error type.
func ClassifyHTTPError(statusCode int) ErrorType {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrorTypeAuth
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServer
	default:
		return ErrorTypeValidation
	}
}

// ClassifyTransportError maps a transport failure onto the operation error
// taxonomy. Errors that are not transport errors classify as connection errors.
func ClassifyTransportError(err error) ErrorType {
	var transportErr *transport.TransportError
	if !errors.As(err, &transportErr) {
		return ErrorTypeConnection
	}

	switch transportErr.Type {
	case transport.ErrorTypeAuth:
		return ErrorTypeAuth
	case transport.ErrorTypeRateLimit:
		return ErrorTypeRateLimit
	case transport.ErrorTypeServer:
		return ErrorTypeServer
	case transport.ErrorTypeTimeout, transport.ErrorTypeCancelled:
		return ErrorTypeTimeout
	case transport.ErrorTypeClient:
		return ClassifyHTTPError(transportErr.StatusCode)
	case transport.ErrorTypeInvalidReq:
		return ErrorTypeValidation
	default:
		return ErrorTypeConnection
	}
}

// SuggestionFor returns generic guidance for an error type.
func SuggestionFor(errType ErrorType) string {
	switch errType {
	case ErrorTypeAuth:
		return "Check the OAuth2 credentials, or run 'zoho-expense auth url' to re-authorize"
	case ErrorTypeNotFound:
		return "Verify the ID exists in the selected organization"
	case ErrorTypeValidation:
		return "Check the operation parameters; run 'zoho-expense operations' to list them"
	case ErrorTypeRateLimit:
		return "Wait for the rate limit window or lower http.rate_limit"
	case ErrorTypeServer:
		return "Try again later or contact Zoho support"
	case ErrorTypeTimeout:
		return "Increase http.timeout or check service responsiveness"
	case ErrorTypeConnection:
		return "Check network connectivity and the configured data center"
	default:
		return ""
	}
}

// NewUnknownOperationError reports a connector/operation reference that
// does not resolve to anything.
func NewUnknownOperationError(connector, operation string) *Error {
	return &Error{
		Type:        ErrorTypeValidation,
		Message:     fmt.Sprintf("unknown operation %q for %s", operation, connector),
		SuggestText: SuggestionFor(ErrorTypeValidation),
	}
}
