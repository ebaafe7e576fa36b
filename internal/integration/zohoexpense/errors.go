package zohoexpense

import (
	"errors"
	"fmt"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/transport"
)

// ErrorKind separates failures of the HTTP exchange from failures the API
// reports inside a successful response.
type ErrorKind string

const (
	// KindTransport covers network, authentication and non-2xx failures
	KindTransport ErrorKind = "transport"

	// KindApplication covers a non-zero code in the response envelope
	KindApplication ErrorKind = "application"
)

// APIError is the uniform error returned by every Zoho Expense call.
type APIError struct {
	Kind ErrorKind

	// Method and Endpoint identify the failed call
	Method   string
	Endpoint string

	// StatusCode is the HTTP status, when a response was received
	StatusCode int

	// Code is the envelope code for application failures
	Code string

	// Message is the server message, or the transport failure text
	Message string

	// Type classifies the failure for the host
	Type operation.ErrorType

	// Response holds the decoded response body, when there was one
	Response map[string]interface{}

	Cause error
}

// Error implements the error interface. Application failures read as the
// server message alone.
func (e *APIError) Error() string {
	if e.Kind == KindApplication {
		return e.Message
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Endpoint, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements pkg/errors.UserVisibleError.
func (e *APIError) IsUserVisible() bool {
	return true
}

// UserMessage implements pkg/errors.UserVisibleError.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Suggestion implements pkg/errors.UserVisibleError.
func (e *APIError) Suggestion() string {
	return operation.SuggestionFor(e.Type)
}

// newTransportError wraps a failed exchange.
func newTransportError(call apiCall, err error) *APIError {
	apiErr := &APIError{
		Kind:     KindTransport,
		Method:   call.Method,
		Endpoint: call.Endpoint,
		Message:  err.Error(),
		Type:     operation.ClassifyTransportError(err),
		Cause:    err,
	}

	var transportErr *transport.TransportError
	if errors.As(err, &transportErr) {
		apiErr.StatusCode = transportErr.StatusCode
		if transportErr.Message != "" {
			apiErr.Message = transportErr.Message
		}
	}

	return apiErr
}

// newApplicationError wraps a response whose envelope code is non-zero.
func newApplicationError(call apiCall, statusCode int, env envelope, body map[string]interface{}) *APIError {
	msg := env.Message
	if msg == "" {
		msg = fmt.Sprintf("Zoho Expense returned code %s", env.Code)
	}
	return &APIError{
		Kind:       KindApplication,
		Method:     call.Method,
		Endpoint:   call.Endpoint,
		StatusCode: statusCode,
		Code:       env.Code,
		Message:    msg,
		Type:       operation.ErrorTypeApplication,
		Response:   body,
	}
}

// IsApplicationError reports whether err carries a non-zero envelope code.
func IsApplicationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindApplication
}
