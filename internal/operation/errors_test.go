package operation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tombee/zoho-expense/internal/operation/transport"
	pkgerrors "github.com/tombee/zoho-expense/pkg/errors"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeNotFound,
		Message:    "expense not found",
		StatusCode: 404,
		RequestID:  "req-1",
		Cause:      errors.New("underlying"),
	}

	assert.Equal(t, "OperationError: expense not found (type: not_found) [HTTP 404] (request-id: req-1): underlying", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "underlying")
}

func TestError_UserVisible(t *testing.T) {
	err := NewUnknownOperationError("zoho_expense", "expense.archive")

	uv, ok := pkgerrors.AsUserVisible(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, `unknown operation "expense.archive" for zoho_expense`, uv.UserMessage())
	assert.NotEmpty(t, uv.Suggestion())
	assert.Equal(t, ErrorTypeValidation, err.Type)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{401, ErrorTypeAuth},
		{403, ErrorTypeAuth},
		{404, ErrorTypeNotFound},
		{400, ErrorTypeValidation},
		{422, ErrorTypeValidation},
		{429, ErrorTypeRateLimit},
		{500, ErrorTypeServer},
		{503, ErrorTypeServer},
		{409, ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHTTPError(tt.status))
		})
	}
}

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"auth", &transport.TransportError{Type: transport.ErrorTypeAuth}, ErrorTypeAuth},
		{"client 404", &transport.TransportError{Type: transport.ErrorTypeClient, StatusCode: 404}, ErrorTypeNotFound},
		{"client 400", &transport.TransportError{Type: transport.ErrorTypeClient, StatusCode: 400}, ErrorTypeValidation},
		{"cancelled", &transport.TransportError{Type: transport.ErrorTypeCancelled}, ErrorTypeTimeout},
		{"server wrapped", fmt.Errorf("ctx: %w", &transport.TransportError{Type: transport.ErrorTypeServer}), ErrorTypeServer},
		{"plain error", errors.New("dial tcp"), ErrorTypeConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTransportError(tt.err))
		})
	}
}
