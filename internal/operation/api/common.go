// Package api provides common types and utilities for API integrations.
package api

import (
	"github.com/tombee/zoho-expense/internal/operation/transport"
)

// ProviderConfig holds configuration for API integrations.
type ProviderConfig struct {
	// Transport is the HTTP transport for making requests
	Transport transport.Transport

	// BaseURL is the API base URL. Integrations that derive it from other
	// settings (such as a data center) leave it empty.
	BaseURL string

	// Token is a static bearer token, for transports that do not
	// authenticate on their own
	Token string

	// AdditionalAuth holds integration-specific settings
	// (e.g., Zoho data_center and organization_id)
	AdditionalAuth map[string]string
}

// OperationInfo provides metadata about an integration operation.
type OperationInfo struct {
	// Name is the operation identifier (e.g., "expense.create")
	Name string

	// Description is a human-readable description
	Description string

	// Category groups related operations (e.g., "expense", "trip")
	Category string

	// Tags classify operations (e.g., "write", "paginated", "destructive")
	Tags []string
}

// OperationSchema describes an operation's inputs.
type OperationSchema struct {
	// Description is a human-readable description
	Description string

	// Parameters describes the operation inputs
	Parameters []ParameterInfo
}

// ParameterInfo describes an operation parameter.
type ParameterInfo struct {
	// Name is the parameter identifier
	Name string

	// Type is the parameter type (string, integer, boolean, array, object)
	Type string

	// Description is a human-readable description
	Description string

	// Required indicates if the parameter is required
	Required bool

	// Default is the default value (nil if no default)
	Default interface{}
}

// TypedProvider is implemented by integrations that describe their operations.
type TypedProvider interface {
	// Operations returns the list of available operations with metadata.
	Operations() []OperationInfo

	// OperationSchema returns the operation description and parameter information.
	// Returns nil if the operation doesn't exist.
	OperationSchema(operation string) *OperationSchema
}
