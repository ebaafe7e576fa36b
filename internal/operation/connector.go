package operation

import (
	"context"
)

// Connector represents a configured external integration.
// Each connector can execute multiple named operations.
type Connector interface {
	// Name returns the connector identifier
	Name() string

	// Execute runs a named operation with the given inputs
	Execute(ctx context.Context, operation string, inputs map[string]interface{}) (*Result, error)
}

// Result represents the output of a connector operation.
type Result struct {
	// Response is the unwrapped response data. It is either a single record
	// (map[string]interface{}) or a list of records ([]interface{}).
	Response interface{}

	// RawResponse is the original response body before unwrapping (for debugging)
	RawResponse interface{}

	// StatusCode is the HTTP status code of the last request
	StatusCode int

	// Headers contains response headers of the last request
	Headers map[string][]string

	// Metadata contains execution metadata (request ID, page count, etc.)
	Metadata map[string]interface{}
}

// GetResponse returns the unwrapped response data.
func (r *Result) GetResponse() interface{} {
	return r.Response
}

// GetStatusCode returns the HTTP status code.
func (r *Result) GetStatusCode() int {
	return r.StatusCode
}

// GetMetadata returns execution metadata.
func (r *Result) GetMetadata() map[string]interface{} {
	return r.Metadata
}

// Records flattens the response into host output records: a list becomes
// one record per element, anything else is a single record. A nil response
// produces no records.
func (r *Result) Records() []interface{} {
	if r == nil || r.Response == nil {
		return nil
	}
	switch v := r.Response.(type) {
	case []interface{}:
		return v
	case []map[string]interface{}:
		records := make([]interface{}, len(v))
		for i, rec := range v {
			records[i] = rec
		}
		return records
	default:
		return []interface{}{v}
	}
}
