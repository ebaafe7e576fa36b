package operation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry manages a collection of connectors.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Connector
}

// NewRegistry creates a new, empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Connector),
	}
}

// Get retrieves a connector by name.
func (r *Registry) Get(name string) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, &Error{
			Type:        ErrorTypeNotFound,
			Message:     fmt.Sprintf("connector %q not found", name),
			SuggestText: "Check that the connector is registered",
		}
	}

	return provider, nil
}

// Execute runs an operation.
// The reference should be in format "connector_name.operation_name".
func (r *Registry) Execute(ctx context.Context, reference string, inputs map[string]interface{}) (*Result, error) {
	providerName, operationName, err := parseReference(reference)
	if err != nil {
		return nil, err
	}

	provider, err := r.Get(providerName)
	if err != nil {
		return nil, err
	}

	return provider.Execute(ctx, operationName, inputs)
}

// List returns the names of all registered connectors, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Register adds a connector to the registry.
func (r *Registry) Register(name string, provider Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
}

// parseReference splits an operation reference into connector and operation names.
// Only the first dot separates; the operation name may itself contain dots
// ("zoho_expense.expense.create").
func parseReference(reference string) (string, string, error) {
	providerName, operationName, found := strings.Cut(reference, ".")
	if !found {
		return "", "", &Error{
			Type:    ErrorTypeValidation,
			Message: fmt.Sprintf("invalid operation reference %q: must be in format 'connector.operation'", reference),
		}
	}

	if providerName == "" || operationName == "" {
		return "", "", &Error{
			Type:    ErrorTypeValidation,
			Message: fmt.Sprintf("invalid operation reference %q: connector and operation names cannot be empty", reference),
		}
	}

	return providerName, operationName, nil
}
