package integration

import (
	"fmt"
	"sort"

	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/api"
)

// BuiltinRegistry holds all built-in API integration factories.
var BuiltinRegistry = map[string]func(config *api.ProviderConfig) (operation.Connector, error){
	zohoexpense.Name: zohoexpense.NewZohoExpenseIntegration,
}

// Names returns the builtin integration names, sorted.
func Names() []string {
	names := make([]string, 0, len(BuiltinRegistry))
	for name := range BuiltinRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRegistry instantiates the named integrations and registers them with
// a fresh operation registry.
func NewRegistry(configs map[string]*api.ProviderConfig) (*operation.Registry, error) {
	registry := operation.NewRegistry()
	for name, config := range configs {
		factory, ok := BuiltinRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown integration %q (available: %v)", name, Names())
		}
		conn, err := factory(config)
		if err != nil {
			return nil, fmt.Errorf("create %s integration: %w", name, err)
		}
		registry.Register(name, conn)
	}
	return registry, nil
}
