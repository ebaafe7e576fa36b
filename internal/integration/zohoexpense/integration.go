package zohoexpense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/api"
)

// Name is the connector identifier used in operation references.
const Name = "zoho_expense"

// ZohoExpenseIntegration implements the Connector interface for the Zoho Expense API.
type ZohoExpenseIntegration struct {
	*api.BaseProvider
	dataCenter     string
	organizationID string
	logger         *slog.Logger
}

// NewZohoExpenseIntegration creates a new Zoho Expense integration.
//
// AdditionalAuth carries "data_center" (default "com") and an optional
// default "organization_id". BaseURL, when set, replaces the regional API
// host; the /expense/v1 prefix is always appended.
func NewZohoExpenseIntegration(config *api.ProviderConfig) (operation.Connector, error) {
	if config.Transport == nil {
		return nil, fmt.Errorf("zoho_expense connector requires a transport")
	}

	dataCenter, err := validateDataCenter(config.AdditionalAuth["data_center"])
	if err != nil {
		return nil, fmt.Errorf("zoho_expense connector: %w", err)
	}

	host := strings.TrimRight(config.BaseURL, "/")
	if host == "" {
		host = BaseURL(dataCenter)
	}

	base := api.NewBaseProvider(Name, &api.ProviderConfig{
		Transport:      config.Transport,
		BaseURL:        host + APIPrefix,
		Token:          config.Token,
		AdditionalAuth: config.AdditionalAuth,
	})

	return &ZohoExpenseIntegration{
		BaseProvider:   base,
		dataCenter:     dataCenter,
		organizationID: config.AdditionalAuth["organization_id"],
		logger:         log.WithComponent(slog.Default(), Name),
	}, nil
}

// DataCenter returns the configured data-center code.
func (c *ZohoExpenseIntegration) DataCenter() string {
	return c.dataCenter
}

// Execute runs a "resource.operation" with the given parameter bag.
func (c *ZohoExpenseIntegration) Execute(ctx context.Context, name string, inputs map[string]interface{}) (*operation.Result, error) {
	resource, op, ok := strings.Cut(name, ".")
	if !ok {
		return nil, operation.NewUnknownOperationError(Name, name)
	}

	handler, ok := handlers[handlerKey{Resource: Resource(resource), Operation: Operation(op)}]
	if !ok {
		return nil, operation.NewUnknownOperationError(Name, name)
	}

	params, err := DecodeParams(inputs)
	if err != nil {
		return nil, err
	}

	return handler(c, ctx, params)
}

// TestConnection verifies the credential by listing organizations.
func (c *ZohoExpenseIntegration) TestConnection(ctx context.Context) error {
	_, _, err := c.apiRequest(ctx, apiCall{
		Method:   "GET",
		Endpoint: "/organizations",
	})
	return err
}
