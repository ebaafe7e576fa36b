package zohoexpense

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/tombee/zoho-expense/pkg/errors"
)

// optionLoader projects one lookup endpoint into name/value pairs.
type optionLoader struct {
	endpoint string
	property string
	value    string
	name     func(item map[string]interface{}) string
}

// nameField uses a single item field as the option name.
func nameField(key string) func(map[string]interface{}) string {
	return func(item map[string]interface{}) string {
		return stringValue(item[key])
	}
}

var optionLoaders = map[string]optionLoader{
	"organizations": {"/organizations", "organizations", "organization_id", nameField("name")},
	"currencies": {"/settings/currencies", "currencies", "currency_id", func(item map[string]interface{}) string {
		return fmt.Sprintf("%s - %s", stringValue(item["currency_code"]), stringValue(item["currency_name"]))
	}},
	"categories": {"/expensecategories", "expense_categories", "category_id", nameField("category_name")},
	"taxes": {"/settings/taxes", "taxes", "tax_id", func(item map[string]interface{}) string {
		return fmt.Sprintf("%s (%s%%)", stringValue(item["tax_name"]), stringValue(item["tax_percentage"]))
	}},
	"merchants": {"/merchants", "merchants", "merchant_id", nameField("merchant_name")},
	"customers": {"/customers", "customers", "customer_id", nameField("customer_name")},
	"projects":  {"/projects", "projects", "project_id", nameField("project_name")},
	"users":     {"/users", "users", "user_id", nameField("name")},
	"accounts":  {"/settings/accounts", "accounts", "account_id", nameField("account_name")},
	"reports":   {"/expensereports", "expense_reports", "report_id", nameField("report_name")},
	"trips":     {"/trips", "trips", "trip_id", nameField("trip_name")},
}

// OptionLoaders returns the names accepted by LoadOptions, sorted.
func OptionLoaders() []string {
	names := make([]string, 0, len(optionLoaders))
	for name := range optionLoaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOptions fetches a lookup list (one request, no pagination).
// organizationID overrides the credential default like any other call.
func (c *ZohoExpenseIntegration) LoadOptions(ctx context.Context, loader, organizationID string) ([]OptionValue, error) {
	def, ok := optionLoaders[loader]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "option loader", ID: loader}
	}

	body, _, err := c.apiRequest(ctx, apiCall{
		Method:         http.MethodGet,
		Endpoint:       def.endpoint,
		OrganizationID: organizationID,
	})
	if err != nil {
		return nil, err
	}

	items, _ := body[def.property].([]interface{})
	options := make([]OptionValue, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		options = append(options, OptionValue{
			Name:  def.name(item),
			Value: stringValue(item[def.value]),
		})
	}
	return options, nil
}

// stringValue renders a decoded JSON scalar the way it appears in the API.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprint(val)
	}
}
