package zohoexpense

import (
	"context"
	"net/http"

	"github.com/tombee/zoho-expense/internal/operation"
)

// fetchOne GETs a single resource and unwraps its envelope key.
func (c *ZohoExpenseIntegration) fetchOne(ctx context.Context, p Params, endpoint string, pathParams map[string]string, key string) (*operation.Result, error) {
	body, resp, err := c.apiRequest(ctx, apiCall{
		Method:         http.MethodGet,
		Endpoint:       endpoint,
		PathParams:     pathParams,
		OrganizationID: p.OrganizationID,
	})
	if err != nil {
		return nil, err
	}
	return c.ToResult(resp, unwrap(body, key)), nil
}

// fetchMany lists a resource. With returnAll every page is fetched;
// otherwise one page of size limit is returned.
func (c *ZohoExpenseIntegration) fetchMany(ctx context.Context, p Params, endpoint, property string, query map[string]interface{}) (*operation.Result, error) {
	call := apiCall{
		Method:         http.MethodGet,
		Endpoint:       endpoint,
		Query:          query,
		OrganizationID: p.OrganizationID,
	}

	if p.ReturnAll {
		items, resp, err := c.apiRequestAllItems(ctx, call, property)
		if err != nil {
			return nil, err
		}
		return c.ToResult(resp, items), nil
	}

	limit, err := p.limit()
	if err != nil {
		return nil, err
	}

	q := copyFields(query)
	q["per_page"] = limit
	q["page"] = 1
	call.Query = q

	body, resp, err := c.apiRequest(ctx, call)
	if err != nil {
		return nil, err
	}
	items, _ := body[property].([]interface{})
	if items == nil {
		items = []interface{}{}
	}
	return c.ToResult(resp, items), nil
}

// send issues a write request and returns the raw response body.
func (c *ZohoExpenseIntegration) send(ctx context.Context, call apiCall) (*operation.Result, error) {
	body, resp, err := c.apiRequest(ctx, call)
	if err != nil {
		return nil, err
	}
	return c.ToResult(resp, body), nil
}

// sendAndUnwrap issues a write request and unwraps the envelope key.
func (c *ZohoExpenseIntegration) sendAndUnwrap(ctx context.Context, call apiCall, key string) (*operation.Result, error) {
	body, resp, err := c.apiRequest(ctx, call)
	if err != nil {
		return nil, err
	}
	return c.ToResult(resp, unwrap(body, key)), nil
}
