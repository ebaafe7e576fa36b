package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/transport"
)

// BaseProvider provides common functionality for API integrations.
type BaseProvider struct {
	name      string
	transport transport.Transport
	baseURL   string
	token     string
}

// NewBaseProvider creates a new base provider.
func NewBaseProvider(name string, config *ProviderConfig) *BaseProvider {
	return &BaseProvider{
		name:      name,
		transport: config.Transport,
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		token:     config.Token,
	}
}

// Name returns the integration identifier.
func (c *BaseProvider) Name() string {
	return c.name
}

// BaseURL returns the configured API base URL.
func (c *BaseProvider) BaseURL() string {
	return c.baseURL
}

// BuildURL constructs a full URL from a path template, path parameters and
// an optional query. Path templates use {param} syntax
// (e.g., "/expenses/{expenseId}/merge"); values are path-escaped. The query
// is omitted entirely when it has no non-nil values.
func (c *BaseProvider) BuildURL(pathTemplate string, pathParams map[string]string, query map[string]interface{}) (string, error) {
	path := pathTemplate

	for key, value := range pathParams {
		placeholder := fmt.Sprintf("{%s}", key)
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
		}
	}

	// Check for unreplaced parameters
	if start := strings.Index(path, "{"); start >= 0 {
		if end := strings.Index(path[start:], "}"); end > 0 {
			return "", fmt.Errorf("missing required parameter: %s", path[start+1:start+end])
		}
	}

	return c.baseURL + path + c.BuildQueryString(query), nil
}

// BuildQueryString constructs a query string from a map. Keys are sorted;
// nil values are skipped. Returns "" when nothing remains.
func (c *BaseProvider) BuildQueryString(query map[string]interface{}) string {
	values := url.Values{}
	for key, value := range query {
		if value == nil {
			continue
		}
		values.Add(key, fmt.Sprint(value))
	}

	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}

// ExecuteRequest sends an HTTP request and returns the response.
func (c *BaseProvider) ExecuteRequest(ctx context.Context, method, url string, headers map[string]string, body []byte) (*transport.Response, error) {
	if c.transport == nil {
		return nil, fmt.Errorf("%s: no transport configured", c.name)
	}

	if c.token != "" {
		if headers == nil {
			headers = make(map[string]string)
		}
		headers["Authorization"] = "Bearer " + c.token
	}

	req := &transport.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
	}

	return c.transport.Execute(ctx, req)
}

// ParseJSONResponse parses a JSON response into a target value.
// An empty body leaves target untouched.
func (c *BaseProvider) ParseJSONResponse(resp *transport.Response, target interface{}) error {
	if len(resp.Body) == 0 {
		return nil
	}

	return json.Unmarshal(resp.Body, target)
}

// ToResult converts a transport response to an operation result.
func (c *BaseProvider) ToResult(resp *transport.Response, response interface{}) *operation.Result {
	return &operation.Result{
		Response:    response,
		RawResponse: resp.Body,
		StatusCode:  resp.StatusCode,
		Headers:     resp.Headers,
		Metadata:    resp.Metadata,
	}
}
