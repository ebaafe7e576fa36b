package zohoexpense

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/transport"
	"github.com/tombee/zoho-expense/internal/tracing"
)

// apiCall describes one request against the Zoho Expense API.
type apiCall struct {
	Method string

	// Endpoint is a path template below /expense/v1 (e.g., "/expenses/{expenseId}")
	Endpoint   string
	PathParams map[string]string

	// Body and Query are omitted from the request when empty
	Body  map[string]interface{}
	Query map[string]interface{}

	// OrganizationID overrides the credential default tenant
	OrganizationID string
}

// organizationFor resolves the tenant: per-call override first, then the
// credential default. An empty result means no tenant header.
func (c *ZohoExpenseIntegration) organizationFor(override string) string {
	if override != "" {
		return override
	}
	return c.organizationID
}

// apiRequest performs one call and returns the decoded response body.
// A non-zero envelope code is returned as an application *APIError even
// when the HTTP status is 2xx.
func (c *ZohoExpenseIntegration) apiRequest(ctx context.Context, call apiCall) (map[string]interface{}, *transport.Response, error) {
	ctx, span := tracing.Tracer().Start(ctx, "zoho_expense.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", call.Method),
			attribute.String("zoho_expense.endpoint", call.Endpoint),
		),
	)
	defer span.End()

	// Build URL
	url, err := c.BuildURL(call.Endpoint, call.PathParams, call.Query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	// Build headers
	headers := make(map[string]string)
	if org := c.organizationFor(call.OrganizationID); org != "" {
		headers[OrganizationHeader] = org
		span.SetAttributes(attribute.String("zoho_expense.organization_id", org))
	}

	// Build request body
	var body []byte
	if len(call.Body) > 0 {
		body, err = json.Marshal(call.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		log.Trace(ctx, c.logger, "request body", slog.String("body", string(body)))
	}

	// Execute request
	start := time.Now()
	resp, err := c.ExecuteRequest(ctx, call.Method, url, headers, body)
	duration := time.Since(start)
	if err != nil {
		apiErr := newTransportError(call, err)
		operation.RecordAPIRequest(call.Method, operation.StatusLabel(apiErr.StatusCode), duration)
		c.logger.Debug("api request failed",
			slog.String("method", call.Method),
			slog.String("endpoint", call.Endpoint),
			slog.Int64(log.DurationKey, duration.Milliseconds()),
			log.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, nil, apiErr
	}

	operation.RecordAPIRequest(call.Method, operation.StatusLabel(resp.StatusCode), duration)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Debug("api request",
		slog.String("method", call.Method),
		slog.String("endpoint", call.Endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int64(log.DurationKey, duration.Milliseconds()),
	)

	// Parse response
	result := make(map[string]interface{})
	if err := c.ParseJSONResponse(resp, &result); err != nil {
		apiErr := newTransportError(call, fmt.Errorf("failed to parse response: %w", err))
		apiErr.StatusCode = resp.StatusCode
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, nil, apiErr
	}

	// Check envelope
	if env := readEnvelope(result); !env.success() {
		apiErr := newApplicationError(call, resp.StatusCode, env, result)
		span.SetAttributes(attribute.String("zoho_expense.code", env.Code))
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, resp, apiErr
	}

	return result, resp, nil
}
