package zohoexpense

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/transport"
	"github.com/tombee/zoho-expense/internal/tracing"
)

// pageSize is the per_page value used while fetching every page.
const pageSize = 200

// pageCursor tracks one paginated run.
type pageCursor struct {
	page    int
	perPage int
	hasMore bool
}

func newPageCursor() *pageCursor {
	return &pageCursor{page: 1, perPage: pageSize, hasMore: true}
}

// query returns a copy of base with the cursor position applied.
func (p *pageCursor) query(base map[string]interface{}) map[string]interface{} {
	q := make(map[string]interface{}, len(base)+2)
	for k, v := range base {
		q[k] = v
	}
	q["page"] = p.page
	q["per_page"] = p.perPage
	return q
}

// advance records the page just fetched.
func (p *pageCursor) advance(body map[string]interface{}) {
	p.hasMore = hasMorePages(body)
	p.page++
}

// apiRequestAllItems fetches every page of call and concatenates the array
// found under property, in page order. It stops when page_context.has_more_page
// is no longer exactly true. The returned response is the last page's.
func (c *ZohoExpenseIntegration) apiRequestAllItems(ctx context.Context, call apiCall, property string) ([]interface{}, *transport.Response, error) {
	ctx, span := tracing.Tracer().Start(ctx, "zoho_expense.paginate")
	span.SetAttributes(
		attribute.String("zoho_expense.endpoint", call.Endpoint),
		attribute.String("zoho_expense.property", property),
	)
	defer span.End()

	base := call.Query
	items := make([]interface{}, 0)
	cursor := newPageCursor()

	var last *transport.Response
	for cursor.hasMore {
		pageCall := call
		pageCall.Query = cursor.query(base)

		body, resp, err := c.apiRequest(ctx, pageCall)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, nil, err
		}
		last = resp

		page, _ := body[property].([]interface{})
		items = append(items, page...)
		operation.RecordPageFetched(call.Endpoint)

		c.logger.Debug("fetched page",
			slog.String("endpoint", call.Endpoint),
			slog.Int("page", cursor.page),
			slog.Int("items", len(page)),
			slog.Int("total", len(items)),
		)

		cursor.advance(body)
	}

	span.SetAttributes(
		attribute.Int("zoho_expense.pages", cursor.page-1),
		attribute.Int("zoho_expense.items", len(items)),
	)
	return items, last, nil
}
