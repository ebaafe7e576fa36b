package zohoexpense

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/zoho-expense/internal/operation/transport"
)

func page(t *testing.T, property string, hasMore interface{}, ids ...string) *transport.Response {
	t.Helper()
	items := make([]interface{}, len(ids))
	for i, id := range ids {
		items[i] = map[string]interface{}{"id": id}
	}
	body := map[string]interface{}{"code": 0, property: items}
	if hasMore != nil {
		body["page_context"] = map[string]interface{}{"has_more_page": hasMore}
	}
	return jsonResponse(t, body)
}

func TestAPIRequestAllItems_ThreePages(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		page(t, "trips", true, "1", "2"),
		page(t, "trips", true, "3"),
		page(t, "trips", false, "4"),
	}}
	c := newTestIntegration(t, tr, nil)

	query := map[string]interface{}{"status": "active"}
	items, _, err := c.apiRequestAllItems(context.Background(), apiCall{
		Method:   http.MethodGet,
		Endpoint: "/trips",
		Query:    query,
	}, "trips")
	require.NoError(t, err)

	require.Len(t, tr.requests, 3)
	var ids []interface{}
	for _, item := range items {
		ids = append(ids, item.(map[string]interface{})["id"])
	}
	assert.Equal(t, []interface{}{"1", "2", "3", "4"}, ids)

	for i, req := range tr.requests {
		q := requestURL(t, req).Query()
		assert.Equal(t, strconv.Itoa(i+1), q.Get("page"))
		assert.Equal(t, "200", q.Get("per_page"))
		assert.Equal(t, "active", q.Get("status"))
	}

	assert.Equal(t, map[string]interface{}{"status": "active"}, query, "caller query must not be mutated")
}

func TestAPIRequestAllItems_StopsUnlessExactlyTrue(t *testing.T) {
	tests := []struct {
		name    string
		hasMore interface{}
	}{
		{name: "no page context", hasMore: nil},
		{name: "false", hasMore: false},
		{name: "string true", hasMore: "true"},
		{name: "number one", hasMore: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &recordingTransport{responses: []*transport.Response{
				page(t, "users", tt.hasMore, "a"),
				page(t, "users", false, "b"),
			}}
			c := newTestIntegration(t, tr, nil)

			items, _, err := c.apiRequestAllItems(context.Background(), apiCall{
				Method:   http.MethodGet,
				Endpoint: "/users",
			}, "users")
			require.NoError(t, err)
			assert.Len(t, tr.requests, 1)
			assert.Len(t, items, 1)
		})
	}
}

func TestAPIRequestAllItems_MissingPropertyYieldsEmpty(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		jsonResponse(t, map[string]interface{}{"code": 0}),
	}}
	c := newTestIntegration(t, tr, nil)

	items, _, err := c.apiRequestAllItems(context.Background(), apiCall{
		Method:   http.MethodGet,
		Endpoint: "/trips",
	}, "trips")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAPIRequestAllItems_ErrorOnSecondPage(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		page(t, "trips", true, "1"),
		jsonResponse(t, map[string]interface{}{"code": 57, "message": "Not authorized"}),
	}}
	c := newTestIntegration(t, tr, nil)

	_, _, err := c.apiRequestAllItems(context.Background(), apiCall{
		Method:   http.MethodGet,
		Endpoint: "/trips",
	}, "trips")
	require.Error(t, err)
	assert.Equal(t, "Not authorized", err.Error())
	assert.Len(t, tr.requests, 2)
}

func TestGetAll_BoundedRequest(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		page(t, "expense_categories", true, "c1", "c2"),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "category.getAll", map[string]interface{}{
		"returnAll": false,
		"limit":     50,
	})
	require.NoError(t, err)

	require.Len(t, tr.requests, 1)
	q := requestURL(t, tr.last(t)).Query()
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "50", q.Get("per_page"))
	assert.Len(t, result.Records(), 2)
}

func TestGetAll_DefaultAndInvalidLimit(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		page(t, "users", false, "u1"),
	}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "user.getAll", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "50", requestURL(t, tr.last(t)).Query().Get("per_page"))

	_, err = c.Execute(context.Background(), "user.getAll", map[string]interface{}{"limit": 500})
	require.Error(t, err)
	assert.Len(t, tr.requests, 1)

	_, err = c.Execute(context.Background(), "user.getAll", map[string]interface{}{"limit": 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
	assert.Len(t, tr.requests, 1)
}

func TestGetAll_ReturnAllUsesFullPages(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		page(t, "expense_reports", true, "r1"),
		page(t, "expense_reports", false, "r2"),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "expenseReport.getAll", map[string]interface{}{
		"returnAll": "true",
		"limit":     10,
		"filters":   map[string]interface{}{"status": "approved"},
	})
	require.NoError(t, err)

	require.Len(t, tr.requests, 2)
	q := requestURL(t, tr.requests[0]).Query()
	assert.Equal(t, "200", q.Get("per_page"))
	assert.Equal(t, "approved", q.Get("status"))
	assert.Len(t, result.Records(), 2)
}
