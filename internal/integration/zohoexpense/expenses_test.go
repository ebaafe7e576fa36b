package zohoexpense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/zoho-expense/internal/operation/transport"
	"github.com/tombee/zoho-expense/pkg/errors"
)

func okResponse(t *testing.T, extra map[string]interface{}) *transport.Response {
	t.Helper()
	body := map[string]interface{}{"code": 0, "message": "success"}
	for k, v := range extra {
		body[k] = v
	}
	return jsonResponse(t, body)
}

func TestCreateExpense_MinimalPayload(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		okResponse(t, map[string]interface{}{"expenses": []interface{}{map[string]interface{}{"expense_id": "E1"}}}),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "expense.create", map[string]interface{}{
		"currencyId": "CUR1",
		"lineItems": map[string]interface{}{
			"lineItemValues": []interface{}{
				map[string]interface{}{"category_id": "CAT1", "amount": 12.5},
			},
		},
	})
	require.NoError(t, err)

	req := tr.last(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/expense/v1/expenses", requestURL(t, req).Path)

	body := tr.body(t)
	assert.Equal(t, "CUR1", body["currency_id"])
	assert.NotContains(t, body, "attendees")
	assert.NotContains(t, body, "custom_fields")

	lines := body["line_items"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"category_id": "CAT1", "amount": 12.5}, line)
	assert.NotContains(t, line, "tags")

	assert.Equal(t, []interface{}{map[string]interface{}{"expense_id": "E1"}}, result.Response)
}

func TestCreateExpense_FlatAttendeesSentVerbatim(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{okResponse(t, nil)}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "expense.create", map[string]interface{}{
		"currencyId": "CUR1",
		"lineItems": map[string]interface{}{
			"lineItemValues": []interface{}{
				map[string]interface{}{"category_id": "CAT1", "amount": 12.5},
			},
		},
		"additionalFields": map[string]interface{}{
			"attendees": []interface{}{map[string]interface{}{"attendee_id": "A1"}},
		},
	})
	require.NoError(t, err)

	body := tr.body(t)
	assert.Equal(t, []interface{}{map[string]interface{}{"attendee_id": "A1"}}, body["attendees"])
}

func TestCreateExpense_FlattensNestedCollections(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{okResponse(t, nil)}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "expense.create", map[string]interface{}{
		"currencyId": "CUR1",
		"lineItems.lineItemValues": []interface{}{
			map[string]interface{}{
				"category_id": "CAT1",
				"amount":      "40",
				"description": "Taxi",
				"tax_id":      "TAX1",
				"tags": map[string]interface{}{
					"tagValues": []interface{}{map[string]interface{}{"tag_id": "T1", "tag_option_id": "O1"}},
				},
			},
		},
		"additionalFields": map[string]interface{}{
			"date":          "2024-03-15T10:30:00Z",
			"merchant_name": "Cab Co",
			"attendees": map[string]interface{}{
				"attendeeValues": []interface{}{map[string]interface{}{"attendee_id": "A1"}},
			},
			"custom_fields": map[string]interface{}{
				"customFieldValues": []interface{}{},
			},
		},
	})
	require.NoError(t, err)

	body := tr.body(t)
	assert.Equal(t, "2024-03-15", body["date"])
	assert.Equal(t, "Cab Co", body["merchant_name"])
	assert.Equal(t, []interface{}{map[string]interface{}{"attendee_id": "A1"}}, body["attendees"])
	assert.NotContains(t, body, "custom_fields", "empty collection must be omitted")

	line := body["line_items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(40), line["amount"])
	assert.Equal(t, "Taxi", line["description"])
	assert.Equal(t, "TAX1", line["tax_id"])
	assert.Equal(t, []interface{}{map[string]interface{}{"tag_id": "T1", "tag_option_id": "O1"}}, line["tags"])
}

func TestCreateExpense_DoesNotMutateFieldBag(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{okResponse(t, nil)}}
	c := newTestIntegration(t, tr, nil)

	fields := map[string]interface{}{"date": "2024-03-15T10:30:00Z"}
	_, err := c.Execute(context.Background(), "expense.create", map[string]interface{}{
		"currencyId":       "CUR1",
		"lineItems":        map[string]interface{}{"lineItemValues": []interface{}{map[string]interface{}{"category_id": "C"}}},
		"additionalFields": fields,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T10:30:00Z", fields["date"])
}

func TestCreateExpense_Validation(t *testing.T) {
	tests := []struct {
		name   string
		inputs map[string]interface{}
		field  string
	}{
		{
			name:   "missing currency",
			inputs: map[string]interface{}{"lineItems": map[string]interface{}{"lineItemValues": []interface{}{map[string]interface{}{"category_id": "C"}}}},
			field:  "currencyId",
		},
		{
			name:   "missing line items",
			inputs: map[string]interface{}{"currencyId": "CUR1"},
			field:  "lineItems.lineItemValues",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &recordingTransport{}
			c := newTestIntegration(t, tr, nil)

			_, err := c.Execute(context.Background(), "expense.create", tt.inputs)
			var valErr *errors.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Empty(t, tr.requests, "no request before validation passes")
		})
	}
}

func TestGetExpense_Unwraps(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		okResponse(t, map[string]interface{}{"expense": map[string]interface{}{"id": "1"}}),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "expense.get", map[string]interface{}{"expenseId": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "1"}, result.Response)
	assert.Equal(t, "/expense/v1/expenses/1", requestURL(t, tr.last(t)).Path)
}

func TestGetAllExpenses_TruncatesDateFilters(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		okResponse(t, map[string]interface{}{"expenses": []interface{}{}}),
	}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "expense.getAll", map[string]interface{}{
		"limit": "25",
		"filters": map[string]interface{}{
			"date_start": "2024-03-01T00:00:00Z",
			"date_end":   "2024-03-31T23:59:59Z",
			"status":     "unreported",
		},
	})
	require.NoError(t, err)

	u := requestURL(t, tr.last(t))
	assert.Equal(t, "/expense/v1/reports/expensedetails", u.Path)
	q := u.Query()
	assert.Equal(t, "2024-03-01", q.Get("date_start"))
	assert.Equal(t, "2024-03-31", q.Get("date_end"))
	assert.Equal(t, "unreported", q.Get("status"))
	assert.Equal(t, "25", q.Get("per_page"))
}

func TestUpdateExpense_LineItems(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		okResponse(t, map[string]interface{}{"expense": map[string]interface{}{"expense_id": "E1"}}),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "expense.update", map[string]interface{}{
		"expenseId": "E1",
		"updateFields": map[string]interface{}{
			"date":        "2024-03-20T08:00:00Z",
			"description": "Updated",
			"line_items": map[string]interface{}{
				"lineItemValues": []interface{}{
					map[string]interface{}{"line_item_id": "L1", "amount": 0, "item_order": "2"},
				},
			},
		},
	})
	require.NoError(t, err)

	req := tr.last(t)
	assert.Equal(t, "PUT", req.Method)
	assert.Equal(t, "/expense/v1/expenses/E1", requestURL(t, req).Path)

	body := tr.body(t)
	assert.Equal(t, "2024-03-20", body["date"])
	assert.Equal(t, "Updated", body["description"])
	line := body["line_items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"line_item_id": "L1", "amount": float64(0), "item_order": float64(2)}, line)

	assert.Equal(t, map[string]interface{}{"expense_id": "E1"}, result.Response)
}

func TestDeleteExpense_ReturnsRawResponse(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		okResponse(t, map[string]interface{}{"message": "The expense has been deleted."}),
	}}
	c := newTestIntegration(t, tr, nil)

	result, err := c.Execute(context.Background(), "expense.delete", map[string]interface{}{"expenseId": "E1"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE", tr.last(t).Method)
	assert.Equal(t, "The expense has been deleted.", result.Response.(map[string]interface{})["message"])
}

func TestMergeExpense(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{okResponse(t, nil)}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "expense.merge", map[string]interface{}{
		"expenseId":          "E1",
		"duplicateExpenseId": "E2",
	})
	require.NoError(t, err)

	req := tr.last(t)
	u := requestURL(t, req)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/expense/v1/expenses/E1/merge", u.Path)
	assert.Equal(t, "E2", u.Query().Get("duplicate_expense_id"))
	assert.Nil(t, req.Body)
}
