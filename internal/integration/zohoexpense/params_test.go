package zohoexpense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateDate(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: "2024-03-15T10:30:00Z", want: "2024-03-15"},
		{in: "2024-03-15T00:00:00.000+05:30", want: "2024-03-15"},
		{in: "2024-03-15", want: "2024-03-15"},
		{in: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), want: "2024-03-15"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateDate(tt.in))
	}
}

func TestDecodeParams_WeakTyping(t *testing.T) {
	p, err := DecodeParams(map[string]interface{}{
		"organizationId": 60012345,
		"expenseId":      "E1",
		"returnAll":      "true",
		"limit":          "75",
		"startDate":      time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		"lineItems.lineItemValues": []interface{}{
			map[string]interface{}{"category_id": "C1", "amount": "9.99", "item_order": 1.0},
		},
		"filters": map[string]interface{}{"status": "approved"},
	})
	require.NoError(t, err)

	assert.Equal(t, "60012345", p.OrganizationID)
	assert.Equal(t, "E1", p.ExpenseID)
	assert.True(t, p.ReturnAll)
	require.NotNil(t, p.Limit)
	assert.Equal(t, 75, *p.Limit)
	assert.Equal(t, "2024-03-15", truncateDate(p.StartDate))
	assert.Equal(t, map[string]interface{}{"status": "approved"}, p.Filters)

	require.Len(t, p.LineItems.Values, 1)
	item := p.LineItems.Values[0]
	assert.Equal(t, "C1", item.CategoryID)
	require.NotNil(t, item.Amount)
	assert.Equal(t, 9.99, *item.Amount)
	require.NotNil(t, item.ItemOrder)
	assert.Equal(t, 1, *item.ItemOrder)
}

func TestDecodeParams_Invalid(t *testing.T) {
	_, err := DecodeParams(map[string]interface{}{"limit": "many"})
	assert.Error(t, err)
}

func TestParamsLimit(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name    string
		limit   *int
		want    int
		wantErr bool
	}{
		{name: "unset", limit: nil, want: 50},
		{name: "zero", limit: intPtr(0), wantErr: true},
		{name: "min", limit: intPtr(1), want: 1},
		{name: "max", limit: intPtr(200), want: 200},
		{name: "above max", limit: intPtr(201), wantErr: true},
		{name: "negative", limit: intPtr(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Params{Limit: tt.limit}.limit()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldBag(t *testing.T) {
	body := map[string]interface{}{}
	bag := newFieldBag(map[string]interface{}{
		"date":          "2024-03-15T10:30:00Z",
		"attendees":     map[string]interface{}{"attendeeValues": []interface{}{}},
		"custom_fields": map[string]interface{}{"customFieldValues": []interface{}{map[string]interface{}{"customfield_id": "CF1", "value": "x"}}},
		"is_billable":   true,
	})

	bag.takeDate(body, "date")
	bag.takeCollection(body, attendeesKey, attendeeValuesKey)
	bag.takeCollection(body, customFieldsKey, customFieldValueKey)
	bag.mergeInto(body)

	assert.Equal(t, map[string]interface{}{
		"date":          "2024-03-15",
		"custom_fields": []interface{}{map[string]interface{}{"customfield_id": "CF1", "value": "x"}},
		"is_billable":   true,
	}, body)
}

func TestFieldBag_FlatCollectionPassesThrough(t *testing.T) {
	attendees := []interface{}{map[string]interface{}{"attendee_id": "A1"}}
	body := map[string]interface{}{}
	bag := newFieldBag(map[string]interface{}{"attendees": attendees})

	bag.takeCollection(body, attendeesKey, attendeeValuesKey)
	assert.NotContains(t, body, "attendees")

	bag.mergeInto(body)
	assert.Equal(t, map[string]interface{}{"attendees": attendees}, body)
}
