package zohoexpense

import (
	"fmt"

	"github.com/tombee/zoho-expense/pkg/errors"
)

// Nested collection keys and the wrapper key holding their values.
const (
	lineItemsKey        = "line_items"
	lineItemValuesKey   = "lineItemValues"
	attendeesKey        = "attendees"
	attendeeValuesKey   = "attendeeValues"
	customFieldsKey     = "custom_fields"
	customFieldValueKey = "customFieldValues"
)

// createLineItem flattens a line item for expense create.
func createLineItem(item LineItem) map[string]interface{} {
	line := map[string]interface{}{
		"category_id": item.CategoryID,
	}
	if item.Amount != nil {
		line["amount"] = *item.Amount
	}
	if item.Description != "" {
		line["description"] = item.Description
	}
	if item.TaxID != "" {
		line["tax_id"] = item.TaxID
	}
	if len(item.Tags.Values) > 0 {
		line["tags"] = item.Tags.Values
	}
	return line
}

// updateLineItem flattens a line item for expense update. Only fields the
// user set are sent, so existing values on the server are left alone.
func updateLineItem(item LineItem) map[string]interface{} {
	line := make(map[string]interface{})
	if item.LineItemID != "" {
		line["line_item_id"] = item.LineItemID
	}
	if item.CategoryID != "" {
		line["category_id"] = item.CategoryID
	}
	if item.Amount != nil {
		line["amount"] = *item.Amount
	}
	if item.Description != "" {
		line["description"] = item.Description
	}
	if item.TaxID != "" {
		line["tax_id"] = item.TaxID
	}
	if item.ItemOrder != nil {
		line["item_order"] = *item.ItemOrder
	}
	if len(item.Tags.Values) > 0 {
		line["tags"] = item.Tags.Values
	}
	return line
}

// fieldBag is a copy of an additionalFields/updateFields map. Keys that
// need reshaping are taken out of it; whatever remains is merged verbatim.
type fieldBag map[string]interface{}

func newFieldBag(fields map[string]interface{}) fieldBag {
	return fieldBag(copyFields(fields))
}

// takeDate moves a non-empty date field into body, truncated to YYYY-MM-DD.
func (b fieldBag) takeDate(body map[string]interface{}, key string) {
	v, ok := b[key]
	if !ok || isEmpty(v) {
		return
	}
	body[key] = truncateDate(v)
	delete(b, key)
}

// takeCollection unwraps {key: {valuesKey: [...]}} into body[key]. The
// values land in body only when non-empty. A value without the wrapper
// stays in the bag and is merged verbatim.
func (b fieldBag) takeCollection(body map[string]interface{}, key, valuesKey string) {
	wrapper, ok := b[key].(map[string]interface{})
	if !ok {
		return
	}
	raw, ok := wrapper[valuesKey]
	if !ok {
		return
	}
	delete(b, key)

	if values := toSlice(raw); len(values) > 0 {
		body[key] = values
	}
}

// takeLineItems unwraps update line items into body.
func (b fieldBag) takeLineItems(body map[string]interface{}) error {
	raw, ok := b[lineItemsKey]
	if !ok {
		return nil
	}
	delete(b, lineItemsKey)

	var items LineItems
	if err := decode(raw, &items); err != nil {
		return &errors.ValidationError{
			Field:   "updateFields.line_items",
			Message: fmt.Sprintf("invalid line items: %v", err),
		}
	}
	if len(items.Values) == 0 {
		return nil
	}

	lines := make([]interface{}, 0, len(items.Values))
	for _, item := range items.Values {
		lines = append(lines, updateLineItem(item))
	}
	body[lineItemsKey] = lines
	return nil
}

// mergeInto copies the remaining fields into body.
func (b fieldBag) mergeInto(body map[string]interface{}) {
	for k, v := range b {
		body[k] = v
	}
}

// filterQuery builds a getAll query from filters, truncating date filters.
func filterQuery(filters map[string]interface{}, dateKeys ...string) map[string]interface{} {
	query := make(map[string]interface{})
	bag := newFieldBag(filters)
	for _, key := range dateKeys {
		bag.takeDate(query, key)
	}
	bag.mergeInto(query)
	return query
}

// toSlice accepts the slice shapes a decoded parameter bag can hold.
func toSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out
	default:
		return nil
	}
}
