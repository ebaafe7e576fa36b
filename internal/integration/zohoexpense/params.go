package zohoexpense

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/tombee/zoho-expense/pkg/errors"
)

// Limit bounds for non-paginated getAll calls.
const (
	defaultLimit = 50
	minLimit     = 1
	maxLimit     = 200
)

// Params holds every parameter one item can carry, decoded once from the
// host parameter bag.
type Params struct {
	OrganizationID string `mapstructure:"organizationId"`

	ExpenseID          string `mapstructure:"expenseId"`
	DuplicateExpenseID string `mapstructure:"duplicateExpenseId"`
	ReportID           string `mapstructure:"reportId"`
	TripID             string `mapstructure:"tripId"`
	UserID             string `mapstructure:"userId"`
	CategoryID         string `mapstructure:"categoryId"`

	CurrencyID string `mapstructure:"currencyId"`
	ReportName string `mapstructure:"reportName"`
	TripName   string `mapstructure:"tripName"`
	StartDate  string `mapstructure:"startDate"`
	EndDate    string `mapstructure:"endDate"`
	Comments   string `mapstructure:"comments"`

	ReturnAll bool `mapstructure:"returnAll"`
	Limit     *int `mapstructure:"limit"`

	LineItems LineItems `mapstructure:"lineItems"`

	AdditionalFields map[string]interface{} `mapstructure:"additionalFields"`
	UpdateFields     map[string]interface{} `mapstructure:"updateFields"`
	Filters          map[string]interface{} `mapstructure:"filters"`
}

// LineItems is the UI-shaped wrapper around expense line items.
type LineItems struct {
	Values []LineItem `mapstructure:"lineItemValues"`
}

// LineItem is one expense line as entered by the user.
type LineItem struct {
	LineItemID  string   `mapstructure:"line_item_id"`
	CategoryID  string   `mapstructure:"category_id"`
	Amount      *float64 `mapstructure:"amount"`
	Description string   `mapstructure:"description"`
	TaxID       string   `mapstructure:"tax_id"`
	ItemOrder   *int     `mapstructure:"item_order"`
	Tags        Tags     `mapstructure:"tags"`
}

// Tags is the UI-shaped wrapper around line item tags.
type Tags struct {
	Values []map[string]interface{} `mapstructure:"tagValues"`
}

// decode runs mapstructure with weak typing so values may arrive as
// strings, floats or ints regardless of the declared field type.
func decode(input interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeToStringHook,
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// timeToStringHook lets YAML timestamps decode into string fields.
func timeToStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if t, ok := data.(time.Time); ok && to.Kind() == reflect.String {
		return t.Format(time.RFC3339), nil
	}
	return data, nil
}

// DecodeParams decodes a host parameter bag. Dotted keys such as
// "lineItems.lineItemValues" are expanded into nested maps first.
func DecodeParams(inputs map[string]interface{}) (Params, error) {
	var p Params
	if err := decode(expandDottedKeys(inputs), &p); err != nil {
		return Params{}, &errors.ValidationError{
			Message:     fmt.Sprintf("invalid parameters: %v", err),
			SuggestText: "Check parameter types against 'zoho-expense operations'",
		}
	}
	return p, nil
}

// expandDottedKeys returns a copy of inputs where "a.b" keys become a
// nested {"a": {"b": ...}} entry. Existing nested maps are merged into.
func expandDottedKeys(inputs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(inputs))
	for k, v := range inputs {
		if !strings.Contains(k, ".") {
			out[k] = v
		}
	}
	for k, v := range inputs {
		head, rest, ok := strings.Cut(k, ".")
		if !ok {
			continue
		}
		nested, _ := out[head].(map[string]interface{})
		if nested == nil {
			nested = make(map[string]interface{})
		} else {
			nested = copyFields(nested)
		}
		nested[rest] = v
		out[head] = nested
	}
	return out
}

// limit returns the requested page size for a bounded getAll. An unset
// limit falls back to the default; an explicit one must be in range.
func (p Params) limit() (int, error) {
	if p.Limit == nil {
		return defaultLimit, nil
	}
	n := *p.Limit
	if n < minLimit || n > maxLimit {
		return 0, &errors.ValidationError{
			Field:       "limit",
			Message:     fmt.Sprintf("must be between %d and %d, got %d", minLimit, maxLimit, n),
			SuggestText: "Use returnAll to fetch every page",
		}
	}
	return n, nil
}

// requireFields returns a missing-parameter error for the first empty value.
func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.NewMissingParameterError(f.name)
		}
	}
	return nil
}

type requiredField struct {
	name  string
	value string
}

func field(name, value string) requiredField {
	return requiredField{name: name, value: value}
}

// truncateDate reduces an ISO-8601 timestamp to its date part.
func truncateDate(v interface{}) string {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case string:
		date, _, _ := strings.Cut(d, "T")
		return date
	default:
		date, _, _ := strings.Cut(fmt.Sprint(d), "T")
		return date
	}
}

// isEmpty reports whether a bag value counts as unset.
func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	default:
		return false
	}
}

// copyFields returns a shallow copy of a field bag.
func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
