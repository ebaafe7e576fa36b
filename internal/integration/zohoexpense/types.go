package zohoexpense

import (
	"fmt"
	"strconv"
)

// OrganizationHeader carries the tenant for every request.
const OrganizationHeader = "X-com-zoho-expense-organizationid"

// Response envelope keys.
const (
	keyCode        = "code"
	keyMessage     = "message"
	keyPageContext = "page_context"
	keyHasMorePage = "has_more_page"
)

// envelope is the common part of every Zoho Expense response body.
type envelope struct {
	// Code is "0" on success; absent codes count as success
	Code    string
	Message string
}

// success reports whether the envelope code is zero.
func (e envelope) success() bool {
	return e.Code == "" || e.Code == "0"
}

// readEnvelope extracts code and message from a decoded response body.
func readEnvelope(body map[string]interface{}) envelope {
	var env envelope
	switch code := body[keyCode].(type) {
	case nil:
	case float64:
		env.Code = strconv.FormatFloat(code, 'f', -1, 64)
	case string:
		env.Code = code
	default:
		env.Code = fmt.Sprint(code)
	}
	if msg, ok := body[keyMessage].(string); ok {
		env.Message = msg
	}
	return env
}

// hasMorePages reports whether page_context.has_more_page is exactly true.
func hasMorePages(body map[string]interface{}) bool {
	pageContext, ok := body[keyPageContext].(map[string]interface{})
	if !ok {
		return false
	}
	more, ok := pageContext[keyHasMorePage].(bool)
	return ok && more
}

// unwrap returns body[key] when present and non-null, otherwise the whole body.
func unwrap(body map[string]interface{}, key string) interface{} {
	if v, ok := body[key]; ok && v != nil {
		return v
	}
	return body
}

// OptionValue is one entry of a lookup list.
type OptionValue struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}
