package zohoexpense

import (
	"context"
	"net/http"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/pkg/errors"
)

const (
	expensesPath      = "/expenses"
	expensePath       = "/expenses/{expenseId}"
	expenseMergePath  = "/expenses/{expenseId}/merge"
	expenseDetailPath = "/reports/expensedetails"
)

// createExpense creates an expense with its line items.
func (c *ZohoExpenseIntegration) createExpense(ctx context.Context, p Params) (*operation.Result, error) {
	// Validate required parameters
	if err := requireFields(field("currencyId", p.CurrencyID)); err != nil {
		return nil, err
	}
	if len(p.LineItems.Values) == 0 {
		return nil, &errors.ValidationError{
			Field:       "lineItems.lineItemValues",
			Message:     "at least one line item is required",
			SuggestText: "Add a line item with category_id and amount",
		}
	}

	// Build request body
	lines := make([]interface{}, 0, len(p.LineItems.Values))
	for _, item := range p.LineItems.Values {
		lines = append(lines, createLineItem(item))
	}
	body := map[string]interface{}{
		"currency_id": p.CurrencyID,
		lineItemsKey:  lines,
	}

	bag := newFieldBag(p.AdditionalFields)
	bag.takeDate(body, "date")
	bag.takeCollection(body, attendeesKey, attendeeValuesKey)
	bag.takeCollection(body, customFieldsKey, customFieldValueKey)
	bag.mergeInto(body)

	// Execute request
	return c.sendAndUnwrap(ctx, apiCall{
		Method:         http.MethodPost,
		Endpoint:       expensesPath,
		Body:           body,
		OrganizationID: p.OrganizationID,
	}, "expenses")
}

// getExpense retrieves a single expense.
func (c *ZohoExpenseIntegration) getExpense(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("expenseId", p.ExpenseID)); err != nil {
		return nil, err
	}
	return c.fetchOne(ctx, p, expensePath, map[string]string{"expenseId": p.ExpenseID}, "expense")
}

// getAllExpenses lists expenses from the expense details report.
func (c *ZohoExpenseIntegration) getAllExpenses(ctx context.Context, p Params) (*operation.Result, error) {
	query := filterQuery(p.Filters, "date_start", "date_end")
	return c.fetchMany(ctx, p, expenseDetailPath, "expenses", query)
}

// updateExpense changes an expense. Only the supplied fields are sent.
func (c *ZohoExpenseIntegration) updateExpense(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("expenseId", p.ExpenseID)); err != nil {
		return nil, err
	}

	body := make(map[string]interface{})
	bag := newFieldBag(p.UpdateFields)
	bag.takeDate(body, "date")
	if err := bag.takeLineItems(body); err != nil {
		return nil, err
	}
	bag.takeCollection(body, attendeesKey, attendeeValuesKey)
	bag.takeCollection(body, customFieldsKey, customFieldValueKey)
	bag.mergeInto(body)

	return c.sendAndUnwrap(ctx, apiCall{
		Method:         http.MethodPut,
		Endpoint:       expensePath,
		PathParams:     map[string]string{"expenseId": p.ExpenseID},
		Body:           body,
		OrganizationID: p.OrganizationID,
	}, "expense")
}

// deleteExpense removes an expense.
func (c *ZohoExpenseIntegration) deleteExpense(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("expenseId", p.ExpenseID)); err != nil {
		return nil, err
	}
	return c.send(ctx, apiCall{
		Method:         http.MethodDelete,
		Endpoint:       expensePath,
		PathParams:     map[string]string{"expenseId": p.ExpenseID},
		OrganizationID: p.OrganizationID,
	})
}

// mergeExpense merges a duplicate into an expense.
func (c *ZohoExpenseIntegration) mergeExpense(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("expenseId", p.ExpenseID), field("duplicateExpenseId", p.DuplicateExpenseID)); err != nil {
		return nil, err
	}
	return c.send(ctx, apiCall{
		Method:         http.MethodPost,
		Endpoint:       expenseMergePath,
		PathParams:     map[string]string{"expenseId": p.ExpenseID},
		Query:          map[string]interface{}{"duplicate_expense_id": p.DuplicateExpenseID},
		OrganizationID: p.OrganizationID,
	})
}
