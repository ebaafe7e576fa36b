package zohoexpense

import (
	"context"

	"github.com/tombee/zoho-expense/internal/operation"
)

// getCategory retrieves a single expense category.
func (c *ZohoExpenseIntegration) getCategory(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("categoryId", p.CategoryID)); err != nil {
		return nil, err
	}
	return c.fetchOne(ctx, p, "/expensecategories/{categoryId}", map[string]string{"categoryId": p.CategoryID}, "expense_category")
}

// getAllCategories lists expense categories.
func (c *ZohoExpenseIntegration) getAllCategories(ctx context.Context, p Params) (*operation.Result, error) {
	return c.fetchMany(ctx, p, "/expensecategories", "expense_categories", filterQuery(p.Filters))
}
