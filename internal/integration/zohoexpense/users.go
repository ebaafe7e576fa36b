package zohoexpense

import (
	"context"

	"github.com/tombee/zoho-expense/internal/operation"
)

// getUser retrieves a single user.
func (c *ZohoExpenseIntegration) getUser(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("userId", p.UserID)); err != nil {
		return nil, err
	}
	return c.fetchOne(ctx, p, "/users/{userId}", map[string]string{"userId": p.UserID}, "user")
}

// getAllUsers lists users, optionally filtered by role and status.
func (c *ZohoExpenseIntegration) getAllUsers(ctx context.Context, p Params) (*operation.Result, error) {
	return c.fetchMany(ctx, p, "/users", "users", filterQuery(p.Filters))
}
