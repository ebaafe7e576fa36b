package zohoexpense

import (
	"context"
	"sort"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/api"
)

// Resource names a Zoho Expense resource.
type Resource string

const (
	ResourceExpense       Resource = "expense"
	ResourceExpenseReport Resource = "expenseReport"
	ResourceTrip          Resource = "trip"
	ResourceUser          Resource = "user"
	ResourceCategory      Resource = "category"
)

// Operation names an action on a resource.
type Operation string

const (
	OpCreate  Operation = "create"
	OpGet     Operation = "get"
	OpGetAll  Operation = "getAll"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpMerge   Operation = "merge"
	OpSubmit  Operation = "submit"
	OpApprove Operation = "approve"
	OpReject  Operation = "reject"
	OpRecall  Operation = "recall"
)

// handlerKey identifies one dispatch table entry.
type handlerKey struct {
	Resource  Resource
	Operation Operation
}

// String returns the "resource.operation" form used by the host.
func (k handlerKey) String() string {
	return string(k.Resource) + "." + string(k.Operation)
}

type handlerFunc func(c *ZohoExpenseIntegration, ctx context.Context, p Params) (*operation.Result, error)

// operationDef describes one supported (Resource, Operation) pair.
type operationDef struct {
	Resource    Resource
	Operation   Operation
	Description string
	Tags        []string
	Parameters  []api.ParameterInfo
	handler     handlerFunc
}

func (d operationDef) key() handlerKey {
	return handlerKey{Resource: d.Resource, Operation: d.Operation}
}

var catalog = []operationDef{
	// Expenses
	{ResourceExpense, OpCreate, "Create a new expense", []string{"write"},
		params(orgParam, required("currencyId", "string", "Currency of the expense"),
			required("lineItems.lineItemValues", "array", "Line items: category_id, amount, description, tax_id, tags.tagValues"),
			additionalFieldsParam("date, merchant_id, reference_number, attendees.attendeeValues, custom_fields.customFieldValues, ...")),
		(*ZohoExpenseIntegration).createExpense},
	{ResourceExpense, OpDelete, "Delete an expense", []string{"write", "destructive"},
		params(orgParam, required("expenseId", "string", "ID of the expense")),
		(*ZohoExpenseIntegration).deleteExpense},
	{ResourceExpense, OpGet, "Get a single expense", []string{"read"},
		params(orgParam, required("expenseId", "string", "ID of the expense")),
		(*ZohoExpenseIntegration).getExpense},
	{ResourceExpense, OpGetAll, "Get many expenses", []string{"read", "paginated"},
		params(orgParam, returnAllParam, limitParam,
			filtersParam("category_id, customer_id, date_start, date_end, merchant_id, project_id, status, user_id")),
		(*ZohoExpenseIntegration).getAllExpenses},
	{ResourceExpense, OpMerge, "Merge multiple expenses", []string{"write"},
		params(orgParam, required("expenseId", "string", "ID of the expense to keep"),
			required("duplicateExpenseId", "string", "ID of the duplicate expense")),
		(*ZohoExpenseIntegration).mergeExpense},
	{ResourceExpense, OpUpdate, "Update an expense", []string{"write"},
		params(orgParam, required("expenseId", "string", "ID of the expense"),
			updateFieldsParam("date, currency_id, line_items.lineItemValues, attendees.attendeeValues, custom_fields.customFieldValues, ...")),
		(*ZohoExpenseIntegration).updateExpense},

	// Expense reports
	{ResourceExpenseReport, OpApprove, "Approve an expense report", []string{"write"},
		params(orgParam, required("reportId", "string", "ID of the expense report"), optional("comments", "string", "Approval comments")),
		(*ZohoExpenseIntegration).approveReport},
	{ResourceExpenseReport, OpCreate, "Create a new expense report", []string{"write"},
		params(orgParam, required("reportName", "string", "Name of the expense report"),
			additionalFieldsParam("start_date, end_date, description, trip_id, ...")),
		(*ZohoExpenseIntegration).createReport},
	{ResourceExpenseReport, OpDelete, "Delete an expense report", []string{"write", "destructive"},
		params(orgParam, required("reportId", "string", "ID of the expense report")),
		(*ZohoExpenseIntegration).deleteReport},
	{ResourceExpenseReport, OpGet, "Get a single expense report", []string{"read"},
		params(orgParam, required("reportId", "string", "ID of the expense report")),
		(*ZohoExpenseIntegration).getReport},
	{ResourceExpenseReport, OpGetAll, "Get many expense reports", []string{"read", "paginated"},
		params(orgParam, returnAllParam, limitParam, filtersParam("status, user_id, ...")),
		(*ZohoExpenseIntegration).getAllReports},
	{ResourceExpenseReport, OpRecall, "Recall a submitted expense report", []string{"write"},
		params(orgParam, required("reportId", "string", "ID of the expense report")),
		(*ZohoExpenseIntegration).recallReport},
	{ResourceExpenseReport, OpReject, "Reject an expense report", []string{"write"},
		params(orgParam, required("reportId", "string", "ID of the expense report"), optional("comments", "string", "Rejection comments")),
		(*ZohoExpenseIntegration).rejectReport},
	{ResourceExpenseReport, OpSubmit, "Submit an expense report for approval", []string{"write"},
		params(orgParam, required("reportId", "string", "ID of the expense report")),
		(*ZohoExpenseIntegration).submitReport},
	{ResourceExpenseReport, OpUpdate, "Update an expense report", []string{"write"},
		params(orgParam, required("reportId", "string", "ID of the expense report"),
			updateFieldsParam("report_name, start_date, end_date, description, ...")),
		(*ZohoExpenseIntegration).updateReport},

	// Trips
	{ResourceTrip, OpCreate, "Create a new trip", []string{"write"},
		params(orgParam, required("tripName", "string", "Name of the trip"),
			required("startDate", "string", "Start date (YYYY-MM-DD or ISO-8601)"),
			required("endDate", "string", "End date (YYYY-MM-DD or ISO-8601)"),
			additionalFieldsParam("business_purpose, destination_country, is_international, ...")),
		(*ZohoExpenseIntegration).createTrip},
	{ResourceTrip, OpDelete, "Delete a trip", []string{"write", "destructive"},
		params(orgParam, required("tripId", "string", "ID of the trip")),
		(*ZohoExpenseIntegration).deleteTrip},
	{ResourceTrip, OpGet, "Get a single trip", []string{"read"},
		params(orgParam, required("tripId", "string", "ID of the trip")),
		(*ZohoExpenseIntegration).getTrip},
	{ResourceTrip, OpGetAll, "Get many trips", []string{"read", "paginated"},
		params(orgParam, returnAllParam, limitParam),
		(*ZohoExpenseIntegration).getAllTrips},
	{ResourceTrip, OpUpdate, "Update a trip", []string{"write"},
		params(orgParam, required("tripId", "string", "ID of the trip"),
			updateFieldsParam("trip_name, start_date, end_date, business_purpose, ...")),
		(*ZohoExpenseIntegration).updateTrip},

	// Users
	{ResourceUser, OpGet, "Get a single user", []string{"read"},
		params(orgParam, required("userId", "string", "ID of the user")),
		(*ZohoExpenseIntegration).getUser},
	{ResourceUser, OpGetAll, "Get many users", []string{"read", "paginated"},
		params(orgParam, returnAllParam, limitParam, filtersParam("role, status")),
		(*ZohoExpenseIntegration).getAllUsers},

	// Categories
	{ResourceCategory, OpGet, "Get a single expense category", []string{"read"},
		params(orgParam, required("categoryId", "string", "ID of the expense category")),
		(*ZohoExpenseIntegration).getCategory},
	{ResourceCategory, OpGetAll, "Get many expense categories", []string{"read", "paginated"},
		params(orgParam, returnAllParam, limitParam, filtersParam("is_enabled")),
		(*ZohoExpenseIntegration).getAllCategories},
}

// handlers is the dispatch table built from catalog.
var handlers = func() map[handlerKey]handlerFunc {
	table := make(map[handlerKey]handlerFunc, len(catalog))
	for _, def := range catalog {
		table[def.key()] = def.handler
	}
	return table
}()

// lookupOperation finds the catalog entry for a "resource.operation" name.
func lookupOperation(name string) (operationDef, bool) {
	for _, def := range catalog {
		if def.key().String() == name {
			return def, true
		}
	}
	return operationDef{}, false
}

// Operations returns the list of available operations, sorted by name.
func (c *ZohoExpenseIntegration) Operations() []api.OperationInfo {
	return ListOperations()
}

// OperationSchema returns the description and parameters of an operation.
func (c *ZohoExpenseIntegration) OperationSchema(name string) *api.OperationSchema {
	return DescribeOperation(name)
}

// ListOperations returns every "resource.operation" the connector handles,
// sorted by name. It needs no credential.
func ListOperations() []api.OperationInfo {
	ops := make([]api.OperationInfo, 0, len(catalog))
	for _, def := range catalog {
		ops = append(ops, api.OperationInfo{
			Name:        def.key().String(),
			Description: def.Description,
			Category:    string(def.Resource),
			Tags:        def.Tags,
		})
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// DescribeOperation returns the schema of one operation, or nil if unknown.
func DescribeOperation(name string) *api.OperationSchema {
	def, ok := lookupOperation(name)
	if !ok {
		return nil
	}
	return &api.OperationSchema{
		Description: def.Description,
		Parameters:  def.Parameters,
	}
}

// Parameter definitions shared across operations.
var (
	orgParam = optional("organizationId", "string",
		"Organization to act on; defaults to the credential's organization")
	returnAllParam = api.ParameterInfo{Name: "returnAll", Type: "boolean",
		Description: "Fetch every page instead of stopping at limit", Default: false}
	limitParam = api.ParameterInfo{Name: "limit", Type: "integer",
		Description: "Maximum number of results (1-200)", Default: defaultLimit}
)

func params(p ...api.ParameterInfo) []api.ParameterInfo {
	return p
}

func required(name, typ, description string) api.ParameterInfo {
	return api.ParameterInfo{Name: name, Type: typ, Description: description, Required: true}
}

func optional(name, typ, description string) api.ParameterInfo {
	return api.ParameterInfo{Name: name, Type: typ, Description: description}
}

func additionalFieldsParam(keys string) api.ParameterInfo {
	return optional("additionalFields", "object", "Optional fields: "+keys)
}

func updateFieldsParam(keys string) api.ParameterInfo {
	return optional("updateFields", "object", "Fields to change: "+keys)
}

func filtersParam(keys string) api.ParameterInfo {
	return optional("filters", "object", "Query filters: "+keys)
}
