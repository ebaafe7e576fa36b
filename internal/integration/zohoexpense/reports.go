package zohoexpense

import (
	"context"
	"net/http"

	"github.com/tombee/zoho-expense/internal/operation"
)

const (
	reportsPath = "/expensereports"
	reportPath  = "/expensereports/{reportId}"
)

// createReport creates an expense report.
func (c *ZohoExpenseIntegration) createReport(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("reportName", p.ReportName)); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"report_name": p.ReportName,
	}
	bag := newFieldBag(p.AdditionalFields)
	bag.takeDate(body, "start_date")
	bag.takeDate(body, "end_date")
	bag.mergeInto(body)

	return c.sendAndUnwrap(ctx, apiCall{
		Method:         http.MethodPost,
		Endpoint:       reportsPath,
		Body:           body,
		OrganizationID: p.OrganizationID,
	}, "expense_report")
}

// getReport retrieves a single expense report.
func (c *ZohoExpenseIntegration) getReport(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("reportId", p.ReportID)); err != nil {
		return nil, err
	}
	return c.fetchOne(ctx, p, reportPath, map[string]string{"reportId": p.ReportID}, "expense_report")
}

// getAllReports lists expense reports.
func (c *ZohoExpenseIntegration) getAllReports(ctx context.Context, p Params) (*operation.Result, error) {
	return c.fetchMany(ctx, p, reportsPath, "expense_reports", filterQuery(p.Filters))
}

// updateReport changes an expense report.
func (c *ZohoExpenseIntegration) updateReport(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("reportId", p.ReportID)); err != nil {
		return nil, err
	}

	body := make(map[string]interface{})
	bag := newFieldBag(p.UpdateFields)
	bag.takeDate(body, "start_date")
	bag.takeDate(body, "end_date")
	bag.mergeInto(body)

	return c.sendAndUnwrap(ctx, c.reportCall(http.MethodPut, reportPath, p, body), "expense_report")
}

// deleteReport removes an expense report.
func (c *ZohoExpenseIntegration) deleteReport(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("reportId", p.ReportID)); err != nil {
		return nil, err
	}
	return c.send(ctx, c.reportCall(http.MethodDelete, reportPath, p, nil))
}

// submitReport submits an expense report for approval.
func (c *ZohoExpenseIntegration) submitReport(ctx context.Context, p Params) (*operation.Result, error) {
	return c.reportAction(ctx, p, "submit", nil)
}

// approveReport approves an expense report.
func (c *ZohoExpenseIntegration) approveReport(ctx context.Context, p Params) (*operation.Result, error) {
	return c.reportAction(ctx, p, "approve", commentsBody(p.Comments))
}

// rejectReport rejects an expense report.
func (c *ZohoExpenseIntegration) rejectReport(ctx context.Context, p Params) (*operation.Result, error) {
	return c.reportAction(ctx, p, "reject", commentsBody(p.Comments))
}

// recallReport recalls a submitted expense report.
func (c *ZohoExpenseIntegration) recallReport(ctx context.Context, p Params) (*operation.Result, error) {
	return c.reportAction(ctx, p, "recall", nil)
}

// reportAction POSTs to /expensereports/{reportId}/{action}.
func (c *ZohoExpenseIntegration) reportAction(ctx context.Context, p Params, action string, body map[string]interface{}) (*operation.Result, error) {
	if err := requireFields(field("reportId", p.ReportID)); err != nil {
		return nil, err
	}
	return c.send(ctx, c.reportCall(http.MethodPost, reportPath+"/"+action, p, body))
}

func (c *ZohoExpenseIntegration) reportCall(method, endpoint string, p Params, body map[string]interface{}) apiCall {
	return apiCall{
		Method:         method,
		Endpoint:       endpoint,
		PathParams:     map[string]string{"reportId": p.ReportID},
		Body:           body,
		OrganizationID: p.OrganizationID,
	}
}

func commentsBody(comments string) map[string]interface{} {
	if comments == "" {
		return nil
	}
	return map[string]interface{}{"comments": comments}
}
