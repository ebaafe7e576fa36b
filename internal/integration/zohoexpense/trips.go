package zohoexpense

import (
	"context"
	"net/http"

	"github.com/tombee/zoho-expense/internal/operation"
)

const (
	tripsPath = "/trips"
	tripPath  = "/trips/{tripId}"
)

// createTrip creates a trip.
func (c *ZohoExpenseIntegration) createTrip(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(
		field("tripName", p.TripName),
		field("startDate", p.StartDate),
		field("endDate", p.EndDate),
	); err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"trip_name":  p.TripName,
		"start_date": truncateDate(p.StartDate),
		"end_date":   truncateDate(p.EndDate),
	}
	newFieldBag(p.AdditionalFields).mergeInto(body)

	return c.sendAndUnwrap(ctx, apiCall{
		Method:         http.MethodPost,
		Endpoint:       tripsPath,
		Body:           body,
		OrganizationID: p.OrganizationID,
	}, "trip")
}

// getTrip retrieves a single trip.
func (c *ZohoExpenseIntegration) getTrip(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("tripId", p.TripID)); err != nil {
		return nil, err
	}
	return c.fetchOne(ctx, p, tripPath, map[string]string{"tripId": p.TripID}, "trip")
}

// getAllTrips lists trips.
func (c *ZohoExpenseIntegration) getAllTrips(ctx context.Context, p Params) (*operation.Result, error) {
	return c.fetchMany(ctx, p, tripsPath, "trips", map[string]interface{}{})
}

// updateTrip changes a trip.
func (c *ZohoExpenseIntegration) updateTrip(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("tripId", p.TripID)); err != nil {
		return nil, err
	}

	body := make(map[string]interface{})
	bag := newFieldBag(p.UpdateFields)
	bag.takeDate(body, "start_date")
	bag.takeDate(body, "end_date")
	bag.mergeInto(body)

	return c.sendAndUnwrap(ctx, apiCall{
		Method:         http.MethodPut,
		Endpoint:       tripPath,
		PathParams:     map[string]string{"tripId": p.TripID},
		Body:           body,
		OrganizationID: p.OrganizationID,
	}, "trip")
}

// deleteTrip removes a trip.
func (c *ZohoExpenseIntegration) deleteTrip(ctx context.Context, p Params) (*operation.Result, error) {
	if err := requireFields(field("tripId", p.TripID)); err != nil {
		return nil, err
	}
	return c.send(ctx, apiCall{
		Method:         http.MethodDelete,
		Endpoint:       tripPath,
		PathParams:     map[string]string{"tripId": p.TripID},
		OrganizationID: p.OrganizationID,
	})
}
