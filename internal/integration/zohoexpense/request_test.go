package zohoexpense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/api"
	"github.com/tombee/zoho-expense/internal/operation/transport"
	pkgerrors "github.com/tombee/zoho-expense/pkg/errors"
)

func TestAPIRequest_TenantHeader(t *testing.T) {
	tests := []struct {
		name       string
		defaultOrg string
		override   string
		want       string
	}{
		{name: "override wins over default", defaultOrg: "111", override: "222", want: "222"},
		{name: "override without default", override: "222", want: "222"},
		{name: "default only", defaultOrg: "111", want: "111"},
		{name: "neither", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &recordingTransport{responses: []*transport.Response{
				jsonResponse(t, map[string]interface{}{"code": 0}),
			}}
			c := newTestIntegration(t, tr, map[string]string{"organization_id": tt.defaultOrg})

			_, _, err := c.apiRequest(context.Background(), apiCall{
				Method:         http.MethodGet,
				Endpoint:       "/organizations",
				OrganizationID: tt.override,
			})
			require.NoError(t, err)

			got, ok := tr.last(t).Headers[OrganizationHeader]
			if tt.want == "" {
				assert.False(t, ok, "tenant header must be omitted")
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIRequest_OmitsEmptyBodyAndQuery(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		jsonResponse(t, map[string]interface{}{"code": 0}),
	}}
	c := newTestIntegration(t, tr, nil)

	_, _, err := c.apiRequest(context.Background(), apiCall{
		Method:   http.MethodPost,
		Endpoint: "/expensereports/{reportId}/submit",
		PathParams: map[string]string{
			"reportId": "R1",
		},
		Body:  map[string]interface{}{},
		Query: map[string]interface{}{},
	})
	require.NoError(t, err)

	req := tr.last(t)
	assert.Nil(t, req.Body)
	assert.Equal(t, "https://www.zohoapis.com/expense/v1/expensereports/R1/submit", req.URL)
}

func TestAPIRequest_ApplicationError(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		jsonResponse(t, map[string]interface{}{"code": 1001, "message": "Invalid"}),
	}}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "expense.get", map[string]interface{}{"expenseId": "E1"})
	require.Error(t, err)
	assert.Equal(t, "Invalid", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindApplication, apiErr.Kind)
	assert.Equal(t, "1001", apiErr.Code)
	assert.Equal(t, 200, apiErr.StatusCode)
	assert.True(t, IsApplicationError(err))

	uv, ok := pkgerrors.AsUserVisible(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid", uv.UserMessage())
}

func TestAPIRequest_MissingCodeIsSuccess(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		jsonResponse(t, map[string]interface{}{"organizations": []interface{}{}}),
	}}
	c := newTestIntegration(t, tr, nil)

	body, _, err := c.apiRequest(context.Background(), apiCall{Method: http.MethodGet, Endpoint: "/organizations"})
	require.NoError(t, err)
	assert.Contains(t, body, "organizations")
}

func TestAPIRequest_StringCode(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		jsonResponse(t, map[string]interface{}{"code": "0"}),
	}}
	c := newTestIntegration(t, tr, nil)

	_, _, err := c.apiRequest(context.Background(), apiCall{Method: http.MethodGet, Endpoint: "/organizations"})
	assert.NoError(t, err)
}

func TestAPIRequest_TransportError(t *testing.T) {
	cause := &transport.TransportError{
		Type:       transport.ErrorTypeAuth,
		StatusCode: 401,
		Message:    "You are not authorized to perform this operation",
	}
	tr := &recordingTransport{err: cause}
	c := newTestIntegration(t, tr, nil)

	_, err := c.Execute(context.Background(), "user.get", map[string]interface{}{"userId": "U1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, operation.ErrorTypeAuth, apiErr.Type)
	assert.Equal(t, "You are not authorized to perform this operation", apiErr.UserMessage())
	assert.NotEmpty(t, apiErr.Suggestion())
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsApplicationError(err))
}

func TestAPIRequest_UnparseableBody(t *testing.T) {
	tr := &recordingTransport{responses: []*transport.Response{
		{StatusCode: 200, Body: []byte("<html>")},
	}}
	c := newTestIntegration(t, tr, nil)

	_, _, err := c.apiRequest(context.Background(), apiCall{Method: http.MethodGet, Endpoint: "/organizations"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestAPIRequest_OAuth2TransportEndToEnd(t *testing.T) {
	var gotAuth, gotOrg, gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get(OrganizationHeader)
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"success","trip":{"trip_id":"T1"}}`))
	}))
	defer server.Close()

	cred := Credential{AccessToken: "static-token", OrganizationID: "999"}
	tr, err := transport.NewOAuth2Transport(cred.TransportConfig(server.Client()))
	require.NoError(t, err)

	conn, err := NewZohoExpenseIntegration(&api.ProviderConfig{
		Transport:      tr,
		BaseURL:        server.URL,
		AdditionalAuth: map[string]string{"organization_id": cred.OrganizationID},
	})
	require.NoError(t, err)

	result, err := conn.Execute(context.Background(), "trip.create", map[string]interface{}{
		"tripName":  "Offsite",
		"startDate": "2024-03-15T10:30:00Z",
		"endDate":   "2024-03-18T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer static-token", gotAuth)
	assert.Equal(t, "999", gotOrg)
	assert.Equal(t, "/expense/v1/trips", gotPath)
	assert.Equal(t, "2024-03-15", gotBody["start_date"])
	assert.Equal(t, map[string]interface{}{"trip_id": "T1"}, result.Response)
}

func TestUnwrap(t *testing.T) {
	body := map[string]interface{}{"expense": map[string]interface{}{"id": "1"}}
	assert.Equal(t, map[string]interface{}{"id": "1"}, unwrap(body, "expense"))

	raw := map[string]interface{}{"code": float64(0)}
	assert.Equal(t, raw, unwrap(raw, "expense"))

	withNull := map[string]interface{}{"expense": nil}
	assert.Equal(t, withNull, unwrap(withNull, "expense"))
}
