package operation

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for item metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "continued"
)

var (
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zoho_expense_api_requests_total",
			Help: "Total Zoho Expense API requests by HTTP method and outcome status",
		},
		[]string{"method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zoho_expense_api_request_duration_seconds",
			Help:    "Zoho Expense API request latency by HTTP method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	pagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zoho_expense_pages_fetched_total",
			Help: "Total pages fetched by paginated list calls, by endpoint",
		},
		[]string{"endpoint"},
	)

	itemsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zoho_expense_items_total",
			Help: "Total input items processed by connector, operation and outcome",
		},
		[]string{"connector", "operation", "outcome"},
	)
)

// StatusLabel renders an HTTP status for the status label. Zero means the
// request never produced a response.
func StatusLabel(statusCode int) string {
	if statusCode == 0 {
		return "error"
	}
	return strconv.Itoa(statusCode)
}

// RecordAPIRequest records one API request and its latency.
// status is an HTTP status code string, "error" for transport failures, or
// "application_error" for a non-zero envelope code.
func RecordAPIRequest(method, status string, duration time.Duration) {
	apiRequests.WithLabelValues(method, status).Inc()
	apiRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordPageFetched increments the page counter for a paginated endpoint.
func RecordPageFetched(endpoint string) {
	pagesFetched.WithLabelValues(endpoint).Inc()
}

// RecordItem records the outcome of one input item.
func RecordItem(connector, operation, outcome string) {
	itemsProcessed.WithLabelValues(connector, operation, outcome).Inc()
}
