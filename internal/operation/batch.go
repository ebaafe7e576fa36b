package operation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ItemResult is the outcome of running one operation against one input item.
type ItemResult struct {
	// Index is the zero-based position of the input item
	Index int

	// Records holds the output records on success
	Records []interface{}

	// Error holds the failure message when the item failed and
	// continue-on-failure was set
	Error string
}

// ItemError reports the input item that aborted a run.
type ItemError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// RunOptions controls RunItems.
type RunOptions struct {
	// ContinueOnFail records a failed item as {"error": msg} and moves on
	// instead of aborting the run
	ContinueOnFail bool

	// Logger receives per-item progress (optional)
	Logger *slog.Logger
}

// RunItems executes operation once per input item, strictly in order.
//
// On success the item's response is flattened into records (a list yields one
// record per element). On failure, with ContinueOnFail set the item yields a
// single {"error": msg} record and the loop continues; otherwise the results
// gathered so far are returned together with an *ItemError for the failing item.
func RunItems(ctx context.Context, c Connector, operation string, items []map[string]interface{}, opts RunOptions) ([]ItemResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]ItemResult, 0, len(items))
	for i, inputs := range items {
		if err := ctx.Err(); err != nil {
			return results, &ItemError{Index: i, Err: err}
		}

		start := time.Now()
		result, err := c.Execute(ctx, operation, inputs)
		duration := time.Since(start)

		if err != nil {
			if !opts.ContinueOnFail {
				RecordItem(c.Name(), operation, OutcomeFailed)
				logger.Error("item failed",
					slog.Int("item", i),
					slog.Int64("duration_ms", duration.Milliseconds()),
					slog.Any("error", err))
				return results, &ItemError{Index: i, Err: err}
			}

			RecordItem(c.Name(), operation, OutcomeSkipped)
			logger.Warn("item failed, continuing",
				slog.Int("item", i),
				slog.Int64("duration_ms", duration.Milliseconds()),
				slog.Any("error", err))
			results = append(results, ItemResult{
				Index:   i,
				Error:   err.Error(),
				Records: []interface{}{map[string]interface{}{"error": err.Error()}},
			})
			continue
		}

		RecordItem(c.Name(), operation, OutcomeSuccess)
		records := result.Records()
		logger.Debug("item completed",
			slog.Int("item", i),
			slog.Int("records", len(records)),
			slog.Int64("duration_ms", duration.Milliseconds()))
		results = append(results, ItemResult{Index: i, Records: records})
	}

	return results, nil
}

// FlattenRecords concatenates the records of every item in order.
func FlattenRecords(results []ItemResult) []interface{} {
	out := make([]interface{}, 0, len(results))
	for _, r := range results {
		out = append(out, r.Records...)
	}
	return out
}
