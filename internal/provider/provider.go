// Package provider defines the boundary between external feeds and the rest
// of the pipeline: an adapter turns one provider's native payload into the
// common raw-event shape and never lets a failure escape past itself.
package provider

import (
	"context"

	"github.com/puigmarti/directesport/internal/pkg/models"
)

// Provider is one external feed adapter.
type Provider interface {
	// Name returns the provider tag used for traceability and logging.
	Name() string

	// Fetch produces the provider's current events. It must not panic or
	// return a partial Result on failure: any transport, HTTP or parse
	// problem degrades to an empty event list with the cause recorded on
	// the Result.
	Fetch(ctx context.Context) Result
}

// Result is one fetch outcome with its diagnostics. An empty event list can
// mean three different things — no endpoint configured, a failed fetch, or a
// genuinely empty feed — and consumers need to tell them apart.
type Result struct {
	Provider string
	Events   []models.RawEvent

	// Skipped is set when no endpoint is configured for this provider.
	Skipped bool
	// Err records a fetch or parse failure. Never set together with Skipped.
	Err error
	// HTTPStatus is the non-200 status that caused Err, when applicable.
	HTTPStatus int
	// Dropped counts per-record drops by reason (e.g. "bad_timestamp",
	// "unmapped_category").
	Dropped map[string]int
}

// Drop records one per-record drop reason.
func (r *Result) Drop(reason string) {
	if r.Dropped == nil {
		r.Dropped = make(map[string]int)
	}
	r.Dropped[reason]++
}

// DroppedTotal sums all per-record drops.
func (r *Result) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}
