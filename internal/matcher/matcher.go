// Package matcher decides whether two provider-reported events describe the
// same real-world match and folds newly fetched events into the canonical
// pool being built for the current run.
package matcher

import (
	"time"

	"github.com/puigmarti/directesport/internal/pkg/models"
)

// Defaults for the merge gates. Tunables, not magic literals: the time window
// was tightened from 60 to 45 minutes over earlier revisions, the similarity
// threshold settled at 0.65. Both boundaries are inclusive (exactly 45
// minutes apart merges, ratio exactly 0.65 merges).
const (
	DefaultTimeWindow = 45 * time.Minute
	DefaultThreshold  = 0.65
)

// Options configure the merge gates.
type Options struct {
	TimeWindow time.Duration
	Threshold  float64
}

func (o Options) withDefaults() Options {
	if o.TimeWindow <= 0 {
		o.TimeWindow = DefaultTimeWindow
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// sameEvent applies the three merge gates in order: category equality,
// start-time proximity, then name similarity over the concatenated
// normalized home+away names.
func sameEvent(existing, candidate models.RawEvent, opts Options) bool {
	if existing.CanonicalCategory != candidate.CanonicalCategory {
		return false
	}

	diff := existing.StartUTC.Sub(candidate.StartUTC)
	if diff < 0 {
		diff = -diff
	}
	if diff > opts.TimeWindow {
		return false
	}

	a := models.NormalizeName(existing.HomeName) + models.NormalizeName(existing.AwayName)
	b := models.NormalizeName(candidate.HomeName) + models.NormalizeName(candidate.AwayName)
	return similarity(a, b) >= opts.Threshold
}

// Fold merges ev into pool and returns the updated pool.
//
// Matching is greedy over insertion order: the first pool entry that passes
// all gates receives ev's stream links appended (duplicates tolerated, the
// lists are never deduplicated) and keeps every other field — the provider
// that inserted first wins the event's identity. If no entry matches, ev
// joins the pool as a new event. Callers must fold providers in a fixed,
// configured order to keep merge outcomes reproducible across runs.
func Fold(pool []models.RawEvent, ev models.RawEvent, opts Options) []models.RawEvent {
	opts = opts.withDefaults()
	for i := range pool {
		if sameEvent(pool[i], ev, opts) {
			pool[i].Streams = append(pool[i].Streams, ev.Streams...)
			return pool
		}
	}
	return append(pool, ev)
}

// FoldAll folds a provider's full batch into pool, preserving batch order.
func FoldAll(pool []models.RawEvent, batch []models.RawEvent, opts Options) []models.RawEvent {
	for _, ev := range batch {
		pool = Fold(pool, ev, opts)
	}
	return pool
}
