package models

import "time"

// EventStatus is the provider-reported lifecycle state of an event.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusLive     EventStatus = "live"
	StatusFinished EventStatus = "finished"
)

// ParseStatus maps a provider status string to an EventStatus.
// Unknown or empty values default to upcoming.
func ParseStatus(s string) EventStatus {
	switch EventStatus(normalizeToken(s)) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	default:
		return StatusUpcoming
	}
}

// StreamLink is one watchable source for an event.
// URI is opaque and never rewritten.
type StreamLink struct {
	Label        string  `json:"label"`
	RegionCode   string  `json:"region_code"`
	URI          string  `json:"uri"`
	PriorityHint float64 `json:"priority_hint,omitempty"`
}

// RawEvent is one event as reported by one provider, already mapped to the
// common shape. Created fresh on every fetch and discarded after folding.
type RawEvent struct {
	SourceCategory    string       `json:"source_category"`
	CanonicalCategory string       `json:"canonical_category"`
	HomeName          string       `json:"home_name"`
	AwayName          string       `json:"away_name"`
	StartUTC          time.Time    `json:"start_utc"` // minute precision, UTC
	Status            EventStatus  `json:"status"`
	Streams           []StreamLink `json:"streams"`
	ProviderTag       string       `json:"provider_tag"`
	NativeID          string       `json:"native_id,omitempty"`
	LogoURL           string       `json:"logo_url,omitempty"`
}

// CanonicalEvent is the retained, deduplicated record: at most one exists per
// real-world match at any time in the store.
type CanonicalEvent struct {
	ID                string       `json:"id"`
	SourceCategory    string       `json:"source_category"`
	CanonicalCategory string       `json:"canonical_category"`
	HomeName          string       `json:"home_name"`
	AwayName          string       `json:"away_name"`
	StartUTC          time.Time    `json:"start_utc"`
	Status            EventStatus  `json:"status"`
	Streams           []StreamLink `json:"streams"`
	ProviderTag       string       `json:"provider_tag"`
	NativeID          string       `json:"native_id,omitempty"`
	LogoURL           string       `json:"logo_url,omitempty"`
	LastSeenRun       time.Time    `json:"last_seen_run"` // diagnostics only, never drives eviction
}

// IsLive reports whether the event is in play right now.
func (e CanonicalEvent) IsLive() bool { return e.Status == StatusLive }

// Canonical converts a folded RawEvent into its retained form.
// The id is confirmed or computed by the store on upsert.
func (e RawEvent) Canonical() CanonicalEvent {
	return CanonicalEvent{
		SourceCategory:    e.SourceCategory,
		CanonicalCategory: e.CanonicalCategory,
		HomeName:          e.HomeName,
		AwayName:          e.AwayName,
		StartUTC:          e.StartUTC,
		Status:            e.Status,
		Streams:           e.Streams,
		ProviderTag:       e.ProviderTag,
		NativeID:          e.NativeID,
		LogoURL:           e.LogoURL,
	}
}
