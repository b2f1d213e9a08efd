// Package ppvland adapts the PPV-style feed (Shape B): category groups of
// scheduled streams with a unix start timestamp and a combined
// "Home vs Away"-style name.
package ppvland

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/puigmarti/directesport/internal/pkg/models"
	"github.com/puigmarti/directesport/internal/provider"
)

const providerName = "ppvland"

const unknownName = "Unknown"

// RegionSentinel marks PPV stream links that have no broadcast region.
const RegionSentinel = "ppv"

// nameDelimiters are tried in order; the first one found splits the combined
// name into home and away.
var nameDelimiters = []string{" vs. ", " v ", " - "}

// DefaultCategories is the category allow-list: source label → canonical
// label. Source categories absent from the table are dropped entirely — a
// deliberate allow-list, not a defaulting bug.
var DefaultCategories = map[string]string{
	"Soccer":            "Soccer",
	"Football":          "Soccer",
	"Basketball":        "Basketball",
	"American Football": "American Football",
	"Ice Hockey":        "Ice Hockey",
	"Baseball":          "Baseball",
	"Tennis":            "Tennis",
	"Boxing":            "Boxing",
	"MMA":               "MMA",
	"Wrestling":         "Wrestling",
	"Motorsports":       "Motorsports",
	"Cricket":           "Cricket",
	"Darts":             "Darts",
}

// Provider implements provider.Provider for the Shape B feed.
type Provider struct {
	client     *Client
	categories map[string]string
}

// New builds the adapter. An empty endpoint is allowed: Fetch then yields an
// empty result marked Skipped. A nil categories map uses DefaultCategories.
func New(endpoint string, timeout time.Duration, userAgent string, categories map[string]string) *Provider {
	p := &Provider{categories: categories}
	if p.categories == nil {
		p.categories = DefaultCategories
	}
	if endpoint != "" {
		p.client = NewClient(endpoint, timeout, userAgent)
	}
	return p
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) Fetch(ctx context.Context) provider.Result {
	res := provider.Result{Provider: providerName}

	if p.client == nil {
		slog.Warn("ppvland: no endpoint configured, yielding no events")
		res.Skipped = true
		return res
	}

	body, err := p.client.Get(ctx)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			res.HTTPStatus = se.code
		}
		res.Err = err
		return res
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		res.Err = err
		return res
	}

	for _, group := range feed.Streams {
		canonical, ok := p.categories[group.CategoryName]
		if !ok {
			for range group.Streams {
				res.Drop("unmapped_category")
			}
			continue
		}
		for _, fs := range group.Streams {
			ev, dropReason := toRawEvent(group.CategoryName, canonical, fs)
			if dropReason != "" {
				res.Drop(dropReason)
				continue
			}
			res.Events = append(res.Events, ev)
		}
	}
	return res
}

func toRawEvent(source, canonical string, fs feedStream) (models.RawEvent, string) {
	if fs.StartsAt <= 0 {
		return models.RawEvent{}, "bad_timestamp"
	}
	start := time.Unix(fs.StartsAt, 0).UTC().Truncate(time.Minute)

	home, away := splitName(fs.Name)

	label := strings.TrimSpace(fs.Tag)
	if label == "" {
		label = strings.TrimSpace(fs.Name)
	}

	var streams []models.StreamLink
	if fs.Iframe != "" {
		streams = []models.StreamLink{{
			Label:      label,
			RegionCode: RegionSentinel,
			URI:        fs.Iframe,
		}}
	}

	nativeID := ""
	if fs.ID.String() != "" {
		nativeID = providerName + "-" + fs.ID.String()
	}

	return models.RawEvent{
		SourceCategory:    source,
		CanonicalCategory: canonical,
		HomeName:          home,
		AwayName:          away,
		StartUTC:          start,
		Status:            models.StatusUpcoming, // the feed carries no status
		Streams:           streams,
		ProviderTag:       providerName,
		NativeID:          nativeID,
	}, ""
}

// splitName splits a combined "Home vs Away"-style name on the first
// matching delimiter. When none matches the whole string becomes the home
// name and the away name stays unknown.
func splitName(name string) (home, away string) {
	name = strings.TrimSpace(name)
	for _, d := range nameDelimiters {
		if i := strings.Index(name, d); i >= 0 {
			home = strings.TrimSpace(name[:i])
			away = strings.TrimSpace(name[i+len(d):])
			if home == "" {
				home = unknownName
			}
			if away == "" {
				away = unknownName
			}
			return home, away
		}
	}
	if name == "" {
		return unknownName, unknownName
	}
	return name, unknownName
}
