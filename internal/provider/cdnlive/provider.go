// Package cdnlive adapts the cdn-live style feed (Shape A): a category→list
// mapping where each element is already close to the raw-event shape and the
// provider category maps 1:1 to the canonical category.
package cdnlive

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

const providerName = "cdnlive"

const unknownName = "Unknown"

// Provider implements provider.Provider for the Shape A feed.
type Provider struct {
	client  *Client
	rootKey string
	now     func() time.Time
}

// New builds the adapter. An empty endpoint is allowed: Fetch then yields an
// empty result marked Skipped instead of failing.
func New(endpoint, rootKey string, timeout time.Duration, userAgent string) *Provider {
	p := &Provider{rootKey: rootKey, now: time.Now}
	if endpoint != "" {
		p.client = NewClient(endpoint, timeout, userAgent)
	}
	return p
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) Fetch(ctx context.Context) provider.Result {
	res := provider.Result{Provider: providerName}

	if p.client == nil {
		slog.Warn("cdnlive: no endpoint configured, yielding no events")
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

	categories, ok := feed[p.rootKey]
	if !ok {
		// Root key absent means an empty feed, not a failure.
		slog.Warn("cdnlive: root key missing from response", "root_key", p.rootKey)
		return res
	}

	for category, events := range categories {
		for _, fe := range events {
			ev, dropReason := p.toRawEvent(category, fe)
			if dropReason != "" {
				res.Drop(dropReason)
				continue
			}
			res.Events = append(res.Events, ev)
		}
	}
	return res
}

// toRawEvent maps one feed element, substituting documented defaults for
// missing optional fields. Only an unparsable timestamp drops the record.
func (p *Provider) toRawEvent(category string, fe feedEvent) (models.RawEvent, string) {
	start, err := p.parseStart(fe)
	if err != nil {
		return models.RawEvent{}, "bad_timestamp"
	}

	home := strings.TrimSpace(fe.HomeTeam)
	if home == "" {
		home = unknownName
	}
	away := strings.TrimSpace(fe.AwayTeam)
	if away == "" {
		away = unknownName
	}

	streams := make([]models.StreamLink, 0, len(fe.Channels))
	for _, ch := range fe.Channels {
		streams = append(streams, models.StreamLink{
			Label:        ch.ChannelName,
			RegionCode:   strings.ToLower(strings.TrimSpace(ch.ChannelCode)),
			URI:          ch.URL,
			PriorityHint: ch.Priority,
		})
	}

	return models.RawEvent{
		SourceCategory:    category,
		CanonicalCategory: category, // Shape A categories map 1:1
		HomeName:          home,
		AwayName:          away,
		StartUTC:          start,
		Status:            models.ParseStatus(fe.Status),
		Streams:           streams,
		ProviderTag:       providerName,
		LogoURL:           fe.HomeTeamIMG,
	}, ""
}

// parseStart converts the provider timestamp to the single minute-precision
// UTC representation. "start" carries a full date; "time" is today's clock
// time in UTC.
func (p *Provider) parseStart(fe feedEvent) (time.Time, error) {
	if s := strings.TrimSpace(fe.Start); s != "" {
		t, err := time.Parse("2006-01-02 15:04", s)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC().Truncate(time.Minute), nil
	}

	t, err := time.Parse("15:04", strings.TrimSpace(fe.Time))
	if err != nil {
		return time.Time{}, err
	}
	today := p.now().UTC()
	return time.Date(today.Year(), today.Month(), today.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
