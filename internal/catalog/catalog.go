// Package catalog arranges the retained canonical events for presentation:
// category groups in display order, events by start time, stream links by
// region priority. It only reads — the store owns the data.
package catalog

import (
	"sort"

	"github.com/puigmarti/directesport/internal/pkg/models"
)

// DefaultDisplayPriority lists categories shown before everything else;
// remaining categories follow in lexicographic order.
var DefaultDisplayPriority = []string{"Soccer", "Basketball", "Tennis"}

// DefaultPreferredRegions ranks stream regions: earlier codes sort first.
// Codes not listed (including the PPV sentinel) tie below all of them, in
// original append order.
var DefaultPreferredRegions = []string{"es", "mx", "ar", "gb", "uk", "us"}

// Options configure grouping and sorting.
type Options struct {
	DisplayPriority  []string
	PreferredRegions []string
}

func (o Options) withDefaults() Options {
	if o.DisplayPriority == nil {
		o.DisplayPriority = DefaultDisplayPriority
	}
	if o.PreferredRegions == nil {
		o.PreferredRegions = DefaultPreferredRegions
	}
	return o
}

// Group is one category section of the page.
type Group struct {
	Category string
	Events   []models.CanonicalEvent
}

// Catalog is the read-only structure the renderer consumes.
type Catalog struct {
	Groups []Group
}

// Empty reports whether there is nothing to show.
func (c Catalog) Empty() bool { return len(c.Groups) == 0 }

// EventCount counts all events across groups.
func (c Catalog) EventCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Events)
	}
	return n
}

// Build groups and sorts the retained mapping.
func Build(events map[string]models.CanonicalEvent, opts Options) Catalog {
	opts = opts.withDefaults()

	byCategory := make(map[string][]models.CanonicalEvent)
	for _, ev := range events {
		ev.Streams = sortStreams(ev.Streams, opts.PreferredRegions)
		byCategory[ev.CanonicalCategory] = append(byCategory[ev.CanonicalCategory], ev)
	}

	priority := make(map[string]int, len(opts.DisplayPriority))
	for i, cat := range opts.DisplayPriority {
		priority[cat] = i
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		pi, iOK := priority[categories[i]]
		pj, jOK := priority[categories[j]]
		switch {
		case iOK && jOK:
			return pi < pj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return categories[i] < categories[j]
		}
	})

	var c Catalog
	for _, cat := range categories {
		evs := byCategory[cat]
		sort.Slice(evs, func(i, j int) bool {
			if !evs[i].StartUTC.Equal(evs[j].StartUTC) {
				return evs[i].StartUTC.Before(evs[j].StartUTC)
			}
			return evs[i].ID < evs[j].ID // deterministic order for equal starts
		})
		c.Groups = append(c.Groups, Group{Category: cat, Events: evs})
	}
	return c
}

// sortStreams stable-sorts links so preferred regions come first in their
// configured order; everything else keeps its original append order behind
// them.
func sortStreams(streams []models.StreamLink, preferred []string) []models.StreamLink {
	if len(streams) < 2 {
		return streams
	}
	rank := make(map[string]int, len(preferred))
	for i, code := range preferred {
		rank[code] = i
	}
	unranked := len(preferred)

	out := make([]models.StreamLink, len(streams))
	copy(out, streams)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank[out[i].RegionCode]
		rj, jOK := rank[out[j].RegionCode]
		if !iOK {
			ri = unranked
		}
		if !jOK {
			rj = unranked
		}
		return ri < rj
	})
	return out
}
