package ppvland

import "encoding/json"

// The feed is a list of category groups, each holding scheduled streams:
// { "streams": [ { category_name, streams: [ {id, name, starts_at, tag,
// iframe} ] } ] }. starts_at is unix seconds; name is a combined
// "Home vs Away"-style string.

type feedResponse struct {
	Streams []categoryGroup `json:"streams"`
}

type categoryGroup struct {
	CategoryName string       `json:"category_name"`
	Streams      []feedStream `json:"streams"`
}

type feedStream struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	StartsAt int64       `json:"starts_at"`
	Tag      string      `json:"tag"`
	Iframe   string      `json:"iframe"`
}
