package ppvland

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `{
  "streams": [
    {
      "category_name": "Football",
      "streams": [
        {"id": 101, "name": "Real Madrid vs. Barcelona", "starts_at": 1773172800, "tag": "El Clasico", "iframe": "http://ppv/101"},
        {"id": 102, "name": "Arsenal v Chelsea", "starts_at": 1773176400, "iframe": "http://ppv/102"},
        {"id": 103, "name": "Juventus - Inter", "starts_at": 1773180000, "iframe": "http://ppv/103"},
        {"id": 104, "name": "WWE Monday Night Raw", "starts_at": 1773180000, "iframe": "http://ppv/104"},
        {"id": 105, "name": "Stale Fixture", "starts_at": 0, "iframe": "http://ppv/105"}
      ]
    },
    {
      "category_name": "Chess",
      "streams": [
        {"id": 200, "name": "Carlsen vs. Nakamura", "starts_at": 1773172800, "iframe": "http://ppv/200"}
      ]
    }
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second, "", nil)
}

func TestFetch_ParsesFeed(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	res := p.Fetch(context.Background())
	if res.Err != nil {
		t.Fatalf("fetch: %v", res.Err)
	}
	if len(res.Events) != 4 {
		t.Fatalf("events = %d, want 4", len(res.Events))
	}
	if res.Dropped["unmapped_category"] != 1 {
		t.Errorf("unmapped_category drops = %d, want 1 (Chess is not allow-listed)", res.Dropped["unmapped_category"])
	}
	if res.Dropped["bad_timestamp"] != 1 {
		t.Errorf("bad_timestamp drops = %d, want 1", res.Dropped["bad_timestamp"])
	}

	ev := res.Events[0]
	if ev.HomeName != "Real Madrid" || ev.AwayName != "Barcelona" {
		t.Errorf("vs. split failed: %q / %q", ev.HomeName, ev.AwayName)
	}
	if ev.CanonicalCategory != "Soccer" {
		t.Errorf("category = %q, want Football mapped to Soccer", ev.CanonicalCategory)
	}
	if ev.NativeID != "ppvland-101" {
		t.Errorf("native id = %q", ev.NativeID)
	}
	wantStart := time.Unix(1773172800, 0).UTC()
	if !ev.StartUTC.Equal(wantStart) {
		t.Errorf("start = %v, want %v", ev.StartUTC, wantStart)
	}
	if len(ev.Streams) != 1 || ev.Streams[0].RegionCode != RegionSentinel {
		t.Errorf("stream link wrong: %+v", ev.Streams)
	}
	if ev.Streams[0].Label != "El Clasico" {
		t.Errorf("label = %q, want tag preferred", ev.Streams[0].Label)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input      string
		home, away string
	}{
		{"Real Madrid vs. Barcelona", "Real Madrid", "Barcelona"},
		{"Arsenal v Chelsea", "Arsenal", "Chelsea"},
		{"Juventus - Inter", "Juventus", "Inter"},
		// "vs." is tried before " v ", so the first delimiter wins.
		{"A vs. B v C", "A", "B v C"},
		{"WWE Monday Night Raw", "WWE Monday Night Raw", "Unknown"},
		{"", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		home, away := splitName(tt.input)
		if home != tt.home || away != tt.away {
			t.Errorf("splitName(%q) = %q / %q, want %q / %q", tt.input, home, away, tt.home, tt.away)
		}
	}
}

func TestFetch_HTTPFailureYieldsEmpty(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	})

	res := p.Fetch(context.Background())
	if len(res.Events) != 0 || res.Err == nil || res.HTTPStatus != http.StatusBadGateway {
		t.Errorf("HTTP failure must degrade to empty with diagnostics, got %+v", res)
	}
}

func TestFetch_NoEndpointSkips(t *testing.T) {
	p := New("", time.Second, "", nil)
	res := p.Fetch(context.Background())
	if !res.Skipped || len(res.Events) != 0 {
		t.Errorf("unconfigured adapter must skip cleanly, got %+v", res)
	}
}
