package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/puigmarti/directesport/internal/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "events.json"), RetentionPolicy{})
}

func upcoming(cat, home, away string, start time.Time) models.RawEvent {
	return models.RawEvent{
		CanonicalCategory: cat,
		HomeName:          home,
		AwayName:          away,
		StartUTC:          start,
		Status:            models.StatusUpcoming,
		Streams:           []models.StreamLink{{Label: "CH", URI: "http://ch"}},
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	pool := []models.RawEvent{
		upcoming("Soccer", "Real Madrid", "Barcelona", now.Add(time.Hour)),
		upcoming("Basketball", "Lakers", "Celtics", now.Add(2*time.Hour)),
	}

	first := s.Upsert(pool, now)
	if first.Inserted != 2 {
		t.Fatalf("first upsert inserted = %d, want 2", first.Inserted)
	}

	second := s.Upsert(pool, now)
	if second.Inserted != 0 || second.Updated != 2 {
		t.Errorf("second upsert = %+v, want 0 inserts / 2 updates", second)
	}
	if s.Len() != 2 {
		t.Errorf("store size = %d, want 2 (no duplicate entries)", s.Len())
	}
	for _, ev := range s.Events() {
		if len(ev.Streams) != 1 {
			t.Errorf("streams = %d, want 1 (repeated upsert must not grow streams)", len(ev.Streams))
		}
	}
}

func TestUpsert_NativeIDKept(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	ev := upcoming("Soccer", "Girona", "Osasuna", now.Add(time.Hour))
	ev.NativeID = "ppv-4711"
	s.Upsert([]models.RawEvent{ev}, now)

	if _, ok := s.Events()["ppv-4711"]; !ok {
		t.Fatalf("native id not kept verbatim, have %v", s.Events())
	}
}

func TestUpsert_FinishedRemovedImmediately(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	start := now.Add(-30 * time.Minute)

	live := upcoming("Soccer", "Betis", "Celta", start)
	live.Status = models.StatusLive
	s.Upsert([]models.RawEvent{live}, now)
	if s.Len() != 1 {
		t.Fatalf("store size = %d, want 1", s.Len())
	}

	done := live
	done.Status = models.StatusFinished
	stats := s.Upsert([]models.RawEvent{done}, now)
	if stats.RemovedFinished != 1 {
		t.Errorf("RemovedFinished = %d, want 1", stats.RemovedFinished)
	}
	if s.Len() != 0 {
		t.Errorf("finished event still present after upsert")
	}
}

func TestEvict(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	policy := RetentionPolicy{
		Default:     3 * time.Hour,
		PerCategory: map[string]time.Duration{"Cricket": 210 * time.Minute},
	}

	tests := []struct {
		name     string
		status   models.EventStatus
		category string
		start    time.Time
		evicted  bool
	}{
		{"finished evicted regardless of age", models.StatusFinished, "Soccer", now.Add(-time.Minute), true},
		{"stale upcoming evicted by age rule", models.StatusUpcoming, "Soccer", now.Add(-6 * time.Hour), true},
		{"slightly within window kept", models.StatusLive, "Soccer", now.Add(-170 * time.Minute), false},
		{"just past window evicted", models.StatusLive, "Soccer", now.Add(-181 * time.Minute), true},
		{"cricket gets the longer window", models.StatusLive, "Cricket", now.Add(-200 * time.Minute), false},
		{"upcoming event kept", models.StatusUpcoming, "Soccer", now.Add(2 * time.Hour), false},
		{"implausibly far future evicted", models.StatusUpcoming, "Soccer", now.Add(30 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), "events.json"), policy)
			ev := upcoming(tt.category, "Home", "Away", tt.start)
			ev.Status = tt.status
			upStats := s.Upsert([]models.RawEvent{ev}, now)

			// Finished events never even enter the store.
			if tt.status == models.StatusFinished {
				if upStats.Inserted != 0 || s.Len() != 0 {
					t.Fatalf("finished event was inserted")
				}
				return
			}

			s.Evict(now)
			if present := s.Len() == 1; present == tt.evicted {
				t.Errorf("present = %v, evicted expectation = %v", present, tt.evicted)
			}
		})
	}
}

func TestPersistLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	s := New(path, RetentionPolicy{})
	s.Upsert([]models.RawEvent{
		upcoming("Soccer", "Real Madrid", "Barcelona", now.Add(time.Hour)),
		upcoming("Tennis", "Alcaraz", "Sinner", now.Add(3*time.Hour)),
	}, now)
	if err := s.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	reloaded := New(path, RetentionPolicy{})
	if src := reloaded.Load(); src != LoadedPrimary {
		t.Fatalf("load source = %s, want primary", src)
	}

	want := s.Events()
	got := reloaded.Events()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d events, want %d", len(got), len(want))
	}
	for id, w := range want {
		g, ok := got[id]
		if !ok {
			t.Fatalf("missing id %s after reload", id)
		}
		if g.HomeName != w.HomeName || g.AwayName != w.AwayName ||
			!g.StartUTC.Equal(w.StartUTC) || g.Status != w.Status ||
			len(g.Streams) != len(w.Streams) {
			t.Errorf("reloaded event differs:\n  got  %+v\n  want %+v", g, w)
		}
	}
}

func TestLoad_CorruptPrimaryFallsBackToBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	s := New(path, RetentionPolicy{})
	s.Upsert([]models.RawEvent{upcoming("Soccer", "Girona", "Osasuna", now.Add(time.Hour))}, now)
	if err := s.Persist(); err != nil {
		t.Fatalf("first persist: %v", err)
	}
	// Second persist copies the good snapshot to the backup path.
	if err := s.Persist(); err != nil {
		t.Fatalf("second persist: %v", err)
	}

	if err := os.WriteFile(path, []byte("{ truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := New(path, RetentionPolicy{})
	if src := reloaded.Load(); src != LoadedBackup {
		t.Fatalf("load source = %s, want backup", src)
	}
	if reloaded.Len() != 1 {
		t.Errorf("backup recovery yielded %d events, want 1", reloaded.Len())
	}
}

func TestLoad_MissingFilesStartEmpty(t *testing.T) {
	s := newTestStore(t)
	if src := s.Load(); src != LoadedEmpty {
		t.Fatalf("load source = %s, want empty", src)
	}
	if s.Len() != 0 {
		t.Errorf("fresh store size = %d, want 0", s.Len())
	}
}

func TestPersist_WritesBackupOfPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	s := New(path, RetentionPolicy{})
	s.Upsert([]models.RawEvent{upcoming("Soccer", "A", "B", now.Add(time.Hour))}, now)
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}
	firstSnapshot, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	s.Upsert([]models.RawEvent{upcoming("Soccer", "C", "D", now.Add(2*time.Hour))}, now)
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(backup) != string(firstSnapshot) {
		t.Errorf("backup does not hold the previous snapshot")
	}
}

func TestReadOnlyRunSkipsPersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	now := time.Now().UTC()

	s := New(path, RetentionPolicy{})
	s.readOnly = true
	s.Upsert([]models.RawEvent{upcoming("Soccer", "A", "B", now.Add(time.Hour))}, now)
	if err := s.Persist(); err != nil {
		t.Fatalf("read-only persist should be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("read-only run wrote the state file")
	}
}
