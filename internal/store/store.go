// Package store is the durable memory of canonical events between runs.
// State lives in a flat JSON file (id -> event) with a sibling backup of the
// previous successful snapshot; there is no external database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"

	"github.com/puigmarti/directesport/internal/pkg/models"
)

// Retention defaults. The stale window is per category so long-running sports
// can outlive the general window; the future bound guards against provider
// clock errors that would otherwise park an event in the store forever.
const (
	DefaultRetention   = 3 * time.Hour
	DefaultFutureBound = 24 * time.Hour
)

// RetentionPolicy decides how long an event may stay past its start time.
type RetentionPolicy struct {
	Default     time.Duration
	PerCategory map[string]time.Duration
	FutureBound time.Duration
}

func (p RetentionPolicy) withDefaults() RetentionPolicy {
	if p.Default <= 0 {
		p.Default = DefaultRetention
	}
	if p.FutureBound <= 0 {
		p.FutureBound = DefaultFutureBound
	}
	return p
}

// windowFor returns the retention window for one category.
func (p RetentionPolicy) windowFor(category string) time.Duration {
	if w, ok := p.PerCategory[category]; ok && w > 0 {
		return w
	}
	return p.Default
}

// LoadSource reports where Load got its state from.
type LoadSource string

const (
	LoadedPrimary LoadSource = "primary"
	LoadedBackup  LoadSource = "backup"
	LoadedEmpty   LoadSource = "empty"
)

// UpsertStats summarizes one Upsert pass for diagnostics.
type UpsertStats struct {
	Inserted        int
	Updated         int
	RemovedFinished int
}

// EvictStats summarizes one Evict pass for diagnostics.
type EvictStats struct {
	Finished  int
	Stale     int
	FarFuture int
}

// Store owns the canonical event set between runs. Within a run all methods
// are called from a single goroutine; the advisory file lock only guards
// against a second process instance.
type Store struct {
	path       string
	backupPath string
	policy     RetentionPolicy
	lock       *flock.Flock
	readOnly   bool
	events     map[string]models.CanonicalEvent
}

// New creates a store over path; the backup lives next to it.
func New(path string, policy RetentionPolicy) *Store {
	return &Store{
		path:       path,
		backupPath: path + ".bak",
		policy:     policy.withDefaults(),
		lock:       flock.New(path + ".lock"),
		events:     make(map[string]models.CanonicalEvent),
	}
}

// AcquireLock takes a best-effort advisory lock on the state file. When
// another instance holds it this run degrades to read-only: it still fetches
// and renders, but never persists over the other instance's snapshot.
func (s *Store) AcquireLock() bool {
	locked, err := s.lock.TryLock()
	if err != nil {
		slog.Warn("store: lock attempt failed, continuing read-only", "path", s.lock.Path(), "error", err)
	} else if !locked {
		slog.Warn("store: another instance holds the state lock, continuing read-only", "path", s.lock.Path())
	}
	s.readOnly = err != nil || !locked
	return !s.readOnly
}

// ReleaseLock drops the advisory lock if held.
func (s *Store) ReleaseLock() {
	if !s.readOnly {
		if err := s.lock.Unlock(); err != nil {
			slog.Warn("store: unlock failed", "error", err)
		}
	}
}

// Load reads persisted state. A missing file is a normal first run; a
// corrupted or unreadable primary falls back to the backup snapshot, and if
// that fails too the store starts empty. Load never fails the run.
func (s *Store) Load() LoadSource {
	if err := s.loadFile(s.path); err == nil {
		return LoadedPrimary
	} else if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("store: primary state unreadable, trying backup", "path", s.path, "error", err)
	}

	if err := s.loadFile(s.backupPath); err == nil {
		slog.Info("store: recovered state from backup", "path", s.backupPath, "events", len(s.events))
		return LoadedBackup
	} else if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("store: backup state unreadable, starting empty", "path", s.backupPath, "error", err)
	}

	s.events = make(map[string]models.CanonicalEvent)
	return LoadedEmpty
}

func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	events := make(map[string]models.CanonicalEvent)
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	s.events = events
	return nil
}

// Upsert folds the freshly built pool into the retained set.
//
// Each event's id is the provider-native id when one exists, otherwise the
// deterministic hash of (category, home, away, start) so re-fetching the same
// still-unresolved match lands on the same entry across runs. A finished
// event removes any retained entry under its id and is never re-inserted.
// Upserting the same pool twice yields the same store.
func (s *Store) Upsert(pool []models.RawEvent, now time.Time) UpsertStats {
	var stats UpsertStats
	for _, ev := range pool {
		ce := ev.Canonical()
		ce.ID = ce.NativeID
		if ce.ID == "" {
			ce.ID = models.EventID(ce.CanonicalCategory, ce.HomeName, ce.AwayName, ce.StartUTC)
		}

		if ce.Status == models.StatusFinished {
			if _, ok := s.events[ce.ID]; ok {
				delete(s.events, ce.ID)
				stats.RemovedFinished++
			}
			continue
		}

		ce.LastSeenRun = now.UTC()
		if _, ok := s.events[ce.ID]; ok {
			stats.Updated++
		} else {
			stats.Inserted++
		}
		s.events[ce.ID] = ce
	}
	return stats
}

// Evict removes entries the page should no longer show. The predicate is a
// pure function of (now, status, start, category) — insertion order and
// LastSeenRun never matter.
func (s *Store) Evict(now time.Time) EvictStats {
	var stats EvictStats
	for id, ev := range s.events {
		switch evictReason(now, ev.Status, ev.StartUTC, ev.CanonicalCategory, s.policy) {
		case evictFinished:
			delete(s.events, id)
			stats.Finished++
		case evictStale:
			delete(s.events, id)
			stats.Stale++
		case evictFarFuture:
			delete(s.events, id)
			stats.FarFuture++
		}
	}
	return stats
}

type evictCause int

const (
	evictKeep evictCause = iota
	evictFinished
	evictStale
	evictFarFuture
)

func evictReason(now time.Time, status models.EventStatus, start time.Time, category string, policy RetentionPolicy) evictCause {
	if status == models.StatusFinished {
		return evictFinished
	}
	age := now.Sub(start)
	if age > policy.windowFor(category) {
		return evictStale
	}
	// Implausibly far in the future: a provider clock error, not a fixture.
	if age < -policy.FutureBound {
		return evictFarFuture
	}
	return evictKeep
}

// Persist writes the retained set: previous primary is copied to the backup
// first (best effort — a failed backup never blocks the write), then the new
// snapshot replaces the primary atomically so a reader never observes a
// half-written file.
func (s *Store) Persist() error {
	if s.readOnly {
		slog.Warn("store: read-only run, skipping persist", "events", len(s.events))
		return nil
	}

	if err := copyFile(s.path, s.backupPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("store: backup copy failed, writing anyway", "error", err)
	}

	data, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", s.path, err)
	}
	return nil
}

// Events returns a copy of the retained mapping for the catalog builder.
func (s *Store) Events() map[string]models.CanonicalEvent {
	out := make(map[string]models.CanonicalEvent, len(s.events))
	for id, ev := range s.events {
		out[id] = ev
	}
	return out
}

// Len reports the number of retained events.
func (s *Store) Len() int { return len(s.events) }

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
