// Package app wires the pipeline together: fetch every configured provider,
// fold the results into one pool, reconcile with the retained store, then
// build and render the catalog. One call to Run is one generation pass.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/puigmarti/directesport/internal/catalog"
	"github.com/puigmarti/directesport/internal/matcher"
	"github.com/puigmarti/directesport/internal/notify"
	"github.com/puigmarti/directesport/internal/pkg/config"
	"github.com/puigmarti/directesport/internal/pkg/models"
	"github.com/puigmarti/directesport/internal/provider"
	"github.com/puigmarti/directesport/internal/provider/cdnlive"
	"github.com/puigmarti/directesport/internal/provider/ppvland"
	"github.com/puigmarti/directesport/internal/render"
	"github.com/puigmarti/directesport/internal/store"
)

// App owns everything one generation pass needs.
type App struct {
	cfg       *config.Config
	providers []provider.Provider
	store     *store.Store
	notifier  *notify.TelegramNotifier
	dryRun    bool

	now func() time.Time
}

// New assembles the pipeline from config. Providers appear in the configured
// order; an unknown name in the order list is logged and skipped.
func New(cfg *config.Config, dryRun bool) *App {
	byName := map[string]provider.Provider{
		"cdnlive": cdnlive.New(
			cfg.Providers.CDNLive.URL,
			cfg.Providers.CDNLive.RootKey,
			cfg.Providers.Timeout.Std(),
			cfg.Providers.UserAgent,
		),
		"ppvland": ppvland.New(
			cfg.Providers.PPVLand.URL,
			cfg.Providers.Timeout.Std(),
			cfg.Providers.UserAgent,
			cfg.Providers.PPVLand.Categories,
		),
	}

	var providers []provider.Provider
	for _, name := range cfg.Providers.Order {
		p, ok := byName[name]
		if !ok {
			slog.Warn("Unknown provider in order list, skipping", "provider", name)
			continue
		}
		providers = append(providers, p)
	}

	var notifier *notify.TelegramNotifier
	if !dryRun && cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	return &App{
		cfg:       cfg,
		providers: providers,
		store:     store.New(cfg.State.Path, retentionPolicy(cfg.Retention)),
		notifier:  notifier,
		dryRun:    dryRun,
		now:       time.Now,
	}
}

func retentionPolicy(rc config.RetentionConfig) store.RetentionPolicy {
	perCategory := make(map[string]time.Duration, len(rc.PerCategory))
	for cat, d := range rc.PerCategory {
		perCategory[cat] = d.Std()
	}
	return store.RetentionPolicy{
		Default:     rc.Default.Std(),
		PerCategory: perCategory,
		FutureBound: rc.FutureBound.Std(),
	}
}

// Run executes one generation pass. Provider and persistence failures degrade
// the pass, they never abort it; the only fatal outcome is a render failure.
// An unexpected panic anywhere in the pipeline downgrades to a best-effort
// empty page so the published output is never left half-written or missing.
func (a *App) Run(ctx context.Context) (err error) {
	started := a.now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Run panicked, writing fallback output", "panic", r)
			err = a.renderOutputs(catalog.Catalog{}, started)
		}
	}()

	locked := a.store.AcquireLock()
	defer a.store.ReleaseLock()

	source := a.store.Load()
	slog.Info("State loaded", "source", source, "events", a.store.Len())

	summary := notify.RunSummary{
		StartedAt:      started,
		ProviderEvents: make(map[string]int),
		ProviderErrors: make(map[string]string),
		ReadOnly:       !locked,
	}

	pool := a.fetchAndFold(ctx, &summary)
	summary.MergedEvents = len(pool)

	now := a.now().UTC()
	upserted := a.store.Upsert(pool, now)
	evicted := a.store.Evict(now)
	slog.Info("Store reconciled",
		"inserted", upserted.Inserted,
		"updated", upserted.Updated,
		"removed_finished", upserted.RemovedFinished,
		"evicted_stale", evicted.Stale,
		"evicted_far_future", evicted.FarFuture,
		"retained", a.store.Len())
	summary.StoredEvents = a.store.Len()
	summary.EvictedEvents = evicted.Finished + evicted.Stale + evicted.FarFuture

	if a.dryRun {
		slog.Info("Dry run: skipping persist")
	} else if err := a.store.Persist(); err != nil {
		// Stale state is recoverable on the next run; a missing page is not.
		slog.Error("Persist failed, continuing with render", "error", err)
	}

	cat := catalog.Build(a.store.Events(), catalog.Options{
		DisplayPriority:  a.cfg.Catalog.DisplayPriority,
		PreferredRegions: a.cfg.Catalog.PreferredRegions,
	})
	summary.CatalogGroups = len(cat.Groups)

	if err := a.renderOutputs(cat, started); err != nil {
		return err
	}
	summary.RenderedOutputs = []string{a.cfg.Output.HTMLPath, a.cfg.Output.M3UPath}
	summary.Duration = a.now().Sub(started)

	if a.dryRun {
		slog.Info("Dry run: skipping notification")
	} else if err := a.notifier.SendRunSummary(summary); err != nil {
		slog.Warn("Run summary notification failed", "error", err)
	}

	slog.Info("Run finished",
		"duration", summary.Duration,
		"events", cat.EventCount(),
		"groups", len(cat.Groups))
	return nil
}

// fetchAndFold queries every provider in order and folds each batch into the
// shared pool. The first provider to report an event owns its identity; later
// providers contribute extra stream links.
func (a *App) fetchAndFold(ctx context.Context, summary *notify.RunSummary) []models.RawEvent {
	opts := matcher.Options{
		TimeWindow: a.cfg.Matcher.TimeWindow.Std(),
		Threshold:  a.cfg.Matcher.SimilarityThreshold,
	}

	var pool []models.RawEvent
	for _, p := range a.providers {
		res := p.Fetch(ctx)
		switch {
		case res.Skipped:
			slog.Info("Provider skipped, no endpoint configured", "provider", res.Provider)
			continue
		case res.Err != nil:
			slog.Error("Provider fetch failed",
				"provider", res.Provider,
				"error", res.Err,
				"http_status", res.HTTPStatus)
			summary.ProviderErrors[res.Provider] = res.Err.Error()
			continue
		}

		slog.Info("Provider fetched",
			"provider", res.Provider,
			"events", len(res.Events),
			"dropped", res.DroppedTotal())
		for reason, count := range res.Dropped {
			slog.Debug("Provider dropped records", "provider", res.Provider, "reason", reason, "count", count)
		}
		summary.ProviderEvents[res.Provider] = len(res.Events)

		pool = matcher.FoldAll(pool, res.Events, opts)
	}
	return pool
}

// renderOutputs writes both published artifacts. This is the only place in
// the pipeline whose failure fails the run.
func (a *App) renderOutputs(cat catalog.Catalog, generatedAt time.Time) error {
	if err := render.WriteHTMLFile(a.cfg.Output.HTMLPath, cat, generatedAt); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := render.WriteM3UFile(a.cfg.Output.M3UPath, cat, a.cfg.Output.TimeOffset.Std()); err != nil {
		return fmt.Errorf("render m3u: %w", err)
	}
	return nil
}
