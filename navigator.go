package navigator

import (
	"context"
	"log"
	"time"

	"github.com/helsinki-transit/navigator/config"
	"github.com/helsinki-transit/navigator/fusion"
	"github.com/helsinki-transit/navigator/gtfs"
	"github.com/helsinki-transit/navigator/gtfsrt"
	"github.com/helsinki-transit/navigator/poi"
	"github.com/helsinki-transit/navigator/search"
)

// App wires the fusion loop and the search engine behind the consumer API:
// GetSnapshot, Search and Reload. The two subsystems share no lock, so a
// blocking feed fetch never stalls a search query or vice versa. The loop
// holds the live schedule index; Reload hands it a fresh one via SwapIndex.
type App struct {
	cfg    config.AppConfig
	loop   *fusion.Loop
	engine *search.Engine
	pois   poi.Source
}

// NewApp builds the application from configuration. The static schedule
// index is loaded eagerly; a missing table degrades to pass-through labels
// rather than failing startup.
func NewApp(cfg config.AppConfig, embedder search.Embedder, pois poi.Source) *App {
	idx := gtfs.Load(cfg.GTFS)
	client := gtfsrt.NewClient(cfg.Feed.URL, cfg.Feed.SubscriptionKey,
		time.Duration(cfg.Feed.TimeoutMS)*time.Millisecond)
	return &App{
		cfg:    cfg,
		loop:   fusion.NewLoop(client, idx, time.Duration(cfg.Feed.PollIntervalMS)*time.Millisecond),
		engine: search.NewEngine(embedder, cfg.Search.EmbedModel, cfg.Search.CachePath),
		pois:   pois,
	}
}

// RunLoop polls the feed until ctx is cancelled.
func (a *App) RunLoop(ctx context.Context) {
	a.loop.Run(ctx)
}

// TickOnce performs a single fetch-decode-reconcile cycle. Used by the
// oneshot CLI mode.
func (a *App) TickOnce(ctx context.Context) error {
	return a.loop.Tick(ctx)
}

// GetSnapshot returns the latest reconciled vehicle snapshot. Never blocks.
func (a *App) GetSnapshot() *fusion.Snapshot {
	return a.loop.Latest()
}

// Search runs a semantic POI query. topK < 1 falls back to the configured
// default. An unfit index yields an empty result, not an error.
func (a *App) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	if topK < 1 {
		topK = a.cfg.Search.DefaultTopK
	}
	return a.engine.Search(ctx, query, topK)
}

// IsIndexed reports whether the search engine holds a usable index.
func (a *App) IsIndexed() bool {
	return a.engine.IsIndexed()
}

// InitSearch restores the persisted embedding cache, or fits a fresh index
// from the POI source when no usable index results. An empty restored cache
// does not satisfy the gate: the POI source may simply not have been
// populated yet when it was written.
func (a *App) InitSearch(ctx context.Context) error {
	if err := a.engine.LoadCache(); err == nil {
		log.Printf("search: restored embedding cache")
	} else {
		log.Printf("search: no usable embedding cache: %v", err)
	}
	if a.engine.IsIndexed() {
		return nil
	}
	if a.pois == nil {
		log.Printf("search: no POI source configured, search stays empty")
		return nil
	}
	pois, err := a.pois.FetchAll(ctx)
	if err != nil {
		return err
	}
	stats, err := a.engine.FitIndex(ctx, pois, "description")
	if err != nil {
		return err
	}
	log.Printf("search: indexed %d pois (dim %d)", stats.POIs, stats.Dimension)
	return nil
}

// Reload rebuilds the static schedule index and re-fits the search index.
// Both rebuilds happen off to the side and swap in atomically; readers keep
// the old data until the new data is complete.
func (a *App) Reload(ctx context.Context) error {
	idx := gtfs.Load(a.cfg.GTFS)
	a.loop.SwapIndex(idx)

	if a.pois == nil {
		return nil
	}
	pois, err := a.pois.FetchAll(ctx)
	if err != nil {
		return err
	}
	stats, err := a.engine.FitIndex(ctx, pois, "description")
	if err != nil {
		return err
	}
	log.Printf("reload: %d routes, %d trips, %d pois",
		idx.RouteCount(), idx.TripCount(), stats.POIs)
	return nil
}
