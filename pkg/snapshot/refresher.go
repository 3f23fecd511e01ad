package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/redis"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// MetricsCacheKey is the redis key holding the latest churn metrics.
const MetricsCacheKey = "fern:churn:metrics"

// GridFetcher fetches the raw order grid.
type GridFetcher interface {
	GetValues(ctx context.Context, readRange string) (models.Grid, error)
}

// InteractionLister loads all stored interactions.
type InteractionLister interface {
	ListAll(ctx context.Context) (models.InteractionMap, error)
}

// RefresherConfig holds refresh loop configuration
type RefresherConfig struct {
	OrdersRange string
	Interval    time.Duration
	CacheTTL    time.Duration
}

// Refresher rebuilds the snapshot from the sheet and the interaction store.
type Refresher struct {
	cfg          RefresherConfig
	fetcher      GridFetcher
	interactions InteractionLister
	service      *Service
	emitter      *events.Emitter
	cache        *redis.Client
	logger       ectologger.Logger
}

// NewRefresher creates a new refresher. The emitter and cache are optional.
func NewRefresher(cfg RefresherConfig, fetcher GridFetcher, interactions InteractionLister, service *Service, emitter *events.Emitter, cache *redis.Client, logger ectologger.Logger) *Refresher {
	return &Refresher{
		cfg:          cfg,
		fetcher:      fetcher,
		interactions: interactions,
		service:      service,
		emitter:      emitter,
		cache:        cache,
		logger:       logger,
	}
}

// Refresh rebuilds the snapshot and swaps it in. Event emission and cache
// writes are best effort; a failure there does not fail the refresh.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	ctx, span := tracing.StartSpan(ctx, "snapshot.Refresher.Refresh")
	defer span.End()

	start := time.Now()
	log := r.logger.WithContext(ctx)

	grid, err := r.fetcher.GetValues(ctx, r.cfg.OrdersRange)
	if err != nil {
		metrics.RecordSnapshotRefresh("error", time.Since(start).Seconds())
		log.WithError(err).Error("Failed to fetch order grid")
		return nil, err
	}

	interactionMap, err := r.interactions.ListAll(ctx)
	if err != nil {
		metrics.RecordSnapshotRefresh("error", time.Since(start).Seconds())
		log.WithError(err).Error("Failed to load interactions")
		return nil, err
	}

	previous := r.service.Current()
	snap := Build(grid, interactionMap, time.Now().UTC())
	r.service.Set(snap)

	duration := time.Since(start)
	r.recordMetrics(grid, snap, duration)

	log.WithFields(map[string]any{
		"orders":    len(snap.Orders),
		"companies": len(snap.Tiers),
		"duration":  duration,
	}).Info("Snapshot refreshed")

	r.emit(ctx, previous, snap, duration)
	r.cacheMetrics(ctx, snap)

	return snap, nil
}

// Run refreshes immediately and then on every tick until the context ends.
func (r *Refresher) Run(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Initial snapshot refresh failed")
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("Scheduled snapshot refresh failed")
			}
		}
	}
}

func (r *Refresher) recordMetrics(grid models.Grid, snap *Snapshot, duration time.Duration) {
	metrics.RecordSnapshotRefresh("success", duration.Seconds())
	metrics.SnapshotOrders.Set(float64(len(snap.Orders)))
	metrics.SnapshotCompanies.Set(float64(len(snap.Tiers)))
	metrics.PlatformSwitchers.Set(float64(snap.Metrics.PlatformSwitchersCount))

	dataRows := len(grid) - 1
	if dataRows < 0 {
		dataRows = 0
	}
	metrics.RecordIngestRows(len(snap.Orders), dataRows-len(snap.Orders))

	counts := map[string]int{
		string(models.ChurnStatusWatching): snap.Metrics.WatchingCount,
		string(models.ChurnStatusAtRisk):   snap.Metrics.AtRiskCount - snap.Metrics.CriticalCount,
		string(models.ChurnStatusCritical): snap.Metrics.CriticalCount,
	}
	metrics.RecordChurnStatus(counts)
}

func (r *Refresher) emit(ctx context.Context, previous, snap *Snapshot, duration time.Duration) {
	if r.emitter == nil {
		return
	}

	if err := r.emitter.EmitSnapshotRefreshed(ctx, len(snap.Orders), len(snap.Tiers), snap.Tier1Count(), snap.Metrics, duration); err != nil {
		r.logger.WithContext(ctx).WithError(err).Warn("Snapshot refreshed event not emitted")
	}

	var previousRecords []models.ChurnRecord
	if previous != nil {
		previousRecords = previous.Metrics.ChurningCompanies
	}
	if err := r.emitter.EmitChurnAlerts(ctx, previousRecords, snap.Metrics.ChurningCompanies); err != nil {
		r.logger.WithContext(ctx).WithError(err).Warn("Churn alerts not emitted")
	}
}

func (r *Refresher) cacheMetrics(ctx context.Context, snap *Snapshot) {
	if r.cache == nil {
		return
	}

	payload, err := json.Marshal(snap.Metrics)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, MetricsCacheKey, payload, r.cfg.CacheTTL); err != nil {
		r.logger.WithContext(ctx).WithError(err).Warn("Churn metrics not cached")
	}
}
