package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func row(date, platform, company, guests string) []string {
	cells := make([]string, 23)
	cells[2] = date
	cells[3] = platform
	cells[8] = company
	cells[10] = guests
	return cells
}

func grid(rows ...[]string) models.Grid {
	g := models.Grid{make([]string, 23)} // header
	return append(g, rows...)
}

type stubFetcher struct {
	grid models.Grid
	err  error
}

func (s *stubFetcher) GetValues(_ context.Context, _ string) (models.Grid, error) {
	return s.grid, s.err
}

type stubLister struct {
	interactions models.InteractionMap
	err          error
}

func (s *stubLister) ListAll(_ context.Context) (models.InteractionMap, error) {
	return s.interactions, s.err
}

func TestBuild(t *testing.T) {
	t.Run("should derive orders tiers and metrics from a grid", func(t *testing.T) {
		snap := Build(grid(
			row("2025-03-05", "ezCater", "Acme", "20"),
			row("2025-03-01", "ezCater", "Acme", "30"),
		), nil, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

		assert.Len(t, snap.Orders, 2)
		assert.Contains(t, snap.Tiers, "Acme")
		assert.Equal(t, "0.0%", snap.Metrics.ChurnRate)
		assert.NotNil(t, snap.Interactions)
		assert.False(t, snap.LoadedAt.IsZero())
	})

	t.Run("should count tier 1 companies", func(t *testing.T) {
		snap := &Snapshot{Tiers: models.TierMap{
			"Acme":   {Tier: 1},
			"Globex": {Tier: 3},
		}}

		assert.Equal(t, 1, snap.Tier1Count())
	})
}

func TestService(t *testing.T) {
	t.Run("should return nil before the first refresh", func(t *testing.T) {
		assert.Nil(t, NewService().Current())
	})

	t.Run("should swap snapshots atomically", func(t *testing.T) {
		service := NewService()
		first := &Snapshot{}
		second := &Snapshot{}

		service.Set(first)
		assert.Same(t, first, service.Current())

		service.Set(second)
		assert.Same(t, second, service.Current())
	})
}

func TestRefresher(t *testing.T) {
	logger := testLogger()

	t.Run("should build and install a snapshot", func(t *testing.T) {
		service := NewService()
		fetcher := &stubFetcher{grid: grid(row("2025-03-05", "ezCater", "Acme", "20"))}
		lister := &stubLister{interactions: models.InteractionMap{"Acme": {{Company: "Acme", Date: "2025-03-01"}}}}

		refresher := NewRefresher(RefresherConfig{OrdersRange: "Orders!A:W"}, fetcher, lister, service, nil, nil, logger)

		snap, err := refresher.Refresh(context.Background())

		assert.NoError(t, err)
		assert.Same(t, snap, service.Current())
		assert.Len(t, snap.Orders, 1)
		assert.Len(t, snap.Interactions["Acme"], 1)
	})

	t.Run("should keep the old snapshot when the fetch fails", func(t *testing.T) {
		service := NewService()
		existing := &Snapshot{}
		service.Set(existing)

		refresher := NewRefresher(RefresherConfig{}, &stubFetcher{err: errors.New("boom")}, &stubLister{}, service, nil, nil, logger)

		_, err := refresher.Refresh(context.Background())

		assert.Error(t, err)
		assert.Same(t, existing, service.Current())
	})

	t.Run("should keep the old snapshot when the interaction load fails", func(t *testing.T) {
		service := NewService()
		existing := &Snapshot{}
		service.Set(existing)

		refresher := NewRefresher(RefresherConfig{}, &stubFetcher{grid: grid()}, &stubLister{err: errors.New("boom")}, service, nil, nil, logger)

		_, err := refresher.Refresh(context.Background())

		assert.Error(t, err)
		assert.Same(t, existing, service.Current())
	})
}
