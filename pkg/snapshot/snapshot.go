// Package snapshot builds and serves the in-memory view of the order book.
package snapshot

import (
	"time"

	"github.com/Ramsey-B/fern/pkg/churn"
	"github.com/Ramsey-B/fern/pkg/ingest"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tiering"
)

// Snapshot is an immutable view of the order book and everything derived
// from it. A refresh builds a new Snapshot and swaps it in whole.
type Snapshot struct {
	Orders       []models.Order
	Tiers        models.TierMap
	Metrics      models.ChurnMetrics
	Interactions models.InteractionMap
	LoadedAt     time.Time
}

// Build derives a full snapshot from a raw sheet grid.
func Build(grid models.Grid, interactions models.InteractionMap, today time.Time) *Snapshot {
	orders := ingest.ProcessGrid(grid)
	tiers := tiering.CalculateCustomerTiers(orders)

	if interactions == nil {
		interactions = models.InteractionMap{}
	}

	return &Snapshot{
		Orders:       orders,
		Tiers:        tiers,
		Metrics:      churn.CalculateMetrics(tiers, orders, today),
		Interactions: interactions,
		LoadedAt:     time.Now().UTC(),
	}
}

// Tier1Count returns the number of tier 1 companies in the snapshot.
func (s *Snapshot) Tier1Count() int {
	count := 0
	for _, record := range s.Tiers {
		if record.Tier == 1 {
			count++
		}
	}
	return count
}
