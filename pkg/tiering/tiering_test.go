package tiering

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

func order(company, platform, brand string, guests int) models.Order {
	return models.Order{Company: company, Platform: platform, Brand: brand, Guests: guests}
}

func TestCalculateCustomerTiers(t *testing.T) {
	t.Run("should give tier 1 to a high scoring company", func(t *testing.T) {
		// 5 orders (40) + avg 60 guests (30) + 3 brands (30) + 2 platforms (10).
		orders := []models.Order{
			order("Acme", models.PlatformEzCater, "Brand A", 60),
			order("Acme", models.PlatformEzCater, "Brand B", 60),
			order("Acme", models.PlatformDoorDash, "Brand C", 60),
			order("Acme", models.PlatformDoorDash, "Brand A", 60),
			order("Acme", models.PlatformEzCater, "Brand B", 60),
		}

		tiers := CalculateCustomerTiers(orders)

		record, ok := tiers["Acme"]
		assert.True(t, ok)
		assert.Equal(t, 1, record.Tier)
		assert.Equal(t, 110, record.Score)
		assert.Equal(t, 5, record.Stats.TotalOrders)
		assert.Equal(t, 300, record.Stats.TotalGuests)
		assert.Equal(t, float64(60), record.Stats.AvgGuests)
		assert.ElementsMatch(t, []string{"Brand A", "Brand B", "Brand C"}, record.Stats.Brands)
		assert.ElementsMatch(t, []string{models.PlatformEzCater, models.PlatformDoorDash}, record.Stats.Platforms)
	})

	t.Run("should give tier 3 to a single small order", func(t *testing.T) {
		tiers := CalculateCustomerTiers([]models.Order{
			order("Acme", models.PlatformEzCater, "", 5),
		})

		record := tiers["Acme"]
		// 1 order (5) + avg 5 guests (5) + 0 brands (10) + 1 platform (5).
		assert.Equal(t, 25, record.Score)
		assert.Equal(t, 3, record.Tier)
	})

	t.Run("should skip companies with only Direct orders", func(t *testing.T) {
		tiers := CalculateCustomerTiers([]models.Order{
			order("Acme", models.PlatformDirect, "Brand A", 50),
			order("Acme", models.PlatformDirect, "Brand B", 50),
		})

		assert.NotContains(t, tiers, "Acme")
	})

	t.Run("should exclude Direct orders from a mixed company's stats", func(t *testing.T) {
		tiers := CalculateCustomerTiers([]models.Order{
			order("Acme", models.PlatformDirect, "Brand A", 500),
			order("Acme", models.PlatformEzCater, "Brand B", 20),
		})

		record := tiers["Acme"]
		assert.Equal(t, 1, record.Stats.TotalOrders)
		assert.Equal(t, 20, record.Stats.TotalGuests)
	})

	t.Run("should skip unknown companies case-insensitively", func(t *testing.T) {
		tiers := CalculateCustomerTiers([]models.Order{
			order("Unknown", models.PlatformEzCater, "Brand A", 50),
			order("UNKNOWN", models.PlatformEzCater, "Brand A", 50),
			order("", models.PlatformEzCater, "Brand A", 50),
		})

		assert.Empty(t, tiers)
	})

	t.Run("should be idempotent across calls", func(t *testing.T) {
		orders := []models.Order{
			order("Acme", models.PlatformEzCater, "Brand A", 60),
			order("Acme", models.PlatformDoorDash, "Brand B", 40),
			order("Globex", models.PlatformGrubhub, "Brand A", 10),
		}

		first := CalculateCustomerTiers(orders)
		second := CalculateCustomerTiers(orders)

		assert.Equal(t, first, second)
	})
}
