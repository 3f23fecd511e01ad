package churn

import (
	"testing"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	assert.NoError(t, err)
	return parsed
}

func orderOn(company, platform, date string) models.Order {
	return models.Order{Company: company, Platform: platform, Date: date}
}

func TestDaysBetween(t *testing.T) {
	t.Run("should count whole days in either direction", func(t *testing.T) {
		d1 := day(t, "2025-01-01")
		d2 := day(t, "2025-01-11")
		assert.Equal(t, 10, DaysBetween(d1, d2))
		assert.Equal(t, 10, DaysBetween(d2, d1))
	})

	t.Run("should ceiling sub-day differences", func(t *testing.T) {
		d1 := day(t, "2025-01-01")
		d2 := d1.Add(3 * time.Hour)
		assert.Equal(t, 1, DaysBetween(d1, d2))
	})

	t.Run("should return zero for equal dates", func(t *testing.T) {
		d := day(t, "2025-01-01")
		assert.Equal(t, 0, DaysBetween(d, d))
	})
}

func TestAssess(t *testing.T) {
	today := day(t, "2025-09-01")

	ordersDaysAgo := func(daysAgo ...int) []models.Order {
		orders := make([]models.Order, 0, len(daysAgo))
		for _, d := range daysAgo {
			orders = append(orders, orderOn("Acme", "ezCater", today.AddDate(0, 0, -d).Format("2006-01-02")))
		}
		return orders
	}

	t.Run("should require at least two dated orders", func(t *testing.T) {
		assert.Equal(t, models.ChurnStatusNone, Assess(nil, today).Status)
		assert.Equal(t, models.ChurnStatusNone, Assess(ordersDaysAgo(10), today).Status)
		assert.Equal(t, models.ChurnStatusNone, Assess([]models.Order{
			orderOn("Acme", "ezCater", ""),
			orderOn("Acme", "ezCater", ""),
		}, today).Status)
	})

	t.Run("should mark long-silent customers lost", func(t *testing.T) {
		// Two orders 200 days apart, the latest 190 days ago.
		result := Assess(ordersDaysAgo(390, 190), today)
		assert.Equal(t, models.ChurnStatusLost, result.Status)
		assert.Equal(t, 190, result.DaysSince)
	})

	t.Run("should mark critical at exactly 60 days", func(t *testing.T) {
		assert.Equal(t, models.ChurnStatusCritical, Assess(ordersDaysAgo(120, 60), today).Status)
	})

	t.Run("should mark at-risk at 59 days", func(t *testing.T) {
		assert.Equal(t, models.ChurnStatusAtRisk, Assess(ordersDaysAgo(120, 59), today).Status)
	})

	t.Run("should watch frequent customers that went quiet", func(t *testing.T) {
		// Weekly cadence, then 20 days of silence.
		result := Assess(ordersDaysAgo(41, 34, 27, 20), today)
		assert.Equal(t, models.ChurnStatusWatching, result.Status)
		assert.NotNil(t, result.AvgFrequency)
		assert.InDelta(t, 7.0, *result.AvgFrequency, 0.001)
	})

	t.Run("should keep infrequent quiet customers active", func(t *testing.T) {
		// 20 days of silence but a 60 day cadence is normal for them.
		assert.Equal(t, models.ChurnStatusActive, Assess(ordersDaysAgo(80, 20), today).Status)
	})

	t.Run("should report the last order date", func(t *testing.T) {
		result := Assess(ordersDaysAgo(40, 10), today)
		assert.Equal(t, today.AddDate(0, 0, -10).Format("2006-01-02"), result.LastOrderDate)
	})
}

func TestDetectPlatformSwitchers(t *testing.T) {
	tiers := models.TierMap{"Acme": {Tier: 1}}

	t.Run("should record a switch within the window", func(t *testing.T) {
		orders := []models.Order{
			orderOn("Acme", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("Acme", models.PlatformShareBite, "2025-02-10"),
		}

		switchers := DetectPlatformSwitchers(tiers, orders)

		assert.Len(t, switchers, 1)
		assert.Equal(t, "Acme", switchers[0].Company)
		assert.Equal(t, 40, switchers[0].DaysBetween)
		assert.Equal(t, 1, switchers[0].Tier)
		assert.Equal(t, models.PlatformShareBite, switchers[0].SwitchedToOrder.Platform)
	})

	t.Run("should ignore switches outside the window", func(t *testing.T) {
		orders := []models.Order{
			orderOn("Acme", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("Acme", models.PlatformShareBite, "2025-03-03"), // 61 days
		}

		assert.Empty(t, DetectPlatformSwitchers(tiers, orders))
	})

	t.Run("should ignore moves to Direct", func(t *testing.T) {
		orders := []models.Order{
			orderOn("Acme", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("Acme", models.PlatformDirect, "2025-01-11"),
		}

		assert.Empty(t, DetectPlatformSwitchers(tiers, orders))
	})

	t.Run("should keep only the latest switch per company", func(t *testing.T) {
		orders := []models.Order{
			orderOn("Acme", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("Acme", models.PlatformShareBite, "2025-01-20"),
			orderOn("Acme", models.PlatformFlexCatering, "2025-03-01"),
			orderOn("Acme", models.PlatformDoorDash, "2025-03-15"),
		}

		switchers := DetectPlatformSwitchers(tiers, orders)

		assert.Len(t, switchers, 1)
		assert.Equal(t, models.PlatformDoorDash, switchers[0].SwitchedToOrder.Platform)
		assert.Equal(t, 2, switchers[0].FlexOrderCount)
		assert.Equal(t, 2, switchers[0].OtherOrderCount)
	})

	t.Run("should skip untiered companies and n/a", func(t *testing.T) {
		orders := []models.Order{
			orderOn("Globex", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("Globex", models.PlatformShareBite, "2025-01-15"),
			orderOn("n/a", models.PlatformFlexCatering, "2025-01-01"),
			orderOn("n/a", models.PlatformShareBite, "2025-01-15"),
		}

		assert.Empty(t, DetectPlatformSwitchers(models.TierMap{"n/a": {Tier: 3}}, orders))
	})
}

func TestCalculateMetrics(t *testing.T) {
	today := day(t, "2025-09-01")

	onDaysAgo := func(company string, daysAgo ...int) []models.Order {
		orders := make([]models.Order, 0, len(daysAgo))
		for _, d := range daysAgo {
			orders = append(orders, orderOn(company, "ezCater", today.AddDate(0, 0, -d).Format("2006-01-02")))
		}
		return orders
	}

	t.Run("should bucket churning companies and fold critical into at-risk", func(t *testing.T) {
		tiers := models.TierMap{
			"Critical Co": {Tier: 1},
			"AtRisk Co":   {Tier: 2},
			"Watching Co": {Tier: 3},
			"Active Co":   {Tier: 1},
			"Lost Co":     {Tier: 2},
		}

		var orders []models.Order
		orders = append(orders, onDaysAgo("Critical Co", 150, 70)...)
		orders = append(orders, onDaysAgo("AtRisk Co", 100, 40)...)
		orders = append(orders, onDaysAgo("Watching Co", 34, 27, 20)...)
		orders = append(orders, onDaysAgo("Active Co", 10, 3)...)
		orders = append(orders, onDaysAgo("Lost Co", 400, 200)...)

		metrics := CalculateMetrics(tiers, orders, today)

		assert.Equal(t, 1, metrics.CriticalCount)
		assert.Equal(t, 2, metrics.AtRiskCount) // at-risk + critical
		assert.Equal(t, 1, metrics.WatchingCount)
		assert.Len(t, metrics.ChurningCompanies, 3)

		statuses := map[string]models.ChurnStatus{}
		for _, record := range metrics.ChurningCompanies {
			statuses[record.Company] = record.Status
		}
		assert.Equal(t, models.ChurnStatusCritical, statuses["Critical Co"])
		assert.Equal(t, models.ChurnStatusAtRisk, statuses["AtRisk Co"])
		assert.Equal(t, models.ChurnStatusWatching, statuses["Watching Co"])
		assert.NotContains(t, statuses, "Active Co")
		assert.NotContains(t, statuses, "Lost Co")
	})

	t.Run("should count silent tier 1 and 2 companies", func(t *testing.T) {
		tiers := models.TierMap{
			"Tier1 Silent": {Tier: 1},
			"Tier3 Silent": {Tier: 3},
		}
		var orders []models.Order
		orders = append(orders, onDaysAgo("Tier1 Silent", 100, 40)...)
		orders = append(orders, onDaysAgo("Tier3 Silent", 100, 40)...)

		metrics := CalculateMetrics(tiers, orders, today)

		assert.Equal(t, 1, metrics.Silent30Count)
	})

	t.Run("should exclude n/a from every aggregate", func(t *testing.T) {
		tiers := models.TierMap{"n/a": {Tier: 1}}
		orders := onDaysAgo("n/a", 100, 70)

		metrics := CalculateMetrics(tiers, orders, today)

		assert.Empty(t, metrics.ChurningCompanies)
		assert.Equal(t, 0, metrics.AtRiskCount)
		assert.Equal(t, "0.0%", metrics.ChurnRate)
	})

	t.Run("should compute the churn rate over recently active companies", func(t *testing.T) {
		var orders []models.Order
		// Active in window, latest 70 days ago: churned.
		orders = append(orders, onDaysAgo("Gone Co", 85, 70)...)
		// Active in window, latest 10 days ago: retained.
		orders = append(orders, onDaysAgo("Here Co", 40, 10)...)
		// Only one order in window: not in the cohort.
		orders = append(orders, onDaysAgo("Thin Co", 200, 20)...)

		metrics := CalculateMetrics(models.TierMap{}, orders, today)

		assert.Equal(t, "50.0%", metrics.ChurnRate)
	})

	t.Run("should report zero churn rate with no active cohort", func(t *testing.T) {
		metrics := CalculateMetrics(models.TierMap{}, nil, today)
		assert.Equal(t, "0.0%", metrics.ChurnRate)
	})

	t.Run("should order churning companies by severity then silence", func(t *testing.T) {
		tiers := models.TierMap{
			"Critical Co": {Tier: 1},
			"Watching Co": {Tier: 1},
			"AtRisk Co":   {Tier: 1},
		}
		var orders []models.Order
		orders = append(orders, onDaysAgo("Critical Co", 150, 70)...)
		orders = append(orders, onDaysAgo("AtRisk Co", 100, 40)...)
		orders = append(orders, onDaysAgo("Watching Co", 34, 27, 20)...)

		metrics := CalculateMetrics(tiers, orders, today)

		assert.Equal(t, []string{"Watching Co", "AtRisk Co", "Critical Co"}, []string{
			metrics.ChurningCompanies[0].Company,
			metrics.ChurningCompanies[1].Company,
			metrics.ChurningCompanies[2].Company,
		})
	})

	t.Run("should include platform switchers in the bundle", func(t *testing.T) {
		tiers := models.TierMap{"Switcher Co": {Tier: 2}}
		orders := []models.Order{
			orderOn("Switcher Co", models.PlatformFlexCatering, "2025-08-01"),
			orderOn("Switcher Co", models.PlatformShareBite, "2025-08-20"),
		}

		metrics := CalculateMetrics(tiers, orders, today)

		assert.Equal(t, 1, metrics.PlatformSwitchersCount)
		assert.Len(t, metrics.PlatformSwitchers, 1)
	})
}
