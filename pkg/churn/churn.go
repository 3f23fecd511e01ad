// Package churn derives customer recency/frequency health from order history.
package churn

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

const isoDate = "2006-01-02"

// Recency thresholds in days.
const (
	lostAfter     = 180
	criticalAfter = 60
	atRiskAfter   = 30
	watchingAfter = 15

	// watchingMaxFrequency is the mean order gap below which a quiet
	// customer is unusual enough to watch.
	watchingMaxFrequency = 21

	// switchWindowDays bounds how far apart a Flex order and the
	// third-party order that replaced it can be.
	switchWindowDays = 60

	// churnRateWindowDays and churnRateSilenceDays define the churn rate
	// cohort: companies active in the last 90 days whose latest order is
	// older than 60 days.
	churnRateWindowDays  = 90
	churnRateSilenceDays = 60
)

// DaysBetween returns the absolute difference between two dates in whole
// days, ceiling-rounded so sub-day noise still counts as a full day.
func DaysBetween(d1, d2 time.Time) int {
	diff := d2.Sub(d1)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Assessment is the churn evaluation of a single company.
type Assessment struct {
	Status        models.ChurnStatus
	DaysSince     int
	LastOrderDate string
	AvgFrequency  *float64
	ValidOrders   int
}

// Assess computes a company's churn status from its order history. At least
// two orders with parseable dates are required; otherwise the status is
// empty and the company is excluded from every churn aggregate.
func Assess(orders []models.Order, today time.Time) Assessment {
	dates := validDates(orders)
	if len(dates) < 2 {
		return Assessment{}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	last := dates[len(dates)-1]
	daysSince := DaysBetween(last, today)

	totalGap := 0
	for i := 1; i < len(dates); i++ {
		totalGap += DaysBetween(dates[i-1], dates[i])
	}
	avgFrequency := float64(totalGap) / float64(len(dates)-1)

	return Assessment{
		Status:        classify(daysSince, avgFrequency),
		DaysSince:     daysSince,
		LastOrderDate: last.Format(isoDate),
		AvgFrequency:  &avgFrequency,
		ValidOrders:   len(dates),
	}
}

// classify applies the recency thresholds in priority order.
func classify(daysSince int, avgFrequency float64) models.ChurnStatus {
	switch {
	case daysSince >= lostAfter:
		return models.ChurnStatusLost
	case daysSince >= criticalAfter:
		return models.ChurnStatusCritical
	case daysSince >= atRiskAfter:
		return models.ChurnStatusAtRisk
	case daysSince >= watchingAfter && avgFrequency <= watchingMaxFrequency:
		return models.ChurnStatusWatching
	default:
		return models.ChurnStatusActive
	}
}

// DetectPlatformSwitchers finds tiered companies that moved from Flex
// Catering to a third-party platform within the switch window. Only the
// chronologically latest qualifying switch per company is kept.
func DetectPlatformSwitchers(tiers models.TierMap, orders []models.Order) []models.PlatformSwitch {
	byCompany := groupByCompany(orders)

	var switchers []models.PlatformSwitch
	for company, record := range tiers {
		if strings.EqualFold(company, "n/a") {
			continue
		}

		history := sortedAscending(byCompany[company])
		var latest *models.PlatformSwitch
		for i := 0; i+1 < len(history); i++ {
			cur, next := history[i], history[i+1]
			if cur.Platform != models.PlatformFlexCatering {
				continue
			}
			if next.Platform == models.PlatformFlexCatering || next.Platform == models.PlatformDirect {
				continue
			}
			gap, ok := dayGap(cur.Date, next.Date)
			if !ok || gap > switchWindowDays {
				continue
			}
			if latest != nil && next.Date <= latest.SwitchedToOrder.Date {
				continue
			}
			latest = &models.PlatformSwitch{
				Company:         company,
				FlexOrder:       cur,
				SwitchedToOrder: next,
				DaysBetween:     gap,
				Tier:            record.Tier,
			}
		}

		if latest == nil {
			continue
		}
		for _, order := range history {
			switch {
			case order.Platform == models.PlatformFlexCatering:
				latest.FlexOrderCount++
			case order.Platform != models.PlatformDirect:
				latest.OtherOrderCount++
			}
		}
		switchers = append(switchers, *latest)
	}

	// Most recent switch first.
	sort.Slice(switchers, func(i, j int) bool {
		if switchers[i].SwitchedToOrder.Date != switchers[j].SwitchedToOrder.Date {
			return switchers[i].SwitchedToOrder.Date > switchers[j].SwitchedToOrder.Date
		}
		return switchers[i].Company < switchers[j].Company
	})

	return switchers
}

// CalculateMetrics builds the fleet-wide churn bundle. Companies named
// "n/a" are excluded from every aggregate. The reported AtRiskCount folds
// critical companies in as a superset; CriticalCount stays separate.
func CalculateMetrics(tiers models.TierMap, orders []models.Order, today time.Time) models.ChurnMetrics {
	byCompany := groupByCompany(orders)

	metrics := models.ChurnMetrics{
		ChurningCompanies: []models.ChurnRecord{},
	}
	atRiskRaw := 0

	for company, record := range tiers {
		if strings.EqualFold(company, "n/a") {
			continue
		}

		assessment := Assess(byCompany[company], today)
		switch assessment.Status {
		case models.ChurnStatusNone, models.ChurnStatusActive, models.ChurnStatusLost:
			continue
		}

		metrics.ChurningCompanies = append(metrics.ChurningCompanies, models.ChurnRecord{
			Company:       company,
			Status:        assessment.Status,
			Tier:          record.Tier,
			DaysSince:     assessment.DaysSince,
			LastOrderDate: assessment.LastOrderDate,
			TotalOrders:   len(byCompany[company]),
			AvgFrequency:  assessment.AvgFrequency,
		})

		switch assessment.Status {
		case models.ChurnStatusCritical:
			metrics.CriticalCount++
		case models.ChurnStatusAtRisk:
			atRiskRaw++
		case models.ChurnStatusWatching:
			metrics.WatchingCount++
		}
		if record.Tier <= 2 && assessment.DaysSince >= 30 {
			metrics.Silent30Count++
		}
	}

	sortChurnRecords(metrics.ChurningCompanies)

	metrics.AtRiskCount = atRiskRaw + metrics.CriticalCount
	metrics.ChurnRate = churnRate(byCompany, today)
	metrics.PlatformSwitchers = DetectPlatformSwitchers(tiers, orders)
	metrics.PlatformSwitchersCount = len(metrics.PlatformSwitchers)

	return metrics
}

// churnRate compares companies active in the rate window against the subset
// that has since gone silent past the silence threshold.
func churnRate(byCompany map[string][]models.Order, today time.Time) string {
	windowStart := today.AddDate(0, 0, -churnRateWindowDays)
	silenceCutoff := today.AddDate(0, 0, -churnRateSilenceDays)

	activeIn90 := 0
	churned := 0
	for company, history := range byCompany {
		if strings.EqualFold(company, "n/a") {
			continue
		}

		dates := validDates(history)
		recent := 0
		var last time.Time
		for _, d := range dates {
			if !d.Before(windowStart) {
				recent++
			}
			if d.After(last) {
				last = d
			}
		}
		if recent < 2 {
			continue
		}
		activeIn90++
		if last.Before(silenceCutoff) {
			churned++
		}
	}

	if activeIn90 == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(churned)/float64(activeIn90)*100)
}

// sortChurnRecords orders records for display: watching, then at-risk, then
// critical, longest silence first within a bucket.
func sortChurnRecords(records []models.ChurnRecord) {
	severity := map[models.ChurnStatus]int{
		models.ChurnStatusWatching: 1,
		models.ChurnStatusAtRisk:   2,
		models.ChurnStatusCritical: 3,
	}
	sort.Slice(records, func(i, j int) bool {
		if severity[records[i].Status] != severity[records[j].Status] {
			return severity[records[i].Status] < severity[records[j].Status]
		}
		if records[i].DaysSince != records[j].DaysSince {
			return records[i].DaysSince > records[j].DaysSince
		}
		return records[i].Company < records[j].Company
	})
}

func groupByCompany(orders []models.Order) map[string][]models.Order {
	grouped := map[string][]models.Order{}
	for _, order := range orders {
		grouped[order.Company] = append(grouped[order.Company], order)
	}
	return grouped
}

func sortedAscending(orders []models.Order) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

func validDates(orders []models.Order) []time.Time {
	dates := make([]time.Time, 0, len(orders))
	for _, order := range orders {
		if order.Date == "" {
			continue
		}
		if d, err := time.ParseInLocation(isoDate, order.Date, time.UTC); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}

func dayGap(d1, d2 string) (int, bool) {
	t1, err1 := time.ParseInLocation(isoDate, d1, time.UTC)
	t2, err2 := time.ParseInLocation(isoDate, d2, time.UTC)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return DaysBetween(t1, t2), true
}
