// Package analytics aggregates order snapshots into the dashboard summaries.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Ramsey-B/fern/pkg/addresses"
	"github.com/Ramsey-B/fern/pkg/interactions"
	"github.com/Ramsey-B/fern/pkg/models"
)

const isoDate = "2006-01-02"

// TopCustomerLimit caps the analytics leaderboard.
const TopCustomerLimit = 10

// HistoryLimit caps order-history listings.
const HistoryLimit = 500

// OrderFilter narrows an order list for the listing endpoints. Zero values
// mean "no constraint".
type OrderFilter struct {
	Search    string
	Platform  string
	Tier      int
	StartDate string
	EndDate   string
	Limit     int
}

// FilterOrders applies an OrderFilter. Search matches company, contact
// person, or brand, case-insensitively.
func FilterOrders(orders []models.Order, tiers models.TierMap, filter OrderFilter) []models.Order {
	search := strings.ToLower(filter.Search)

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if search != "" &&
			!strings.Contains(strings.ToLower(order.Company), search) &&
			!strings.Contains(strings.ToLower(order.ContactPerson), search) &&
			!strings.Contains(strings.ToLower(order.Brand), search) {
			continue
		}
		if filter.Platform != "" && order.Platform != filter.Platform {
			continue
		}
		if filter.Tier != 0 && interactions.TierFor(tiers, order.Company) != filter.Tier {
			continue
		}
		if filter.StartDate != "" && order.Date != "" && order.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && order.Date != "" && order.Date > filter.EndDate {
			continue
		}

		filtered = append(filtered, order)
		if filter.Limit > 0 && len(filtered) == filter.Limit {
			break
		}
	}
	return filtered
}

// TodaySummary builds the stat cards for orders dated today.
func TodaySummary(orders []models.Order, tiers models.TierMap, today time.Time) models.TodaySummary {
	todayStr := today.Format(isoDate)

	summary := models.TodaySummary{Orders: []models.Order{}}
	companies := map[string]bool{}
	tier1 := map[string]bool{}
	for _, order := range orders {
		if order.Date != todayStr {
			continue
		}
		summary.Orders = append(summary.Orders, order)
		summary.OrderCount++
		summary.TotalGuests += order.Guests
		companies[order.Company] = true
		if interactions.TierFor(tiers, order.Company) == 1 {
			tier1[order.Company] = true
		}
	}
	summary.CompanyCount = len(companies)
	summary.Tier1Count = len(tier1)
	return summary
}

// HistorySummary builds the stat cards over the full order list.
func HistorySummary(orders []models.Order, tiers models.TierMap) models.HistorySummary {
	summary := models.HistorySummary{TotalOrders: len(orders)}

	companies := map[string]bool{}
	totalGuests := 0
	for _, order := range orders {
		companies[order.Company] = true
		totalGuests += order.Guests
	}
	summary.CompanyCount = len(companies)
	if len(orders) > 0 {
		summary.AvgGuests = int(math.Round(float64(totalGuests) / float64(len(orders))))
	}

	for _, record := range tiers {
		if record.Tier == 1 {
			summary.Tier1Customers++
		}
	}
	return summary
}

// Summarize aggregates orders in a date range for the analytics tab.
// Orders from unknown or n/a companies are excluded entirely, and the "N/A"
// platform is excluded from the platform breakdown.
func Summarize(orders []models.Order, tiers models.TierMap, startDate, endDate string) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		TopPlatform:       "-",
		PlatformBreakdown: map[string]int{},
		TopCustomers:      []models.CustomerOrderCount{},
		Timeline:          []models.TimelinePoint{},
	}

	var inRange []models.Order
	customerCounts := map[string]int{}
	timeline := map[string]int{}
	totalGuests := 0
	for _, order := range orders {
		lowered := strings.ToLower(order.Company)
		if order.Company == "" || lowered == "unknown" || lowered == "na" {
			continue
		}
		if startDate != "" && order.Date != "" && order.Date < startDate {
			continue
		}
		if endDate != "" && order.Date != "" && order.Date > endDate {
			continue
		}

		inRange = append(inRange, order)
		totalGuests += order.Guests
		customerCounts[order.Company]++
		if order.Date != "" {
			timeline[order.Date]++
		}
		if !strings.EqualFold(order.Platform, "n/a") {
			summary.PlatformBreakdown[order.Platform]++
		}
	}

	summary.TotalOrders = len(inRange)
	if len(inRange) > 0 {
		summary.AvgGuests = int(math.Round(float64(totalGuests) / float64(len(inRange))))
	}
	for _, count := range customerCounts {
		if count > 1 {
			summary.RepeatCustomers++
		}
	}

	topCount := 0
	for platform, count := range summary.PlatformBreakdown {
		if count > topCount || (count == topCount && topCount > 0 && platform < summary.TopPlatform) {
			summary.TopPlatform = platform
			topCount = count
		}
	}

	summary.TopCustomers = topCustomers(customerCounts, inRange, tiers)

	dates := make([]string, 0, len(timeline))
	for date := range timeline {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		summary.Timeline = append(summary.Timeline, models.TimelinePoint{Date: date, Orders: timeline[date]})
	}

	return summary
}

func topCustomers(counts map[string]int, orders []models.Order, tiers models.TierMap) []models.CustomerOrderCount {
	ranked := make([]models.CustomerOrderCount, 0, len(counts))
	for company, count := range counts {
		ranked = append(ranked, models.CustomerOrderCount{
			Company:    company,
			OrderCount: count,
			Tier:       interactions.TierFor(tiers, company),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].OrderCount != ranked[j].OrderCount {
			return ranked[i].OrderCount > ranked[j].OrderCount
		}
		return ranked[i].Company < ranked[j].Company
	})
	if len(ranked) > TopCustomerLimit {
		ranked = ranked[:TopCustomerLimit]
	}

	for i := range ranked {
		var companyOrders []models.Order
		for _, order := range orders {
			if order.Company == ranked[i].Company {
				companyOrders = append(companyOrders, order)
			}
		}
		sort.SliceStable(companyOrders, func(a, b int) bool { return companyOrders[a].Date > companyOrders[b].Date })
		ranked[i].Orders = companyOrders
	}
	return ranked
}

// PipelineSummary builds the sales-pipeline stat cards. The conversion rate
// compares converted interaction histories against all tiered companies.
func PipelineSummary(tiers models.TierMap, interactionMap models.InteractionMap, today time.Time) models.PipelineSummary {
	summary := models.PipelineSummary{ConversionRate: "0.00%"}

	for _, record := range tiers {
		if record.Tier == 1 {
			summary.Tier1Prospects++
		}
	}
	for company := range tiers {
		switch interactions.FollowupStatus(interactionMap[company], today) {
		case models.FollowupOverdue:
			summary.OverdueFollowups++
		case models.FollowupToday, models.FollowupThisWeek:
			summary.ThisWeekFollowups++
		}
	}

	if len(tiers) > 0 {
		converted := 0
		for _, history := range interactionMap {
			if strings.TrimSpace(strings.ToLower(interactions.CurrentSalesStatus(history))) == models.SalesStatusConverted {
				converted++
			}
		}
		summary.ConversionRate = fmt.Sprintf("%.2f%%", float64(converted)/float64(len(tiers))*100)
	}

	return summary
}

// PipelineFilter narrows the pipeline table.
type PipelineFilter struct {
	Search      string
	Tier        int
	SalesStatus string
	Followup    string // overdue, today, or thisweek
	StartDate   string
	EndDate     string
}

// PipelineEntries builds the pipeline table rows for every tiered company,
// tier 1 first, never-contacted companies ahead of stale ones.
func PipelineEntries(tiers models.TierMap, interactionMap models.InteractionMap, today time.Time, filter PipelineFilter) []models.PipelineEntry {
	search := strings.ToLower(filter.Search)

	entries := make([]models.PipelineEntry, 0, len(tiers))
	for company, record := range tiers {
		if search != "" && !strings.Contains(strings.ToLower(company), search) {
			continue
		}
		if filter.Tier != 0 && record.Tier != filter.Tier {
			continue
		}

		history := interactionMap[company]
		salesStatus := interactions.CurrentSalesStatus(history)
		if filter.SalesStatus != "" && salesStatus != filter.SalesStatus {
			continue
		}

		followup := interactions.FollowupStatus(history, today)
		if !matchesFollowupFilter(followup, filter.Followup) {
			continue
		}

		lastOrderDate := lastOrderDate(record.Stats.Orders)
		if filter.StartDate != "" && (lastOrderDate == "" || lastOrderDate < filter.StartDate) {
			continue
		}
		if filter.EndDate != "" && (lastOrderDate == "" || lastOrderDate > filter.EndDate) {
			continue
		}

		entry := models.PipelineEntry{
			Company:       company,
			Tier:          record.Tier,
			TotalOrders:   record.Stats.TotalOrders,
			BrandCount:    len(record.Stats.Brands),
			AvgGuests:     int(math.Round(record.Stats.AvgGuests)),
			LastOrderDate: lastOrderDate,
			SalesStatus:   salesStatus,
		}
		if lastContact := interactions.LastContactDate(history); lastContact != "" {
			entry.LastContact = &lastContact
			if days, ok := interactions.DaysSinceContact(history, today); ok {
				entry.DaysSince = &days
			}
		}
		if next := interactions.NextFollowupDate(history); next != "" {
			entry.NextFollowup = &next
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Tier != entries[j].Tier {
			return entries[i].Tier < entries[j].Tier
		}
		a, b := entries[i].LastContact, entries[j].LastContact
		switch {
		case a == nil && b == nil:
			return entries[i].Company < entries[j].Company
		case a == nil:
			return true
		case b == nil:
			return false
		case *a != *b:
			return *a < *b
		default:
			return entries[i].Company < entries[j].Company
		}
	})

	return entries
}

func matchesFollowupFilter(status, filter string) bool {
	switch filter {
	case "":
		return true
	case models.FollowupOverdue, models.FollowupToday:
		return status == filter
	case models.FollowupThisWeek:
		return status == models.FollowupToday || status == models.FollowupThisWeek
	default:
		return true
	}
}

func lastOrderDate(orders []models.Order) string {
	last := ""
	for _, order := range orders {
		if order.Date > last {
			last = order.Date
		}
	}
	return last
}

// MapSummary groups orders in a date range by cleaned delivery address for
// the map tab. Orders without an address are skipped.
func MapSummary(orders []models.Order, tiers models.TierMap, startDate, endDate string) models.MapSummary {
	summary := models.MapSummary{Groups: []models.AddressGroup{}}

	grouped := map[string][]models.Order{}
	for _, order := range orders {
		if strings.TrimSpace(order.Address) == "" {
			continue
		}
		if startDate != "" && order.Date != "" && order.Date < startDate {
			continue
		}
		if endDate != "" && order.Date != "" && order.Date > endDate {
			continue
		}

		cleaned := addresses.Clean(order.Address)
		if addresses.IsDepot(cleaned) {
			summary.PickupCount++
		}
		grouped[cleaned] = append(grouped[cleaned], order)
		summary.TotalOrders++
	}
	summary.UniqueAddresses = len(grouped)

	for address, addressOrders := range grouped {
		group := models.AddressGroup{
			Address:  address,
			IsPickup: addresses.IsDepot(address),
			Orders:   addressOrders,
		}
		for _, order := range addressOrders {
			if interactions.TierFor(tiers, order.Company) == 1 {
				group.HasTier1 = true
				break
			}
		}
		summary.Groups = append(summary.Groups, group)
	}

	// Busiest locations first.
	sort.Slice(summary.Groups, func(i, j int) bool {
		if len(summary.Groups[i].Orders) != len(summary.Groups[j].Orders) {
			return len(summary.Groups[i].Orders) > len(summary.Groups[j].Orders)
		}
		return summary.Groups[i].Address < summary.Groups[j].Address
	})

	return summary
}
