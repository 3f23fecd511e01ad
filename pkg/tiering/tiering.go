// Package tiering scores customers on growth potential from their order history.
package tiering

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

// thirdPartyPlatforms is the fixed set of channels that count toward customer
// stats. Direct orders never contribute.
var thirdPartyPlatforms = map[string]bool{
	models.PlatformEzCater:      true,
	models.PlatformCaterCow:     true,
	models.PlatformShareBite:    true,
	models.PlatformDoorDash:     true,
	models.PlatformGrubhub:      true,
	models.PlatformFlexCatering: true,
}

// IsThirdParty reports whether a canonical platform name is in the
// third-party set.
func IsThirdParty(platform string) bool {
	return thirdPartyPlatforms[platform]
}

// CalculateCustomerTiers groups orders by company and computes each company's
// potential score and tier. Companies named "Unknown" are skipped, as are
// companies with no third-party orders at all. The result is built fresh on
// every call; inputs are never mutated.
func CalculateCustomerTiers(orders []models.Order) models.TierMap {
	stats := map[string]*accumulator{}

	for _, order := range orders {
		if order.Company == "" || strings.EqualFold(order.Company, "unknown") {
			continue
		}
		if !thirdPartyPlatforms[order.Platform] {
			continue
		}

		acc, ok := stats[order.Company]
		if !ok {
			acc = &accumulator{brands: map[string]bool{}, platforms: map[string]bool{}}
			stats[order.Company] = acc
		}
		acc.add(order)
	}

	tiers := make(models.TierMap, len(stats))
	for company, acc := range stats {
		score := scoreStats(acc)
		tiers[company] = models.CustomerTier{
			Tier:  tierForScore(score),
			Score: score,
			Stats: acc.stats(),
		}
	}
	return tiers
}

// scoreStats sums the four independent sub-scores.
func scoreStats(acc *accumulator) int {
	score := 0

	// Order frequency (0-40).
	switch {
	case acc.totalOrders >= 5:
		score += 40
	case acc.totalOrders >= 3:
		score += 25
	case acc.totalOrders >= 2:
		score += 15
	default:
		score += 5
	}

	// Average headcount (0-30).
	avgGuests := acc.avgGuests()
	switch {
	case avgGuests >= 50:
		score += 30
	case avgGuests >= 30:
		score += 20
	case avgGuests >= 20:
		score += 15
	case avgGuests >= 10:
		score += 10
	default:
		score += 5
	}

	// Brand diversity (0-30).
	switch {
	case len(acc.brands) >= 3:
		score += 30
	case len(acc.brands) >= 2:
		score += 20
	default:
		score += 10
	}

	// Conversion potential: more distinct non-Direct platforms means the
	// customer is comfortable ordering through channels we can win from.
	nonDirect := 0
	for platform := range acc.platforms {
		if platform != models.PlatformDirect {
			nonDirect++
		}
	}
	switch {
	case nonDirect >= 2:
		score += 10
	case nonDirect >= 1:
		score += 5
	}

	return score
}

func tierForScore(score int) int {
	switch {
	case score >= 70:
		return 1
	case score >= 45:
		return 2
	default:
		return 3
	}
}

type accumulator struct {
	orders      []models.Order
	totalOrders int
	brands      map[string]bool
	platforms   map[string]bool
	totalGuests int
}

func (a *accumulator) add(order models.Order) {
	a.orders = append(a.orders, order)
	a.totalOrders++
	if order.Brand != "" {
		a.brands[order.Brand] = true
	}
	if order.Platform != "" {
		a.platforms[order.Platform] = true
	}
	a.totalGuests += order.Guests
}

func (a *accumulator) avgGuests() float64 {
	if a.totalOrders == 0 {
		return 0
	}
	return float64(a.totalGuests) / float64(a.totalOrders)
}

func (a *accumulator) stats() models.CustomerStats {
	return models.CustomerStats{
		Orders:      a.orders,
		TotalOrders: a.totalOrders,
		Brands:      sortedKeys(a.brands),
		Platforms:   sortedKeys(a.platforms),
		TotalGuests: a.totalGuests,
		AvgGuests:   a.avgGuests(),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
