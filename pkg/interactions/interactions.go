// Package interactions derives follow-up and sales-status views from a
// company's recorded sales touchpoints.
package interactions

import (
	"math"
	"sort"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

const isoDate = "2006-01-02"

// LastContactDate returns the date of the company's most recent interaction,
// or empty when there is no history.
func LastContactDate(history []models.Interaction) string {
	latest := latestByDate(history)
	if latest == nil {
		return ""
	}
	return latest.Date
}

// NextFollowupDate returns the follow-up date attached to the most recent
// interaction that has one, or empty.
func NextFollowupDate(history []models.Interaction) string {
	withFollowup := make([]models.Interaction, 0, len(history))
	for _, interaction := range history {
		if interaction.NextFollowupDate != nil && *interaction.NextFollowupDate != "" {
			withFollowup = append(withFollowup, interaction)
		}
	}

	latest := latestByDate(withFollowup)
	if latest == nil {
		return ""
	}
	return *latest.NextFollowupDate
}

// DaysSinceContact returns the ceiling-rounded number of days since the last
// interaction. The second return is false when there is no contact history.
func DaysSinceContact(history []models.Interaction, today time.Time) (int, bool) {
	lastContact := LastContactDate(history)
	if lastContact == "" {
		return 0, false
	}

	contactDate, err := time.ParseInLocation(isoDate, lastContact, time.UTC)
	if err != nil {
		return 0, false
	}

	diff := today.Sub(contactDate)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), true
}

// FollowupStatus buckets the company's next follow-up date relative to
// today: overdue, today, thisweek, or future. Empty when no follow-up is
// scheduled. ISO dates compare correctly as strings.
func FollowupStatus(history []models.Interaction, today time.Time) string {
	next := NextFollowupDate(history)
	if next == "" {
		return models.FollowupNone
	}

	todayStr := today.Format(isoDate)
	switch {
	case next < todayStr:
		return models.FollowupOverdue
	case next == todayStr:
		return models.FollowupToday
	case next <= today.AddDate(0, 0, 7).Format(isoDate):
		return models.FollowupThisWeek
	default:
		return models.FollowupFuture
	}
}

// CurrentSalesStatus returns the sales status from the most recent
// interaction, defaulting to prospect for untouched companies.
func CurrentSalesStatus(history []models.Interaction) string {
	latest := latestByDate(history)
	if latest == nil || latest.SalesStatus == "" {
		return models.SalesStatusProspect
	}
	return latest.SalesStatus
}

// IsConverted reports whether the company's latest interaction marks it
// converted.
func IsConverted(history []models.Interaction) bool {
	return CurrentSalesStatus(history) == models.SalesStatusConverted
}

// TierFor looks up a company's tier, defaulting to 3 for companies without
// a tier record.
func TierFor(tiers models.TierMap, company string) int {
	if record, ok := tiers[company]; ok && record.Tier != 0 {
		return record.Tier
	}
	return 3
}

func latestByDate(history []models.Interaction) *models.Interaction {
	if len(history) == 0 {
		return nil
	}

	sorted := make([]models.Interaction, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	return &sorted[0]
}
