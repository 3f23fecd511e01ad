package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

func record(company string, status models.ChurnStatus, daysSince int) models.ChurnRecord {
	return models.ChurnRecord{
		Company:       company,
		Status:        status,
		Tier:          2,
		DaysSince:     daysSince,
		LastOrderDate: "2026-06-01",
	}
}

func TestBuildChurnAlerts(t *testing.T) {
	t.Run("should alert when a company degrades to critical", func(t *testing.T) {
		previous := []models.ChurnRecord{record("Acme", models.ChurnStatusAtRisk, 40)}
		current := []models.ChurnRecord{record("Acme", models.ChurnStatusCritical, 75)}

		alerts := buildChurnAlerts(previous, current)

		assert.Len(t, alerts, 1)
		assert.Equal(t, "Acme", alerts[0].Company)
		assert.Equal(t, "critical", alerts[0].Status)
		assert.Equal(t, "at-risk", alerts[0].PriorStatus)
	})

	t.Run("should alert for a company with no prior record", func(t *testing.T) {
		previous := []models.ChurnRecord{record("Other Co", models.ChurnStatusWatching, 20)}
		current := []models.ChurnRecord{record("Acme", models.ChurnStatusCritical, 80)}

		alerts := buildChurnAlerts(previous, current)

		assert.Len(t, alerts, 1)
		assert.Equal(t, "", alerts[0].PriorStatus)
	})

	t.Run("should not re-alert a company that was already critical", func(t *testing.T) {
		previous := []models.ChurnRecord{record("Acme", models.ChurnStatusCritical, 70)}
		current := []models.ChurnRecord{record("Acme", models.ChurnStatusCritical, 85)}

		assert.Empty(t, buildChurnAlerts(previous, current))
	})

	t.Run("should not alert on statuses below critical", func(t *testing.T) {
		previous := []models.ChurnRecord{record("Acme", models.ChurnStatusWatching, 20)}
		current := []models.ChurnRecord{record("Acme", models.ChurnStatusAtRisk, 40)}

		assert.Empty(t, buildChurnAlerts(previous, current))
	})

	t.Run("should not alert when a company recovers", func(t *testing.T) {
		previous := []models.ChurnRecord{record("Acme", models.ChurnStatusCritical, 70)}
		current := []models.ChurnRecord{record("Acme", models.ChurnStatusAtRisk, 35)}

		assert.Empty(t, buildChurnAlerts(previous, current))
	})
}
