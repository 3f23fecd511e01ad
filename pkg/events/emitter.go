// Package events handles event emission for snapshot lifecycle changes
package events

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Emitter handles event emission for Fern
type Emitter struct {
	producer      *kafka.Producer
	logger        ectologger.Logger
	snapshotTopic string
	churnTopic    string
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger, snapshotTopic, churnTopic string) *Emitter {
	return &Emitter{
		producer:      producer,
		logger:        logger,
		snapshotTopic: snapshotTopic,
		churnTopic:    churnTopic,
	}
}

// EmitSnapshotRefreshed emits a snapshot.refreshed event
func (e *Emitter) EmitSnapshotRefreshed(ctx context.Context, orderCount, companyCount, tier1Count int, metrics models.ChurnMetrics, duration time.Duration) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitSnapshotRefreshed")
	defer span.End()

	event := &kafka.SnapshotRefreshedEvent{
		OrderCount:      orderCount,
		CompanyCount:    companyCount,
		Tier1Count:      tier1Count,
		AtRiskCount:     metrics.AtRiskCount,
		CriticalCount:   metrics.CriticalCount,
		ChurnRate:       metrics.ChurnRate,
		DurationSeconds: duration.Seconds(),
	}

	if err := e.producer.PublishSnapshotRefreshed(ctx, e.snapshotTopic, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit snapshot.refreshed event")
		return err
	}

	return nil
}

// EmitChurnAlerts emits a customer.churn-alert event for every company that
// degraded to critical since the previous snapshot. Lost companies drop out
// of the churn list entirely, so critical is the last observable state. A nil
// previous slice means first load, which emits no alerts.
func (e *Emitter) EmitChurnAlerts(ctx context.Context, previous, current []models.ChurnRecord) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitChurnAlerts")
	defer span.End()

	if previous == nil {
		return nil
	}

	alerts := buildChurnAlerts(previous, current)

	if err := e.producer.PublishChurnAlerts(ctx, e.churnTopic, alerts); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit customer.churn-alert events")
		return err
	}

	return nil
}

func buildChurnAlerts(previous, current []models.ChurnRecord) []*kafka.ChurnAlertEvent {
	prior := make(map[string]models.ChurnStatus, len(previous))
	for _, record := range previous {
		prior[record.Company] = record.Status
	}

	var alerts []*kafka.ChurnAlertEvent
	for _, record := range current {
		if record.Status != models.ChurnStatusCritical {
			continue
		}
		if statusRank(prior[record.Company]) >= statusRank(record.Status) {
			continue
		}

		alerts = append(alerts, &kafka.ChurnAlertEvent{
			Company:       record.Company,
			Status:        string(record.Status),
			PriorStatus:   string(prior[record.Company]),
			Tier:          record.Tier,
			DaysSince:     record.DaysSince,
			LastOrderDate: record.LastOrderDate,
		})
	}
	return alerts
}

func statusRank(status models.ChurnStatus) int {
	switch status {
	case models.ChurnStatusActive:
		return 1
	case models.ChurnStatusWatching:
		return 2
	case models.ChurnStatusAtRisk:
		return 3
	case models.ChurnStatusCritical:
		return 4
	case models.ChurnStatusLost:
		return 5
	default:
		return 0
	}
}
