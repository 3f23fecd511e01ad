package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// SnapshotRefreshedEvent is published after every snapshot rebuild
type SnapshotRefreshedEvent struct {
	EventType       string    `json:"event_type"`
	OrderCount      int       `json:"order_count"`
	CompanyCount    int       `json:"company_count"`
	Tier1Count      int       `json:"tier1_count"`
	AtRiskCount     int       `json:"at_risk_count"`
	CriticalCount   int       `json:"critical_count"`
	ChurnRate       string    `json:"churn_rate"`
	RefreshedAt     time.Time `json:"refreshed_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// ChurnAlertEvent is published when a company degrades to critical or lost
type ChurnAlertEvent struct {
	EventType     string    `json:"event_type"`
	Company       string    `json:"company"`
	Status        string    `json:"status"`
	PriorStatus   string    `json:"prior_status"`
	Tier          int       `json:"tier"`
	DaysSince     int       `json:"days_since"`
	LastOrderDate string    `json:"last_order_date"`
	Timestamp     time.Time `json:"timestamp"`
}

// PublishSnapshotRefreshed publishes a snapshot refreshed event to Kafka
func (p *Producer) PublishSnapshotRefreshed(ctx context.Context, topic string, event *SnapshotRefreshedEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishSnapshotRefreshed")
	defer span.End()

	event.EventType = "snapshot.refreshed"
	if event.RefreshedAt.IsZero() {
		event.RefreshedAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(event.RefreshedAt.Format(time.RFC3339)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "traceparent", Value: []byte(tracing.GetTraceParent(ctx))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.RecordKafkaPublish(topic, "error")
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish snapshot refreshed event")
		return err
	}
	metrics.RecordKafkaPublish(topic, "success")

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"order_count":   event.OrderCount,
		"company_count": event.CompanyCount,
	}).Debug("Published snapshot refreshed event")

	return nil
}

// PublishChurnAlerts publishes churn alert events in a batch
func (p *Producer) PublishChurnAlerts(ctx context.Context, topic string, events []*ChurnAlertEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishChurnAlerts")
	defer span.End()

	if len(events) == 0 {
		return nil
	}

	traceParent := []byte(tracing.GetTraceParent(ctx))
	messages := make([]kafka.Message, len(events))
	for i, event := range events {
		event.EventType = "customer.churn-alert"
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}

		messages[i] = kafka.Message{
			Topic: topic,
			Key:   []byte(event.Company),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
				{Key: "traceparent", Value: traceParent},
			},
		}
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		metrics.RecordKafkaPublish(topic, "error")
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(events),
		}).Error("Failed to publish churn alerts batch")
		return err
	}
	metrics.RecordKafkaPublish(topic, "success")

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(events),
	}).Debug("Published churn alerts batch")

	return nil
}
