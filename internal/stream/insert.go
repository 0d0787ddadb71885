// Package stream inserts demo rows through the BigQuery streaming API.
// Streamed rows sit in the table's streaming buffer for up to 90 minutes,
// which makes the buffer visible to the metadata extractor.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
)

// ShippingEvent is one demo row for the shipping_events table.
type ShippingEvent struct {
	EventID        string
	OrderID        string
	Carrier        string
	TrackingNumber string
	EventType      string
	EventTimestamp time.Time
	Location       string
	SourceSystem   string
	IngestedAt     time.Time
}

// Save implements bigquery.ValueSaver. The insert ID is a fresh UUID so
// retried Put calls do not duplicate rows.
func (e ShippingEvent) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"event_id":        e.EventID,
		"order_id":        e.OrderID,
		"carrier":         e.Carrier,
		"tracking_number": e.TrackingNumber,
		"event_type":      e.EventType,
		"event_timestamp": e.EventTimestamp.Format(time.RFC3339),
		"location":        e.Location,
		"source_system":   e.SourceSystem,
		"_ingested_at":    e.IngestedAt.Format(time.RFC3339),
	}, uuid.NewString(), nil
}

// DemoEvents returns the canned shipping events used to populate the
// streaming buffer.
func DemoEvents(now time.Time) []ShippingEvent {
	now = now.UTC()
	return []ShippingEvent{
		{
			EventID: "SE-STREAM-001", OrderID: "ORD-1005",
			Carrier: "FedEx", TrackingNumber: "FX901234",
			EventType: "delivered", EventTimestamp: now,
			Location: "Austin, TX", SourceSystem: "shipstation", IngestedAt: now,
		},
		{
			EventID: "SE-STREAM-002", OrderID: "ORD-1010",
			Carrier: "UPS", TrackingNumber: "UP123456",
			EventType: "picked_up", EventTimestamp: now,
			Location: "Warehouse, FL", SourceSystem: "shipstation", IngestedAt: now,
		},
		{
			EventID: "SE-STREAM-003", OrderID: "ORD-1010",
			Carrier: "UPS", TrackingNumber: "UP123456",
			EventType: "in_transit", EventTimestamp: now,
			Location: "Memphis, TN", SourceSystem: "shipstation", IngestedAt: now,
		},
	}
}

// Putter is the slice of the BigQuery inserter the writer needs.
type Putter interface {
	Put(ctx context.Context, src any) error
}

// Insert streams events through the inserter.
func Insert(ctx context.Context, ins Putter, events []ShippingEvent, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	savers := make([]bigquery.ValueSaver, len(events))
	for i, e := range events {
		savers[i] = e
	}
	if err := ins.Put(ctx, savers); err != nil {
		return fmt.Errorf("stream insert: %w", err)
	}
	logger.Info("streamed rows", "count", len(events))
	return nil
}
