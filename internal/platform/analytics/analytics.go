// Package analytics sends product usage events to PostHog. A Tracker without
// an API key drops every event, so callers never need to check.
package analytics

import (
	"context"
	"log/slog"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/posthog/posthog-go"
)

const EventSettlementRecorded = "settlement_recorded"

// Capturer is the part of posthog.Client the tracker uses.
type Capturer interface {
	Enqueue(posthog.Message) error
	Close() error
}

// Tracker wraps a PostHog client that may not be configured.
type Tracker struct {
	client Capturer
	logger *slog.Logger
}

// NewTracker creates a tracker for apiKey. An empty key yields a disabled tracker.
func NewTracker(apiKey, endpoint string, logger *slog.Logger) (*Tracker, error) {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, usage analytics disabled")
		return &Tracker{logger: logger}, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	logger.Info("PostHog client initialized", slog.String("endpoint", endpoint))
	return NewTrackerWithCapturer(client, logger), nil
}

// NewTrackerWithCapturer builds a tracker on an existing client.
func NewTrackerWithCapturer(client Capturer, logger *slog.Logger) *Tracker {
	return &Tracker{client: client, logger: logger}
}

func (t *Tracker) Enabled() bool {
	return t != nil && t.client != nil
}

// Track enqueues an event for distinctID. Delivery happens in the background.
func (t *Tracker) Track(distinctID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && t.logger != nil {
		t.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// PublishSettlementRecorded records who settled how much for which producer.
func (t *Tracker) PublishSettlementRecorded(_ context.Context, batch domain.SettlementBatch) error {
	t.Track(batch.CreatedBy, EventSettlementRecorded, map[string]any{
		"producer_id":    batch.ProducerID,
		"batch_id":       batch.BatchID,
		"product_count":  batch.ProductCount,
		"settled_amount": utils.FormatAmount(batch.SettledAmount),
	})
	return nil
}

var _ portssvc.SettlementEventPublisher = (*Tracker)(nil)

// Close flushes queued events.
func (t *Tracker) Close() error {
	if !t.Enabled() {
		return nil
	}
	return t.client.Close()
}
