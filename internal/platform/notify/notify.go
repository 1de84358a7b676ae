// Package notify publishes settlement events for downstream consumers
// (receipt printing, SMS to producers) without blocking the request path.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/redis/go-redis/v9"
)

const EventSettlementRecorded = "settlement.recorded"

// Event is the envelope pushed onto the events list.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// SettlementRecordedPayload is the body of a settlement.recorded event.
type SettlementRecordedPayload struct {
	BatchID        string    `json:"batchID"`
	ProducerID     string    `json:"producerID"`
	SettledAmount  string    `json:"settledAmount"`
	TotalAmount    string    `json:"totalAmount"`
	ProductCount   int       `json:"productCount"`
	ProofImageRef  string    `json:"proofImageRef"`
	SettlementDate time.Time `json:"settlementDate"`
	LineItemIDs    []string  `json:"lineItemIDs"`
}

// NewRedisClient parses redisURL and checks connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// RedisPublisher LPUSHes JSON events onto a Redis list.
type RedisPublisher struct {
	rdb redis.Cmdable
	key string
}

var _ portssvc.SettlementEventPublisher = (*RedisPublisher)(nil)

func NewRedisPublisher(rdb redis.Cmdable, key string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, key: key}
}

func (p *RedisPublisher) PublishSettlementRecorded(ctx context.Context, batch domain.SettlementBatch) error {
	encoded, err := EncodeSettlementRecorded(batch, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := p.rdb.LPush(ctx, p.key, encoded).Err(); err != nil {
		return fmt.Errorf("failed to push settlement event for batch %s: %w", batch.BatchID, err)
	}
	return nil
}

// EncodeSettlementRecorded builds the JSON envelope for a committed batch.
func EncodeSettlementRecorded(batch domain.SettlementBatch, at time.Time) ([]byte, error) {
	ids := make([]string, 0, len(batch.Snapshots))
	for _, s := range batch.Snapshots {
		if s.LineItemID != nil {
			ids = append(ids, *s.LineItemID)
		}
	}
	payload, err := json.Marshal(SettlementRecordedPayload{
		BatchID:        batch.BatchID,
		ProducerID:     batch.ProducerID,
		SettledAmount:  utils.FormatAmount(batch.SettledAmount),
		TotalAmount:    utils.FormatAmount(batch.TotalAmount),
		ProductCount:   batch.ProductCount,
		ProofImageRef:  batch.ProofImageRef,
		SettlementDate: batch.SettlementDate,
		LineItemIDs:    ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode settlement payload: %w", err)
	}
	return json.Marshal(Event{Type: EventSettlementRecorded, OccurredAt: at, Payload: payload})
}

// LogPublisher only logs events. It is used when no Redis URL is configured.
// A nil Logger falls back to slog.Default.
type LogPublisher struct {
	Logger *slog.Logger
}

var _ portssvc.SettlementEventPublisher = LogPublisher{}

func (p LogPublisher) PublishSettlementRecorded(ctx context.Context, batch domain.SettlementBatch) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Settlement recorded",
		slog.String("event", EventSettlementRecorded),
		slog.String("batch_id", batch.BatchID),
		slog.String("producer_id", batch.ProducerID),
		slog.String("settled_amount", utils.FormatAmount(batch.SettledAmount)))
	return nil
}

// Fanout hands every event to each publisher in order. All publishers are
// tried; their errors are joined.
type Fanout []portssvc.SettlementEventPublisher

var _ portssvc.SettlementEventPublisher = Fanout(nil)

func (f Fanout) PublishSettlementRecorded(ctx context.Context, batch domain.SettlementBatch) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishSettlementRecorded(ctx, batch); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
