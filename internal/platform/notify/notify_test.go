package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis records LPUSH calls; every other command panics through the nil embed.
type fakeRedis struct {
	redis.Cmdable
	key    string
	values []interface{}
	err    error
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.key = key
	f.values = append(f.values, values...)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(int64(len(f.values)))
	}
	return cmd
}

func sampleBatch() domain.SettlementBatch {
	a, b := "item-a", "item-b"
	return domain.SettlementBatch{
		BatchID:        "batch-1",
		ProducerID:     "producer-1",
		TotalAmount:    decimal.RequireFromString("500"),
		SettledAmount:  decimal.RequireFromString("250"),
		ProductCount:   2,
		ProofImageRef:  "proofs/receipt.jpg",
		SettlementDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Snapshots: []domain.SettlementSnapshot{
			{SnapshotID: "s1", LineItemID: &a},
			{SnapshotID: "s2", LineItemID: &b},
			{SnapshotID: "s3"},
		},
	}
}

func TestEncodeSettlementRecorded(t *testing.T) {
	at := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	raw, err := EncodeSettlementRecorded(sampleBatch(), at)
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, EventSettlementRecorded, ev.Type)
	assert.True(t, at.Equal(ev.OccurredAt))

	var payload SettlementRecordedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "batch-1", payload.BatchID)
	assert.Equal(t, "250.00", payload.SettledAmount)
	assert.Equal(t, "500.00", payload.TotalAmount)
	assert.Equal(t, []string{"item-a", "item-b"}, payload.LineItemIDs)
}

func TestRedisPublisher_PushesToConfiguredKey(t *testing.T) {
	fake := &fakeRedis{}
	pub := NewRedisPublisher(fake, "settlements:recorded")

	require.NoError(t, pub.PublishSettlementRecorded(context.Background(), sampleBatch()))
	assert.Equal(t, "settlements:recorded", fake.key)
	require.Len(t, fake.values, 1)
	assert.Contains(t, string(fake.values[0].([]byte)), `"batchID":"batch-1"`)
}

func TestRedisPublisher_ReturnsPushError(t *testing.T) {
	fake := &fakeRedis{err: errors.New("connection refused")}
	pub := NewRedisPublisher(fake, "k")

	err := pub.PublishSettlementRecorded(context.Background(), sampleBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch-1")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := LogPublisher{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, pub.PublishSettlementRecorded(context.Background(), sampleBatch()))
	assert.Contains(t, buf.String(), "batch_id=batch-1")
	assert.Contains(t, buf.String(), "event="+EventSettlementRecorded)
}

func TestLogPublisher_DefaultLogger(t *testing.T) {
	assert.NoError(t, LogPublisher{}.PublishSettlementRecorded(context.Background(), sampleBatch()))
}

func TestFanout_TriesEveryPublisher(t *testing.T) {
	failing := &fakeRedis{err: errors.New("connection refused")}
	working := &fakeRedis{}
	fan := Fanout{NewRedisPublisher(failing, "a"), NewRedisPublisher(working, "b"), LogPublisher{}}

	err := fan.PublishSettlementRecorded(context.Background(), sampleBatch())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "b", working.key)
	assert.Len(t, working.values, 1)
}
