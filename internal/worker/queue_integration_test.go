//go:build integration

package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ca-la/bin-sub002/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestDispatcherPoolAndDLQ_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	got := make(chan json.RawMessage, 1)
	pool := NewPool(rdb)
	pool.Register(QueuePricingQuote, handlerFunc(func(_ context.Context, raw json.RawMessage) error {
		got <- raw
		return nil
	}))
	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	pool.Start(workerCtx, 1)

	require.NoError(t, NewDispatcher(rdb).EnqueuePricingQuote(ctx, PricingQuoteJob{QuoteID: "q-42"}))
	select {
	case raw := <-got:
		assert.JSONEq(t, `{"quote_id":"q-42"}`, string(raw))
	case <-time.After(10 * time.Second):
		t.Fatal("job was not processed")
	}

	dlq := NewRedisDLQ(rdb)
	dlq.Send(ctx, DLQEntry{OriginalQueue: QueuePricingQuote, JobType: JobTypePricingQuote, Reason: "boom", Attempts: 3})
	n, err := dlq.Length(ctx, QueuePricingQuote)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

type handlerFunc func(ctx context.Context, raw json.RawMessage) error

func (f handlerFunc) Process(ctx context.Context, raw json.RawMessage) error { return f(ctx, raw) }
