package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	payloads []json.RawMessage
	err      error
}

func (h *recordingHandler) Process(_ context.Context, raw json.RawMessage) error {
	h.payloads = append(h.payloads, raw)
	return h.err
}

func TestPoolDispatch_RoutesByQueue(t *testing.T) {
	p := NewPool(nil)
	h := &recordingHandler{}
	p.Register(QueuePricingQuote, h)

	p.dispatch(context.Background(), QueuePricingQuote, `{"type":"pricing_quote","payload":{"quote_id":"q1"}}`)
	p.dispatch(context.Background(), "jobs:unknown", `{"type":"other","payload":{}}`)
	p.dispatch(context.Background(), QueuePricingQuote, `not json`)

	if assert.Len(t, h.payloads, 1) {
		assert.JSONEq(t, `{"quote_id":"q1"}`, string(h.payloads[0]))
	}
}

func TestPoolDispatch_HandlerErrorIsContained(t *testing.T) {
	p := NewPool(nil)
	h := &recordingHandler{err: errors.New("render failed")}
	p.Register(QueuePricingQuote, h)

	assert.NotPanics(t, func() {
		p.dispatch(context.Background(), QueuePricingQuote, `{"type":"pricing_quote","payload":{"quote_id":"q1"}}`)
	})
	assert.Len(t, h.payloads, 1)
}

var _ redis.Hook = (*countingHook)(nil)

type countingHook struct{ calls atomic.Int64 }

func (h *countingHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *countingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.calls.Add(1)
		return next(ctx, cmd)
	}
}

func (h *countingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestPool_BacksOffWhileRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	hook := &countingHook{}
	rdb.AddHook(hook)

	p := NewPool(rdb)
	p.errBackoff = 100 * time.Millisecond
	p.Register(QueuePricingQuote, &recordingHandler{})

	ctx, cancel := context.WithTimeout(context.Background(), 350*time.Millisecond)
	defer cancel()
	p.Start(ctx, 1)
	<-ctx.Done()

	// Roughly one poll per backoff window instead of a hot loop.
	assert.Positive(t, hook.calls.Load())
	assert.LessOrEqual(t, hook.calls.Load(), int64(10))
}
