package worker

// quote_sweeper.go
// Background goroutine that re-enqueues quotes stuck in status 'pending'
// (enqueue failed after the quote was recorded, or a worker died mid-job).
// Quotes that were swept too many times are marked errored and dead-lettered.

import (
	"context"
	"fmt"
	"time"

	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	sweepTickInterval = time.Minute
	sweepBatchSize    = 20
)

// QuoteEnqueuer is implemented by *Dispatcher.
type QuoteEnqueuer interface {
	EnqueuePricingQuote(ctx context.Context, payload PricingQuoteJob) error
}

type QuoteSweeperConfig struct {
	Quotes     repository.PricingQuoteRepository
	Dispatcher QuoteEnqueuer
	DLQ        DeadLetterQueue
	// StaleAfter is how long a quote may stay pending untouched.
	StaleAfter time.Duration
	// MaxSweeps bounds how often one quote is re-enqueued.
	MaxSweeps int
}

// StartQuoteSweeper ticks every minute until ctx is cancelled.
func StartQuoteSweeper(ctx context.Context, cfg QuoteSweeperConfig) {
	go func() {
		ticker := time.NewTicker(sweepTickInterval)
		defer ticker.Stop()

		log.Info().Msg("quote_sweeper: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("quote_sweeper: shutting down")
				return
			case <-ticker.C:
				sweepStaleQuotes(ctx, cfg, time.Now())
			}
		}
	}()
}

// sweepStaleQuotes returns the number of quotes re-enqueued.
func sweepStaleQuotes(ctx context.Context, cfg QuoteSweeperConfig, now time.Time) int {
	quotes, err := cfg.Quotes.ListStalePending(ctx, now.Add(-cfg.StaleAfter), sweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("quote_sweeper: failed to query stale quotes")
		return 0
	}
	if len(quotes) == 0 {
		return 0
	}

	log.Info().Int("count", len(quotes)).Msg("quote_sweeper: processing stale quotes")

	requeued := 0
	for i := range quotes {
		q := &quotes[i]
		q.Attempts++

		if q.Attempts > cfg.MaxSweeps {
			reason := fmt.Sprintf("quote stayed pending after %d sweeps", cfg.MaxSweeps)
			q.Status = model.QuoteStatusError
			q.LastError = &reason
			updated, err := cfg.Quotes.UpdatePending(ctx, q)
			if err != nil {
				log.Error().Err(err).Str("quote_id", q.ID.String()).Msg("quote_sweeper: failed to mark quote errored")
				continue
			}
			if !updated {
				continue // finished by a worker since the query
			}
			cfg.DLQ.Send(ctx, DLQEntry{
				OriginalQueue: QueuePricingQuote,
				JobType:       JobTypePricingQuote,
				Payload:       []byte(fmt.Sprintf(`{"quote_id":%q}`, q.ID.String())),
				Reason:        reason,
				Attempts:      q.Attempts,
			})
			continue
		}

		// Touch updated_at first so the next tick does not pick it up again.
		updated, err := cfg.Quotes.UpdatePending(ctx, q)
		if err != nil {
			log.Error().Err(err).Str("quote_id", q.ID.String()).Msg("quote_sweeper: failed to touch quote")
			continue
		}
		if !updated {
			continue
		}
		if err := cfg.Dispatcher.EnqueuePricingQuote(ctx, PricingQuoteJob{QuoteID: q.ID.String()}); err != nil {
			log.Warn().Err(err).Str("quote_id", q.ID.String()).Msg("quote_sweeper: enqueue failed")
			continue
		}
		requeued++
	}
	return requeued
}
