package worker

// quote_worker.go
// Processes QueuePricingQuote jobs: computes the design's final pricing
// table, renders it to PDF and marks the quote ready. Transient failures are
// retried with exponential backoff; exhausted or permanent failures mark the
// quote as errored and move the job to the DLQ.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ca-la/bin-sub002/internal/apierror"
	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/pricing"
	"github.com/ca-la/bin-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// PricingComputer is the slice of the pricing service the worker needs.
type PricingComputer interface {
	FindDesign(ctx context.Context, id uuid.UUID) (*model.Design, error)
	ComputeAllPricingTables(ctx context.Context, designID uuid.UUID) (*pricing.AllTables, error)
}

// QuoteRenderer writes a quote document under dir and returns its path.
type QuoteRenderer func(doc infra.QuoteDocument, dir string) (string, error)

type QuoteWorkerConfig struct {
	StoragePath string
	CompanyName string
	MaxAttempts int
}

type QuoteWorker struct {
	quotes  repository.PricingQuoteRepository
	pricing PricingComputer
	dlq     DeadLetterQueue
	render  QuoteRenderer
	cfg     QuoteWorkerConfig
}

func NewQuoteWorker(
	quotes repository.PricingQuoteRepository,
	pricing PricingComputer,
	dlq DeadLetterQueue,
	render QuoteRenderer,
	cfg QuoteWorkerConfig,
) *QuoteWorker {
	if render == nil {
		render = infra.GenerateQuotePDF
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &QuoteWorker{quotes: quotes, pricing: pricing, dlq: dlq, render: render, cfg: cfg}
}

// Process handles a single quote job:
//  1. Parse PricingQuoteJob and load the quote (ready quotes are skipped)
//  2. Compute the final table and render the PDF, with retries
//  3. Mark the quote ready, or errored + DLQ
func (w *QuoteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PricingQuoteJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("quote_worker: invalid payload: %w", err)
	}
	quoteID, err := uuid.Parse(payload.QuoteID)
	if err != nil {
		return fmt.Errorf("quote_worker: invalid quote_id %q: %w", payload.QuoteID, err)
	}

	quote, err := w.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return fmt.Errorf("quote_worker: load quote %s: %w", quoteID, err)
	}
	if quote.Status == model.QuoteStatusReady {
		log.Debug().Str("quote_id", payload.QuoteID).Msg("quote_worker: already ready, skipping")
		return nil
	}

	var (
		pdfPath string
		final   json.RawMessage
	)
	attempts, renderErr := withRetry(ctx, w.cfg.MaxAttempts, func(attempt int) error {
		path, table, err := w.renderQuote(ctx, quote)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("quote_id", payload.QuoteID).
				Msg("quote_worker: attempt failed")
			return err
		}
		pdfPath, final = path, table
		return nil
	})
	quote.Attempts += attempts

	if renderErr != nil {
		log.Error().
			Err(renderErr).
			Int("attempts", attempts).
			Str("quote_id", payload.QuoteID).
			Msg("quote_worker: quote failed")

		msg := quoteFailureMessage(renderErr)
		quote.Status = model.QuoteStatusError
		quote.LastError = &msg
		if err := w.quotes.Update(ctx, quote); err != nil {
			log.Error().Err(err).Str("quote_id", payload.QuoteID).Msg("quote_worker: failed to mark quote errored")
		}
		w.dlq.Send(ctx, DLQEntry{
			OriginalQueue: QueuePricingQuote,
			JobType:       JobTypePricingQuote,
			Payload:       raw,
			Reason:        renderErr.Error(),
			Attempts:      quote.Attempts,
		})
		return renderErr
	}

	quote.Status = model.QuoteStatusReady
	quote.PDFPath = &pdfPath
	quote.PricingTable = datatypes.JSON(final)
	quote.LastError = nil
	if err := w.quotes.Update(ctx, quote); err != nil {
		return fmt.Errorf("quote_worker: mark quote %s ready: %w", quoteID, err)
	}
	log.Info().Str("quote_id", payload.QuoteID).Str("pdf", pdfPath).Msg("quote_worker: quote ready")
	return nil
}

// quoteFailureMessage is the last_error shown to the requester. Only missing
// prerequisites are described; anything else gets the generic message.
func quoteFailureMessage(err error) string {
	var missing *pricing.MissingPrerequisitesError
	if errors.As(err, &missing) {
		return "Design can no longer be priced: " + missing.Message
	}
	return apierror.MsgInternal
}

// renderQuote returns the PDF path and the final table it was rendered
// from. Errors that retrying cannot fix are marked Permanent.
func (w *QuoteWorker) renderQuote(ctx context.Context, quote *model.PricingQuote) (string, json.RawMessage, error) {
	design, err := w.pricing.FindDesign(ctx, quote.DesignID)
	if err != nil {
		return "", nil, err
	}
	tables, err := w.pricing.ComputeAllPricingTables(ctx, quote.DesignID)
	if err != nil {
		if pricing.IsMissingPrerequisites(err) {
			return "", nil, Permanent(err)
		}
		return "", nil, err
	}

	var table pricing.Table
	if err := json.Unmarshal(tables.Final, &table); err != nil {
		return "", nil, Permanent(fmt.Errorf("decode final pricing table: %w", err))
	}

	path, err := w.render(infra.QuoteDocument{
		QuoteID:     quote.ID.String(),
		CompanyName: w.cfg.CompanyName,
		DesignTitle: design.Title,
		GeneratedAt: time.Now(),
		Table:       table,
	}, w.cfg.StoragePath)
	if err != nil {
		return "", nil, err
	}
	return path, tables.Final, nil
}
