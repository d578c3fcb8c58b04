package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ca-la/bin-sub002/internal/dto"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/repository"
	"github.com/ca-la/bin-sub002/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuoteDispatcher enqueues quote rendering jobs; *worker.Dispatcher in
// production.
type QuoteDispatcher interface {
	EnqueuePricingQuote(ctx context.Context, payload worker.PricingQuoteJob) error
}

// QuoteService requests and tracks asynchronously rendered PDF quotes.
type QuoteService interface {
	// Request records a pending quote and enqueues its rendering. The design
	// must be priceable at request time.
	Request(ctx context.Context, designID, requestedBy uuid.UUID) (*model.PricingQuote, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PricingQuote, error)
	// PDFPath returns the rendered file, or ErrQuoteNotReady.
	PDFPath(ctx context.Context, id uuid.UUID) (string, error)
}

type quoteService struct {
	repo       repository.PricingQuoteRepository
	pricing    PricingService
	dispatcher QuoteDispatcher
}

func NewQuoteService(repo repository.PricingQuoteRepository, pricing PricingService, dispatcher QuoteDispatcher) QuoteService {
	return &quoteService{repo: repo, pricing: pricing, dispatcher: dispatcher}
}

// MapQuote converts a quote into its response; pdfURL is only set when the
// quote is ready.
func MapQuote(q *model.PricingQuote, pdfURL string) dto.QuoteResponse {
	resp := dto.QuoteResponse{
		ID:        q.ID,
		DesignID:  q.DesignID,
		Status:    q.Status,
		LastError: q.LastError,
		CreatedAt: q.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: q.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if q.Status == model.QuoteStatusReady && pdfURL != "" {
		resp.PDFURL = &pdfURL
	}
	return resp
}

func (s *quoteService) Request(ctx context.Context, designID, requestedBy uuid.UUID) (*model.PricingQuote, error) {
	// Fail fast on unpriceable designs instead of queueing a job that can
	// only fail.
	if _, err := s.pricing.ComputeAllPricingTables(ctx, designID); err != nil {
		return nil, err
	}

	q := &model.PricingQuote{
		ID:          uuid.New(),
		DesignID:    designID,
		RequestedBy: requestedBy,
		Status:      model.QuoteStatusPending,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if err := s.dispatcher.EnqueuePricingQuote(ctx, worker.PricingQuoteJob{QuoteID: q.ID.String()}); err != nil {
		// The quote stays pending; the stale quote sweeper re-enqueues it.
		log.Warn().Err(err).Str("quote_id", q.ID.String()).Msg("quote: enqueue failed")
	}
	return q, nil
}

func (s *quoteService) Get(ctx context.Context, id uuid.UUID) (*model.PricingQuote, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "quote")
	}
	return q, nil
}

func (s *quoteService) PDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if q.Status != model.QuoteStatusReady || q.PDFPath == nil {
		return "", ErrQuoteNotReady
	}
	return *q.PDFPath, nil
}
