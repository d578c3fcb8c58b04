package handler

import (
	"fmt"
	"net/http"

	"github.com/ca-la/bin-sub002/internal/middleware"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type QuotesHandler struct {
	quotes  service.QuoteService
	pricing service.PricingService
}

func NewQuotesHandler(quotes service.QuoteService, pricing service.PricingService) *QuotesHandler {
	return &QuotesHandler{quotes: quotes, pricing: pricing}
}

func quotePDFURL(q *model.PricingQuote) string {
	return fmt.Sprintf("/v1/pricing-quotes/%s/pdf", q.ID)
}

// RequestQuote godoc
// @Summary Request a PDF quote of the final pricing table
// @Tags quotes
// @Produce json
// @Param designId path string true "Design ID"
// @Success 202 {object} dto.QuoteResponse
// @Failure 400 {object} apierror.APIError "missing prerequisites"
// @Router /v1/product-designs/{designId}/pricing/quotes [post]
func (h *QuotesHandler) RequestQuote(c *gin.Context) {
	id, ok := uuidParam(c, "designId")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	design, err := h.pricing.FindDesign(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !middleware.CanViewPricing(claims, design.UserID) {
		forbidden(c)
		return
	}

	q, err := h.quotes.Request(c.Request.Context(), design.ID, claims.UserUUID())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, service.MapQuote(q, quotePDFURL(q)))
}

// loadQuote returns the quote if the caller may view its design's pricing.
func (h *QuotesHandler) loadQuote(c *gin.Context) *model.PricingQuote {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil
	}
	q, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return nil
	}
	claims := middleware.GetClaims(c)
	if !middleware.CanManagePricing(claims) && claims.UserUUID() != q.RequestedBy {
		design, err := h.pricing.FindDesign(c.Request.Context(), q.DesignID)
		if err != nil {
			writeServiceError(c, err)
			return nil
		}
		if !middleware.CanViewPricing(claims, design.UserID) {
			forbidden(c)
			return nil
		}
	}
	return q
}

func (h *QuotesHandler) GetQuote(c *gin.Context) {
	q := h.loadQuote(c)
	if q == nil {
		return
	}
	c.JSON(http.StatusOK, service.MapQuote(q, quotePDFURL(q)))
}

func (h *QuotesHandler) DownloadPDF(c *gin.Context) {
	q := h.loadQuote(c)
	if q == nil {
		return
	}
	path, err := h.quotes.PDFPath(c.Request.Context(), q.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, fmt.Sprintf("quote_%s.pdf", q.ID))
}
