package handler

import (
	"net/http"

	"github.com/ca-la/bin-sub002/internal/apierror"
	"github.com/ca-la/bin-sub002/internal/dto"
	"github.com/ca-la/bin-sub002/internal/middleware"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PricingHandler struct{ svc service.PricingService }

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// authorizeView loads the design and checks the caller may see its pricing.
// It writes the response and returns nil when the request must stop.
func (h *PricingHandler) authorizeView(c *gin.Context) *model.Design {
	id, ok := uuidParam(c, "designId")
	if !ok {
		return nil
	}
	design, err := h.svc.FindDesign(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return nil
	}
	if !middleware.CanViewPricing(middleware.GetClaims(c), design.UserID) {
		forbidden(c)
		return nil
	}
	return design
}

// GetPricing godoc
// @Summary Pricing tables of a design
// @Description Admins receive computed, override and final tables; the design
// @Description owner receives the final table only.
// @Tags pricing
// @Produce json
// @Param designId path string true "Design ID"
// @Success 200 {object} pricing.AllTables
// @Failure 400 {object} apierror.APIError "missing prerequisites"
// @Failure 403 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/product-designs/{designId}/pricing [get]
func (h *PricingHandler) GetPricing(c *gin.Context) {
	design := h.authorizeView(c)
	if design == nil {
		return
	}
	tables, err := h.svc.ComputeAllPricingTables(c.Request.Context(), design.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if middleware.CanManagePricing(middleware.GetClaims(c)) {
		c.JSON(http.StatusOK, tables)
		return
	}
	c.JSON(http.StatusOK, dto.FinalPricingResponse{FinalPricingTable: tables.Final})
}

// SetOverride godoc
// @Summary Replace the customer-facing pricing table
// @Tags pricing
// @Accept json
// @Param designId path string true "Design ID"
// @Param body body dto.SetOverrideRequest true "Override"
// @Success 204
// @Router /v1/product-designs/{designId}/pricing/override [put]
func (h *PricingHandler) SetOverride(c *gin.Context) {
	id, ok := uuidParam(c, "designId")
	if !ok {
		return
	}
	var req dto.SetOverrideRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetOverride(c.Request.Context(), id, req.PricingTable); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearOverride godoc
// @Summary Remove the pricing override
// @Tags pricing
// @Param designId path string true "Design ID"
// @Success 204
// @Router /v1/product-designs/{designId}/pricing/override [delete]
func (h *PricingHandler) ClearOverride(c *gin.Context) {
	id, ok := uuidParam(c, "designId")
	if !ok {
		return
	}
	if err := h.svc.ClearOverride(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPricing streams the final table as an xlsx workbook.
func (h *PricingHandler) ExportPricing(c *gin.Context) {
	design := h.authorizeView(c)
	if design == nil {
		return
	}

	f, filename, err := h.svc.ExportWorkbook(c.Request.Context(), design.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("design_id", design.ID.String()).Msg("write pricing workbook")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(apierror.MsgInternal))
	}
}
