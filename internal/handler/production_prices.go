package handler

import (
	"net/http"

	"github.com/ca-la/bin-sub002/internal/dto"
	"github.com/ca-la/bin-sub002/internal/middleware"
	"github.com/ca-la/bin-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductionPricesHandler struct{ svc service.ProductionPriceService }

func NewProductionPricesHandler(svc service.ProductionPriceService) *ProductionPricesHandler {
	return &ProductionPricesHandler{svc: svc}
}

// List returns a partner's price table. Partners may read their own.
func (h *ProductionPricesHandler) List(c *gin.Context) {
	vendorID, ok := uuidParam(c, "vendorId")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if !middleware.CanManagePricing(claims) && claims.UserUUID() != vendorID {
		forbidden(c)
		return
	}
	resp, err := h.svc.List(c.Request.Context(), vendorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductionPricesHandler) Create(c *gin.Context) {
	vendorID, ok := uuidParam(c, "vendorId")
	if !ok {
		return
	}
	var req dto.CreateProductionPriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), vendorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductionPricesHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
