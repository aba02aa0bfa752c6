package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/service"
)

type TaxHandler struct {
	taxService *service.TaxService
}

func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
	}
}

// List handles GET /taxes with optional status and tax_type filters.
func (h *TaxHandler) List(c *gin.Context) {
	status := dto.TaxStatus(c.Query("status"))
	taxType := dto.TaxType(c.Query("tax_type"))

	taxes, err := h.taxService.List(c.Request.Context(), status, taxType)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list taxes", err)
		return
	}
	c.JSON(http.StatusOK, taxes)
}

func (h *TaxHandler) Get(c *gin.Context) {
	tax, err := h.taxService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

func (h *TaxHandler) Create(c *gin.Context) {
	var req dto.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	tax, err := h.taxService.Create(c.Request.Context(), &req)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tax)
}

func (h *TaxHandler) Update(c *gin.Context) {
	var req dto.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	tax, err := h.taxService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

func (h *TaxHandler) Delete(c *gin.Context) {
	if err := h.taxService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AdvanceStatus handles POST /taxes/:id/status/next.
func (h *TaxHandler) AdvanceStatus(c *gin.Context) {
	tax, err := h.taxService.AdvanceStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

// RevertStatus handles POST /taxes/:id/status/revert.
func (h *TaxHandler) RevertStatus(c *gin.Context) {
	tax, err := h.taxService.RevertStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

func (h *TaxHandler) Stats(c *gin.Context) {
	stats, err := h.taxService.Stats(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to aggregate stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *TaxHandler) sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrNotFound):
		sendError(c, http.StatusNotFound, "Tax record not found", err)
	case errors.Is(err, dto.ErrInvalidTaxType), errors.Is(err, dto.ErrInvalidDueDate):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, dto.ErrNoStatusTransition):
		sendError(c, http.StatusConflict, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "Tax operation failed", err)
	}
}
