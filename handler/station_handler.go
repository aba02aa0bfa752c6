package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/service"
)

type StationHandler struct {
	stationService *service.StationService
}

func NewStationHandler(stationService *service.StationService) *StationHandler {
	return &StationHandler{
		stationService: stationService,
	}
}

// List handles GET /stations with an optional ?q= name filter.
func (h *StationHandler) List(c *gin.Context) {
	stations, err := h.stationService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list stations", err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

func (h *StationHandler) Create(c *gin.Context) {
	var req dto.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	station, err := h.stationService.Create(c.Request.Context(), &req)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create station", err)
		return
	}
	c.JSON(http.StatusCreated, station)
}

// Rename handles PATCH /stations/:id.
func (h *StationHandler) Rename(c *gin.Context) {
	var req dto.RenameStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if err := h.stationService.Rename(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Activate handles POST /stations/:id/activate.
func (h *StationHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate handles POST /stations/:id/deactivate.
func (h *StationHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *StationHandler) setActive(c *gin.Context, active bool) {
	if err := h.stationService.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *StationHandler) sendServiceError(c *gin.Context, err error) {
	if errors.Is(err, dto.ErrNotFound) {
		sendError(c, http.StatusNotFound, "Station not found", err)
		return
	}
	sendError(c, http.StatusInternalServerError, "Station operation failed", err)
}
