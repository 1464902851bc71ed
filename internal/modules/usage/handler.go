package usage

import (
	"errors"
	"net/http"
	"strconv"

	"machinepark/internal/domain"
	"machinepark/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/:id/usage", h.GetUsage)
	rg.PUT("/reservations/:id/usage/slots/:day", h.EditSlot)
	rg.POST("/reservations/:id/usage/complete-all", h.CompleteAll)
	rg.POST("/reservations/:id/usage/finalize", h.Finalize)
}

func (h *Handler) GetUsage(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}
	slots, calc, err := h.service.Cost(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UsageResponse{ReservationID: id, Slots: slots, Cost: calc})
}

func (h *Handler) EditSlot(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}
	dayNum, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayNum < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid day number")
		return
	}

	var req EditSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	var status *domain.SlotStatus
	if req.Status != nil {
		st := domain.SlotStatus(*req.Status)
		status = &st
	}

	slot, err := h.service.EditSlot(c.Request.Context(), id, dayNum, req.StartTime, req.EndTime, status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) CompleteAll(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}
	slots, err := h.service.CompleteAll(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UsageResponse{ReservationID: id, Slots: slots})
}

func (h *Handler) Finalize(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}
	calc, err := h.service.Finalize(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cost": calc, "finalized": true})
}

func (h *Handler) reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ongoing *OngoingSlotsError
	switch {
	case errors.As(err, &ongoing):
		response.ErrorWithDetails(c, http.StatusConflict, "ONGOING_SLOTS",
			"Every slot must be completed or cancelled before finalization",
			gin.H{"ongoing_count": ongoing.Count})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSlotNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrSlotCancelled), errors.Is(err, ErrStatusFinal):
		response.Error(c, http.StatusConflict, "SLOT_FROZEN", err.Error())
	case errors.Is(err, ErrInvalidTimes), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process usage")
	}
}
