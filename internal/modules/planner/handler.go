package planner

import (
	"errors"
	"net/http"
	"time"

	"machinepark/internal/modules/availability"
	"machinepark/internal/pkg/response"
	"machinepark/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/drafts", h.CreateDraft)
	rg.GET("/drafts/:id", h.GetDraft)
	rg.DELETE("/drafts/:id", h.DiscardDraft)
	rg.POST("/drafts/:id/days/toggle", h.ToggleDate)
	rg.PUT("/drafts/:id/sync", h.SetSync)
	rg.PUT("/drafts/:id/unified-time", h.SetUnifiedTime)
	rg.PUT("/drafts/:id/days/:date/time", h.SetDayTime)
	rg.POST("/drafts/:id/batch/time", h.BatchTime)
	rg.POST("/drafts/:id/batch/quantity", h.BatchQuantity)
	rg.POST("/drafts/:id/submit", h.Submit)
}

func (h *Handler) CreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid draft request", fields)
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month, expected YYYY-MM")
		return
	}

	d, err := h.service.CreateDraft(c.Request.Context(), req.ServiceID, req.RequesterID, req.Quantity, month.Year(), month.Month())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toDraftResponse(d, nil))
}

func (h *Handler) GetDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	d, err := h.service.GetDraft(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDraftResponse(d, nil))
}

func (h *Handler) DiscardDraft(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	h.service.Discard(id)
	response.Success(c, http.StatusOK, gin.H{"discarded": true})
}

func (h *Handler) ToggleDate(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var req ToggleDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}
	h.dispatch(c, id, ToggleDate{Date: date})
}

func (h *Handler) SetSync(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var req SetSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.dispatch(c, id, SetSync{Enabled: *req.Enabled})
}

func (h *Handler) SetUnifiedTime(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	field, value, ok := h.timeEdit(c)
	if !ok {
		return
	}
	h.dispatch(c, id, SetUnifiedTime{Field: field, Value: value})
}

func (h *Handler) SetDayTime(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}
	field, value, ok := h.timeEdit(c)
	if !ok {
		return
	}
	h.dispatch(c, id, SetDayTime{Date: date, Field: field, Value: value})
}

func (h *Handler) BatchTime(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var req BatchTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	start, err := ParseTimeOfDay(req.Start)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start time")
		return
	}
	end, err := ParseTimeOfDay(req.End)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end time")
		return
	}
	h.dispatch(c, id, ApplyWindow{Start: start, End: end})
}

func (h *Handler) BatchQuantity(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	var req BatchQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.dispatch(c, id, ApplyQuantity{N: req.Quantity})
}

func (h *Handler) Submit(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	res, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"reservation": gin.H{
			"id":     res.ID,
			"status": res.Status,
			"days":   len(res.Days),
		},
	})
}

func (h *Handler) dispatch(c *gin.Context, id uuid.UUID, act Action) {
	d, out, err := h.service.Dispatch(id, act)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDraftResponse(d, &out))
}

func (h *Handler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid draft id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) timeEdit(c *gin.Context) (TimeField, *TimeOfDay, bool) {
	var req TimeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return "", nil, false
	}
	var value *TimeOfDay
	if req.Value != nil {
		t, err := ParseTimeOfDay(*req.Value)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid time, expected HH:MM")
			return "", nil, false
		}
		value = &t
	}
	return TimeField(req.Field), value, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found or expired")
	case errors.Is(err, ErrDateNotSelectable):
		response.Error(c, http.StatusBadRequest, "DATE_NOT_SELECTABLE", "Date is past, weekend, blocked or unavailable")
	case errors.Is(err, ErrSyncActive):
		response.Error(c, http.StatusConflict, "SYNC_ACTIVE", "Disable synchronized times to edit a single day")
	case errors.Is(err, ErrMissingTime),
		errors.Is(err, ErrEndBeforeStart),
		errors.Is(err, ErrDayNotSelected),
		errors.Is(err, ErrQuantityInvalid),
		errors.Is(err, ErrNothingSelected),
		errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNoCapacity), errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT", "Machines are no longer available for a selected day")
	case errors.Is(err, availability.ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Machine service not found")
	case errors.Is(err, availability.ErrSnapshotUnavailable):
		response.Error(c, http.StatusBadGateway, "SNAPSHOT_UNAVAILABLE", "Availability data could not be fetched, retry later")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
