package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.GET("/services/:id/availability", h.MonthAvailability)
}

func (h *Handler) MonthAvailability(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	month, err := time.Parse("2006-01", c.DefaultQuery("month", time.Now().UTC().Format("2006-01")))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month, expected YYYY-MM")
		return
	}

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid quantity")
		return
	}

	res, err := h.service.MonthAvailability(c.Request.Context(), serviceID, month.Year(), month.Month(), quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity must be at least 1")
		case errors.Is(err, ErrServiceNotFound):
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Machine service not found")
		case errors.Is(err, ErrSnapshotUnavailable):
			// Degraded state: report the failure instead of guessing at free machines.
			response.Error(c, http.StatusBadGateway, "SNAPSHOT_UNAVAILABLE", "Availability data could not be fetched, retry later")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}
