package usage

import (
	"time"

	"machinepark/internal/domain"
)

// EditSlotRequest carries a partial update: absent fields are untouched.
type EditSlotRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=ongoing completed cancelled"`
}

type UsageResponse struct {
	ReservationID int64              `json:"reservation_id"`
	Slots         []domain.UsageSlot `json:"slots"`
	Cost          *CostCalculation   `json:"cost,omitempty"`
}
