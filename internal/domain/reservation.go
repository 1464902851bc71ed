package domain

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationFinalized ReservationStatus = "finalized"
)

// Reservation is a submitted multi-day machine reservation. Days carry the
// requested time window and machine quantity per calendar date.
type Reservation struct {
	ID          int64             `json:"id"`
	ServiceID   int64             `json:"service_id" validate:"required"`
	RequesterID int64             `json:"requester_id" validate:"required"`
	Status      ReservationStatus `json:"status"`
	// Filled during usage reconciliation.
	TotalMinutes int        `json:"total_minutes,omitempty"`
	AdjustedCost float64    `json:"adjusted_cost,omitempty"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Days []ReservationDay `json:"days,omitempty" gorm:"foreignKey:ReservationID"`
}

// ReservationDay is one calendar date inside a reservation. StartMinute and
// EndMinute are minutes since midnight; both nil means the reservation
// consumes the whole day.
type ReservationDay struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id" gorm:"uniqueIndex:uq_reservation_day,priority:1"`
	Date          time.Time `json:"date" gorm:"uniqueIndex:uq_reservation_day,priority:2"`
	StartMinute   *int      `json:"start_minute,omitempty"`
	EndMinute     *int      `json:"end_minute,omitempty"`
	Quantity      int       `json:"quantity" validate:"gte=1"`
}
