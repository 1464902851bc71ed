package domain

import "time"

type SlotStatus string

const (
	SlotOngoing   SlotStatus = "ongoing"
	SlotCompleted SlotStatus = "completed"
	SlotCancelled SlotStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s SlotStatus) Terminal() bool {
	return s == SlotCompleted || s == SlotCancelled
}

// UsageSlot records the actual machine usage for one day of a reservation.
// Created when the reservation is submitted, edited during reconciliation.
type UsageSlot struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservation_id" gorm:"uniqueIndex:uq_usage_slot,priority:1"`
	DayNum        int        `json:"day_num" gorm:"uniqueIndex:uq_usage_slot,priority:2"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        SlotStatus `json:"status"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DowntimeEntry is a logged machine stoppage charged against a reservation.
// Read-only input to the usage reconciler.
type DowntimeEntry struct {
	ID              int64     `json:"id"`
	ReservationID   int64     `json:"reservation_id"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0"`
	Cause           string    `json:"cause,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
