package domain

import "time"

// MachineService is a bookable machine type. Capacity is the number of
// interchangeable machines of this type available to the service.
type MachineService struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Capacity      int       `json:"capacity" validate:"required,gte=1"`
	RatePerMinute float64   `json:"rate_per_minute" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
