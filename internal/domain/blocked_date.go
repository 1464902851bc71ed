package domain

import "time"

// BlockedDate is a day the administrators closed for reservations.
// Read-only to the scheduling core.
type BlockedDate struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date" gorm:"uniqueIndex"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
