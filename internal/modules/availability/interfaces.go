package availability

import (
	"context"
	"time"

	"machinepark/internal/domain"
)

// ReservationRepository lists reservations whose days intersect a date range.
type ReservationRepository interface {
	ListForServiceBetween(ctx context.Context, serviceID int64, from, to time.Time) ([]domain.Reservation, error)
}

// BlockedDateRepository lists administrator-blocked dates.
type BlockedDateRepository interface {
	ListDates(ctx context.Context) ([]time.Time, error)
}

// ServiceRepository resolves machine services and their capacity.
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MachineService, error)
}
