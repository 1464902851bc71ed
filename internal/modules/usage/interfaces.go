package usage

import (
	"context"

	"machinepark/internal/domain"
)

// ReservationRepository resolves submitted reservations.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// ServiceRepository resolves the machine service for its billing rate.
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MachineService, error)
}

// UsageRepository stores the per-day usage slots of a reservation.
type UsageRepository interface {
	ListSlots(ctx context.Context, reservationID int64) ([]domain.UsageSlot, error)
	UpdateSlot(ctx context.Context, slot *domain.UsageSlot) error
	UpdateSlots(ctx context.Context, slots []domain.UsageSlot) error
	SaveReconciliation(ctx context.Context, reservationID int64, slots []domain.UsageSlot, adjustedCost float64, totalMinutes int) error
}

// DowntimeRepository lists the downtime logged against a reservation's
// machines.
type DowntimeRepository interface {
	ListForReservation(ctx context.Context, reservationID int64) ([]domain.DowntimeEntry, error)
}
