package planner

import (
	"context"
	"time"

	"machinepark/internal/domain"
	"machinepark/internal/modules/availability"
)

// SnapshotProvider supplies the availability snapshot a draft is opened
// against. Implemented by the availability service.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, serviceID int64, year int, month time.Month) (*availability.Snapshot, error)
}

// ReservationRepository persists a submitted reservation together with its
// initial usage slots. Create re-checks capacity inside a transaction so a
// concurrent submission cannot over-book the pool.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation, slots []domain.UsageSlot, capacity int) error
}
