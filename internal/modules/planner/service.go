package planner

import (
	"context"
	"errors"
	"time"

	"machinepark/internal/domain"
	"machinepark/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	store        *Store
	snapshots    SnapshotProvider
	reservations ReservationRepository
}

func NewService(store *Store, snapshots SnapshotProvider, reservations ReservationRepository) *Service {
	return &Service{
		store:        store,
		snapshots:    snapshots,
		reservations: reservations,
	}
}

// CreateDraft opens a draft against a fresh availability snapshot of the
// requested month.
func (s *Service) CreateDraft(ctx context.Context, serviceID, requesterID int64, quantity int, year int, month time.Month) (Draft, error) {
	if quantity < 1 {
		return Draft{}, ErrQuantityInvalid
	}

	snap, err := s.snapshots.Snapshot(ctx, serviceID, year, month)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{
		ID:            uuid.New(),
		ServiceID:     serviceID,
		RequesterID:   requesterID,
		Quantity:      quantity,
		Capacity:      snap.Capacity,
		RatePerMinute: snap.RatePerMinute,
		Avail:         snap.Days,
		Blocked:       snap.Blocked,
		Today:         startOfToday(),
	}
	s.store.Put(d)
	return d, nil
}

func (s *Service) GetDraft(id uuid.UUID) (Draft, error) {
	d, ok := s.store.Get(id)
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return d, nil
}

// Dispatch runs one reducer action against the stored draft.
func (s *Service) Dispatch(id uuid.UUID, act Action) (Draft, Outcome, error) {
	var out Outcome
	next, err := s.store.Mutate(id, func(d Draft) (Draft, error) {
		d.Today = startOfToday()
		nd, o, err := d.Apply(act)
		out = o
		return nd, err
	})
	return next, out, err
}

// Discard drops an abandoned draft. Nothing was persisted, so there is no
// compensating action.
func (s *Service) Discard(id uuid.UUID) {
	s.store.Delete(id)
}

// Submit validates every selected day and hands the reservation to the
// persistence layer. The repository re-checks capacity transactionally;
// on success the draft is destroyed.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	d, ok := s.store.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	if len(d.Days) == 0 {
		return nil, ErrNothingSelected
	}

	res := &domain.Reservation{
		ServiceID:   d.ServiceID,
		RequesterID: d.RequesterID,
		Status:      domain.ReservationActive,
	}
	slots := make([]domain.UsageSlot, 0, len(d.Days))
	for i, day := range d.Days {
		if err := ValidateWindow(day.Start, day.End); err != nil {
			return nil, err
		}
		if day.Quantity < 1 || day.Quantity > day.MaxMachines {
			return nil, ErrQuantityInvalid
		}
		sm, em := int(*day.Start), int(*day.End)
		res.Days = append(res.Days, domain.ReservationDay{
			Date:        day.Date,
			StartMinute: &sm,
			EndMinute:   &em,
			Quantity:    day.Quantity,
		})
		slots = append(slots, domain.UsageSlot{
			DayNum: i + 1,
			Status: domain.SlotOngoing,
		})
	}

	if err := s.reservations.Create(ctx, res, slots, d.Capacity); err != nil {
		if errors.Is(err, repository.ErrNoCapacity) {
			return nil, ErrNoCapacity
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.store.Delete(id)
	return res, nil
}

func startOfToday() time.Time {
	return midnight(time.Now().UTC())
}
