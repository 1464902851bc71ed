package usage

import (
	"context"
	"errors"
	"time"

	"machinepark/internal/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	services     ServiceRepository
	usage        UsageRepository
	downtime     DowntimeRepository
}

func NewService(reservations ReservationRepository, services ServiceRepository, usage UsageRepository, downtime DowntimeRepository) *Service {
	return &Service{
		reservations: reservations,
		services:     services,
		usage:        usage,
		downtime:     downtime,
	}
}

type reconciliationInput struct {
	reservation *domain.Reservation
	slots       []domain.UsageSlot
	downtime    []domain.DowntimeEntry
	rate        float64
}

// load resolves the reservation, then fetches rate, slots and downtime
// concurrently and merges them once all resolve.
func (s *Service) load(ctx context.Context, reservationID int64) (*reconciliationInput, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	in := &reconciliationInput{reservation: res}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		svc, err := s.services.GetByID(gctx, res.ServiceID)
		if err != nil {
			return err
		}
		in.rate = svc.RatePerMinute
		return nil
	})
	g.Go(func() error {
		var err error
		in.slots, err = s.usage.ListSlots(gctx, reservationID)
		return err
	})
	g.Go(func() error {
		var err error
		in.downtime, err = s.downtime.ListForReservation(gctx, reservationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// Cost recomputes the current billable figures for a reservation.
func (s *Service) Cost(ctx context.Context, reservationID int64) ([]domain.UsageSlot, *CostCalculation, error) {
	in, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	calc := Compute(in.slots, in.downtime, in.rate)
	return in.slots, &calc, nil
}

// EditSlot updates one day's recorded times and/or status. Cancelled slots
// are frozen; a terminal status never reverts.
func (s *Service) EditSlot(ctx context.Context, reservationID int64, dayNum int, start, end *time.Time, newStatus *domain.SlotStatus) (*domain.UsageSlot, error) {
	slots, err := s.usage.ListSlots(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNotFound
	}

	var slot *domain.UsageSlot
	for i := range slots {
		if slots[i].DayNum == dayNum {
			slot = &slots[i]
			break
		}
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if (start != nil || end != nil) && slot.Status == domain.SlotCancelled {
		return nil, ErrSlotCancelled
	}

	if newStatus != nil && *newStatus != slot.Status {
		if slot.Status.Terminal() {
			return nil, ErrStatusFinal
		}
		switch *newStatus {
		case domain.SlotCompleted, domain.SlotCancelled:
			slot.Status = *newStatus
		default:
			return nil, ErrValidation
		}
	}

	if start != nil {
		slot.StartTime = start
	}
	if end != nil {
		slot.EndTime = end
	}
	if slot.Status != domain.SlotCancelled && slot.StartTime != nil && slot.EndTime != nil && !slot.EndTime.After(*slot.StartTime) {
		return nil, ErrInvalidTimes
	}

	if err := s.usage.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// CompleteAll marks every ongoing slot completed, leaving cancelled slots
// untouched.
func (s *Service) CompleteAll(ctx context.Context, reservationID int64) ([]domain.UsageSlot, error) {
	slots, err := s.usage.ListSlots(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNotFound
	}

	marked := MarkAllCompleted(slots)
	if err := s.usage.UpdateSlots(ctx, marked); err != nil {
		return nil, err
	}
	return marked, nil
}

// Finalize checks that every slot reached a terminal status, computes the
// final figures and persists the adjusted cost and total duration. Blocked,
// not partially applied, when slots remain ongoing.
func (s *Service) Finalize(ctx context.Context, reservationID int64) (*CostCalculation, error) {
	in, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if n := OngoingCount(in.slots); n > 0 {
		return nil, &OngoingSlotsError{Count: n}
	}

	calc := Compute(in.slots, in.downtime, in.rate)
	if err := s.usage.SaveReconciliation(ctx, reservationID, in.slots, calc.AdjustedCost, calc.TotalMinutes); err != nil {
		return nil, err
	}
	return &calc, nil
}
