package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"machinepark/internal/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Snapshot is the merged view of one service's month: capacity, per-day
// free counts and the blocked-date set, all taken at fetch time. A second
// actor's reservation created after the fetch is not visible here; the
// race is closed at submit time by the reservation repository.
type Snapshot struct {
	ServiceID     int64
	Year          int
	Month         time.Month
	Capacity      int
	RatePerMinute float64
	Days          map[string]DayRecord
	Blocked       map[string]bool
}

type Service struct {
	reservations ReservationRepository
	blocked      BlockedDateRepository
	services     ServiceRepository
}

func NewService(reservations ReservationRepository, blocked BlockedDateRepository, services ServiceRepository) *Service {
	return &Service{
		reservations: reservations,
		blocked:      blocked,
		services:     services,
	}
}

// Snapshot fetches reservations, blocked dates and service capacity
// concurrently and merges them once all three resolve. A failed fetch
// yields an error, never a false "fully available" month.
func (s *Service) Snapshot(ctx context.Context, serviceID int64, year int, month time.Month) (*Snapshot, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var (
		svc          *domain.MachineService
		existing     []domain.Reservation
		blockedDates []time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		svc, err = s.services.GetByID(gctx, serviceID)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = s.reservations.ListForServiceBetween(gctx, serviceID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		blockedDates, err = s.blocked.ListDates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}

	blocked := make(map[string]bool, len(blockedDates))
	for _, d := range blockedDates {
		blocked[DateKey(d)] = true
	}

	return &Snapshot{
		ServiceID:     serviceID,
		Year:          year,
		Month:         month,
		Capacity:      svc.Capacity,
		RatePerMinute: svc.RatePerMinute,
		Days:          ComputeMonth(year, month, svc.Capacity, existing),
		Blocked:       blocked,
	}, nil
}

// MonthAvailability returns the month's records in calendar order with
// blocked and selectable flags for the requested machine quantity.
func (s *Service) MonthAvailability(ctx context.Context, serviceID int64, year int, month time.Month, quantity int) (*MonthResponse, error) {
	if quantity < 1 {
		return nil, ErrValidation
	}

	snap, err := s.Snapshot(ctx, serviceID, year, month)
	if err != nil {
		return nil, err
	}

	days := make([]DayAvailability, 0, len(snap.Days))
	for key, rec := range snap.Days {
		days = append(days, DayAvailability{
			Date:          key,
			MorningFree:   rec.MorningFree,
			AfternoonFree: rec.AfternoonFree,
			AllDayFree:    rec.AllDayFree,
			Blocked:       snap.Blocked[key],
			Selectable:    !snap.Blocked[key] && rec.Selectable(quantity),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &MonthResponse{
		ServiceID: serviceID,
		Month:     fmt.Sprintf("%04d-%02d", year, int(month)),
		Capacity:  snap.Capacity,
		Days:      days,
	}, nil
}
