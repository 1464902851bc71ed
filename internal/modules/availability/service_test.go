package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"machinepark/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) ListForServiceBetween(ctx context.Context, serviceID int64, from, to time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, serviceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockBlockedDateRepository struct {
	mock.Mock
}

func (m *MockBlockedDateRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.MachineService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MachineService), args.Error(1)
}

func newTestService() (*Service, *MockReservationRepository, *MockBlockedDateRepository, *MockServiceRepository) {
	reservations := new(MockReservationRepository)
	blocked := new(MockBlockedDateRepository)
	services := new(MockServiceRepository)
	return NewService(reservations, blocked, services), reservations, blocked, services
}

func TestSnapshot_MergesAllSources(t *testing.T) {
	svc, reservations, blocked, services := newTestService()

	services.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.MachineService{ID: 1, Capacity: 3, RatePerMinute: 5}, nil)
	reservations.On("ListForServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]domain.Reservation{
			reservationOn(day(2025, 3, 10), minutes(9, 0), minutes(11, 0), 2),
		}, nil)
	blocked.On("ListDates", mock.Anything).
		Return([]time.Time{day(2025, 3, 14)}, nil)

	snap, err := svc.Snapshot(context.Background(), 1, 2025, time.March)

	require.NoError(t, err)
	assert.Equal(t, 3, snap.Capacity)
	assert.Equal(t, 5.0, snap.RatePerMinute)
	assert.Equal(t, 1, snap.Days["2025-03-10"].MorningFree)
	assert.True(t, snap.Blocked["2025-03-14"])
	assert.False(t, snap.Blocked["2025-03-15"])

	services.AssertExpectations(t)
	reservations.AssertExpectations(t)
	blocked.AssertExpectations(t)
}

func TestSnapshot_UnknownService(t *testing.T) {
	svc, reservations, blocked, services := newTestService()

	services.On("GetByID", mock.Anything, int64(99)).
		Return(nil, gorm.ErrRecordNotFound)
	reservations.On("ListForServiceBetween", mock.Anything, int64(99), mock.Anything, mock.Anything).
		Return([]domain.Reservation{}, nil).Maybe()
	blocked.On("ListDates", mock.Anything).
		Return([]time.Time{}, nil).Maybe()

	_, err := svc.Snapshot(context.Background(), 99, 2025, time.March)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// A single failed source fails the whole snapshot; a partial month must
// never pass for a fully available one.
func TestSnapshot_FetchFailure(t *testing.T) {
	svc, reservations, blocked, services := newTestService()

	services.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.MachineService{ID: 1, Capacity: 3}, nil).Maybe()
	reservations.On("ListForServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	blocked.On("ListDates", mock.Anything).
		Return([]time.Time{}, nil).Maybe()

	_, err := svc.Snapshot(context.Background(), 1, 2025, time.March)

	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestMonthAvailability_FlagsBlockedAndSelectable(t *testing.T) {
	svc, reservations, blocked, services := newTestService()

	services.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.MachineService{ID: 1, Capacity: 2, RatePerMinute: 5}, nil)
	reservations.On("ListForServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]domain.Reservation{
			reservationOn(day(2025, 3, 10), nil, nil, 2),
		}, nil)
	blocked.On("ListDates", mock.Anything).
		Return([]time.Time{day(2025, 3, 14)}, nil)

	resp, err := svc.MonthAvailability(context.Background(), 1, 2025, time.March, 1)

	require.NoError(t, err)
	assert.Equal(t, "2025-03", resp.Month)
	assert.Equal(t, 2, resp.Capacity)
	require.Len(t, resp.Days, 31)

	// Days come back in calendar order.
	assert.Equal(t, "2025-03-01", resp.Days[0].Date)
	assert.Equal(t, "2025-03-31", resp.Days[30].Date)

	byDate := make(map[string]DayAvailability, len(resp.Days))
	for _, d := range resp.Days {
		byDate[d.Date] = d
	}

	assert.False(t, byDate["2025-03-10"].Selectable, "fully booked day")
	assert.True(t, byDate["2025-03-14"].Blocked)
	assert.False(t, byDate["2025-03-14"].Selectable, "blocked day is never selectable")
	assert.True(t, byDate["2025-03-15"].Selectable)
}

func TestMonthAvailability_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.MonthAvailability(context.Background(), 1, 2025, time.March, 0)

	assert.ErrorIs(t, err, ErrValidation)
}
