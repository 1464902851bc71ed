package planner

import (
	"context"
	"testing"
	"time"

	"machinepark/internal/domain"
	"machinepark/internal/modules/availability"
	"machinepark/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSnapshotProvider struct {
	mock.Mock
}

func (m *MockSnapshotProvider) Snapshot(ctx context.Context, serviceID int64, year int, month time.Month) (*availability.Snapshot, error) {
	args := m.Called(ctx, serviceID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Snapshot), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation, slots []domain.UsageSlot, capacity int) error {
	args := m.Called(ctx, res, slots, capacity)
	if args.Error(0) == nil && res != nil {
		res.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func testSnapshot() *availability.Snapshot {
	days := map[string]availability.DayRecord{}
	for d := date(2030, 3, 1); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		days[availability.DateKey(d)] = availability.DayRecord{
			Date:          d,
			MorningFree:   3,
			AfternoonFree: 3,
			AllDayFree:    3,
		}
	}
	return &availability.Snapshot{
		ServiceID:     1,
		Year:          2030,
		Month:         time.March,
		Capacity:      3,
		RatePerMinute: 5,
		Days:          days,
		Blocked:       map[string]bool{},
	}
}

func newTestService(snaps *MockSnapshotProvider, repo *MockReservationRepository) *Service {
	return NewService(NewStore(time.Hour), snaps, repo)
}

func TestService_CreateDraft_Success(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	service := newTestService(snaps, new(MockReservationRepository))

	d, err := service.CreateDraft(context.Background(), 1, 7, 2, 2030, time.March)

	require.NoError(t, err)
	assert.Equal(t, 3, d.Capacity)
	assert.Equal(t, 2, d.Quantity)

	stored, err := service.GetDraft(d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, stored.ID)
}

func TestService_CreateDraft_SnapshotFailure(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(nil, availability.ErrSnapshotUnavailable)
	service := newTestService(snaps, new(MockReservationRepository))

	_, err := service.CreateDraft(context.Background(), 1, 7, 1, 2030, time.March)
	assert.ErrorIs(t, err, availability.ErrSnapshotUnavailable)
}

func buildDraft(t *testing.T, service *Service, withTimes bool) Draft {
	snapDraft, err := service.CreateDraft(context.Background(), 1, 7, 1, 2030, time.March)
	require.NoError(t, err)

	d, _, err := service.Dispatch(snapDraft.ID, ToggleDate{Date: date(2030, 3, 4)})
	require.NoError(t, err)
	d, _, err = service.Dispatch(d.ID, ToggleDate{Date: date(2030, 3, 5)})
	require.NoError(t, err)

	if withTimes {
		d, _, err = service.Dispatch(d.ID, ApplyWindow{Start: *tod(t, "09:00"), End: *tod(t, "11:00")})
		require.NoError(t, err)
	}
	return d
}

func TestService_Submit_Success(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	repo := new(MockReservationRepository)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, 3).Return(nil)
	service := newTestService(snaps, repo)

	d := buildDraft(t, service, true)

	res, err := service.Submit(context.Background(), d.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ID)
	require.Len(t, res.Days, 2)
	assert.Equal(t, 540, *res.Days[0].StartMinute)
	assert.Equal(t, 660, *res.Days[0].EndMinute)

	// Draft is destroyed on submit.
	_, err = service.GetDraft(d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	repo.AssertExpectations(t)
}

func TestService_Submit_MissingTimes(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	service := newTestService(snaps, new(MockReservationRepository))

	d := buildDraft(t, service, false)

	_, err := service.Submit(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrMissingTime)
}

func TestService_Submit_EmptyDraft(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	service := newTestService(snaps, new(MockReservationRepository))

	d, err := service.CreateDraft(context.Background(), 1, 7, 1, 2030, time.March)
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestService_Submit_CapacityLost(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	repo := new(MockReservationRepository)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, 3).Return(repository.ErrNoCapacity)
	service := newTestService(snaps, repo)

	d := buildDraft(t, service, true)

	_, err := service.Submit(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrNoCapacity)

	// The draft survives a failed submit so the requester can adjust it.
	_, err = service.GetDraft(d.ID)
	assert.NoError(t, err)
}

func TestService_Submit_UniqueViolationIsConflict(t *testing.T) {
	snaps := new(MockSnapshotProvider)
	snaps.On("Snapshot", mock.Anything, int64(1), 2030, time.March).Return(testSnapshot(), nil)
	repo := new(MockReservationRepository)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, 3).Return(&pgconn.PgError{Code: "23505"})
	service := newTestService(snaps, repo)

	d := buildDraft(t, service, true)

	_, err := service.Submit(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Dispatch_UnknownDraft(t *testing.T) {
	service := newTestService(new(MockSnapshotProvider), new(MockReservationRepository))

	_, _, err := service.Dispatch(testDraft().ID, SetSync{Enabled: true})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
