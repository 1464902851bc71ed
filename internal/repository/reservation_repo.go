package repository

import (
	"context"
	"errors"
	"time"

	"machinepark/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoCapacity is returned by Create when the transactional re-check finds
// the pool can no longer host a requested day. It closes the race between
// the availability snapshot a requester saw and their submission.
var ErrNoCapacity = errors.New("machine pool exhausted for a requested day")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	ServiceID    int64      `gorm:"column:service_id"`
	RequesterID  int64      `gorm:"column:requester_id"`
	Status       string     `gorm:"column:status"`
	TotalMinutes int        `gorm:"column:total_minutes"`
	AdjustedCost float64    `gorm:"column:adjusted_cost"`
	FinalizedAt  *time.Time `gorm:"column:finalized_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

type reservationDayModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReservationID int64     `gorm:"column:reservation_id;uniqueIndex:uq_reservation_day,priority:1"`
	Date          time.Time `gorm:"column:date;uniqueIndex:uq_reservation_day,priority:2"`
	StartMinute   *int      `gorm:"column:start_minute"`
	EndMinute     *int      `gorm:"column:end_minute"`
	Quantity      int       `gorm:"column:quantity"`
}

func (reservationDayModel) TableName() string { return "reservation_days" }

func toDomainReservation(m reservationModel, days []reservationDayModel) *domain.Reservation {
	res := &domain.Reservation{
		ID:           m.ID,
		ServiceID:    m.ServiceID,
		RequesterID:  m.RequesterID,
		Status:       domain.ReservationStatus(m.Status),
		TotalMinutes: m.TotalMinutes,
		AdjustedCost: m.AdjustedCost,
		FinalizedAt:  m.FinalizedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, d := range days {
		res.Days = append(res.Days, domain.ReservationDay{
			ID:            d.ID,
			ReservationID: d.ReservationID,
			Date:          d.Date,
			StartMinute:   d.StartMinute,
			EndMinute:     d.EndMinute,
			Quantity:      d.Quantity,
		})
	}
	return res
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	var days []reservationDayModel
	if tx := r.db.WithContext(ctx).Where("reservation_id = ?", id).Order("date").Find(&days); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m, days), nil
}

// ListForServiceBetween returns every reservation of the service that has
// at least one day in [from, to), carrying only the days in that range.
func (r *ReservationRepository) ListForServiceBetween(ctx context.Context, serviceID int64, from, to time.Time) ([]domain.Reservation, error) {
	var days []reservationDayModel
	tx := r.db.WithContext(ctx).
		Joins("JOIN reservations ON reservations.id = reservation_days.reservation_id").
		Where("reservations.service_id = ? AND reservation_days.date >= ? AND reservation_days.date < ?", serviceID, from, to).
		Order("reservation_days.reservation_id, reservation_days.date").
		Find(&days)
	if tx.Error != nil {
		return nil, tx.Error
	}

	byReservation := make(map[int64][]reservationDayModel)
	order := make([]int64, 0)
	for _, d := range days {
		if _, seen := byReservation[d.ReservationID]; !seen {
			order = append(order, d.ReservationID)
		}
		byReservation[d.ReservationID] = append(byReservation[d.ReservationID], d)
	}

	out := make([]domain.Reservation, 0, len(order))
	for _, id := range order {
		res := toDomainReservation(reservationModel{ID: id, ServiceID: serviceID}, byReservation[id])
		out = append(out, *res)
	}
	return out, nil
}

// Create persists a reservation, its days and the initial usage slots in
// one transaction. The service row is locked for the duration, so
// concurrent submissions against the same pool serialize and the
// per-session capacity re-check never reads a stale count. A submission
// based on a stale availability snapshot fails with ErrNoCapacity instead
// of over-booking.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation, slots []domain.UsageSlot, capacity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite has no row locks; its single-writer model serializes
		// transactions on its own.
		var svc machineServiceModel
		if q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&svc, res.ServiceID); q.Error != nil {
			return q.Error
		}

		for _, day := range res.Days {
			var existing []reservationDayModel
			q := tx.
				Joins("JOIN reservations ON reservations.id = reservation_days.reservation_id").
				Where("reservations.service_id = ? AND reservation_days.date = ?", res.ServiceID, day.Date).
				Find(&existing)
			if q.Error != nil {
				return q.Error
			}

			morningUsed, afternoonUsed := 0, 0
			for _, e := range existing {
				m, a := daySessions(e.StartMinute, e.EndMinute)
				if m {
					morningUsed += e.Quantity
				}
				if a {
					afternoonUsed += e.Quantity
				}
			}

			m, a := daySessions(day.StartMinute, day.EndMinute)
			if m && morningUsed+day.Quantity > capacity {
				return ErrNoCapacity
			}
			if a && afternoonUsed+day.Quantity > capacity {
				return ErrNoCapacity
			}
		}

		now := time.Now().UTC()
		m := reservationModel{
			ServiceID:   res.ServiceID,
			RequesterID: res.RequesterID,
			Status:      string(res.Status),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if tx := tx.Create(&m); tx.Error != nil {
			return tx.Error
		}

		for i := range res.Days {
			dm := reservationDayModel{
				ReservationID: m.ID,
				Date:          res.Days[i].Date,
				StartMinute:   res.Days[i].StartMinute,
				EndMinute:     res.Days[i].EndMinute,
				Quantity:      res.Days[i].Quantity,
			}
			if tx := tx.Create(&dm); tx.Error != nil {
				return tx.Error
			}
			res.Days[i].ID = dm.ID
			res.Days[i].ReservationID = m.ID
		}

		for i := range slots {
			sm := usageSlotModel{
				ReservationID: m.ID,
				DayNum:        slots[i].DayNum,
				Status:        string(slots[i].Status),
				UpdatedAt:     now,
			}
			if tx := tx.Create(&sm); tx.Error != nil {
				return tx.Error
			}
		}

		res.ID = m.ID
		res.Status = domain.ReservationStatus(m.Status)
		res.CreatedAt = m.CreatedAt
		res.UpdatedAt = m.UpdatedAt
		return nil
	})
}

// daySessions mirrors the availability calculator's hour-boundary rule.
// A day without explicit times loads both sessions.
func daySessions(startMinute, endMinute *int) (morning, afternoon bool) {
	if startMinute == nil || endMinute == nil {
		return true, true
	}
	return *startMinute/60 < 12, *endMinute/60 >= 13
}
