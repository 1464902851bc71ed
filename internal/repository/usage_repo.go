package repository

import (
	"context"
	"time"

	"machinepark/internal/domain"

	"gorm.io/gorm"
)

type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

type usageSlotModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ReservationID int64      `gorm:"column:reservation_id;uniqueIndex:uq_usage_slot,priority:1"`
	DayNum        int        `gorm:"column:day_num;uniqueIndex:uq_usage_slot,priority:2"`
	StartTime     *time.Time `gorm:"column:start_time"`
	EndTime       *time.Time `gorm:"column:end_time"`
	Status        string     `gorm:"column:status"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (usageSlotModel) TableName() string { return "usage_slots" }

func toDomainSlot(m usageSlotModel) domain.UsageSlot {
	return domain.UsageSlot{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		DayNum:        m.DayNum,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Status:        domain.SlotStatus(m.Status),
		UpdatedAt:     m.UpdatedAt,
	}
}

func toSlotModel(s domain.UsageSlot) usageSlotModel {
	return usageSlotModel{
		ID:            s.ID,
		ReservationID: s.ReservationID,
		DayNum:        s.DayNum,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(s.Status),
		UpdatedAt:     time.Now().UTC(),
	}
}

func (r *UsageRepository) ListSlots(ctx context.Context, reservationID int64) ([]domain.UsageSlot, error) {
	var rows []usageSlotModel
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).Order("day_num").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.UsageSlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainSlot(m))
	}
	return out, nil
}

func (r *UsageRepository) UpdateSlot(ctx context.Context, slot *domain.UsageSlot) error {
	m := toSlotModel(*slot)
	if tx := r.db.WithContext(ctx).Save(&m); tx.Error != nil {
		return tx.Error
	}
	*slot = toDomainSlot(m)
	return nil
}

func (r *UsageRepository) UpdateSlots(ctx context.Context, slots []domain.UsageSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range slots {
			m := toSlotModel(slots[i])
			if res := tx.Save(&m); res.Error != nil {
				return res.Error
			}
			slots[i] = toDomainSlot(m)
		}
		return nil
	})
}

// SaveReconciliation stores the final slot states and stamps the
// reservation with its adjusted cost and total billable duration.
func (r *UsageRepository) SaveReconciliation(ctx context.Context, reservationID int64, slots []domain.UsageSlot, adjustedCost float64, totalMinutes int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range slots {
			m := toSlotModel(slots[i])
			if res := tx.Save(&m); res.Error != nil {
				return res.Error
			}
		}

		now := time.Now().UTC()
		res := tx.Model(&reservationModel{}).
			Where("id = ?", reservationID).
			Updates(map[string]interface{}{
				"status":        string(domain.ReservationFinalized),
				"adjusted_cost": adjustedCost,
				"total_minutes": totalMinutes,
				"finalized_at":  now,
				"updated_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
