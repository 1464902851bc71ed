package repository

import (
	"context"

	"machinepark/internal/domain"

	"gorm.io/gorm"
)

type DowntimeRepository struct {
	db *gorm.DB
}

func NewDowntimeRepository(db *gorm.DB) *DowntimeRepository {
	return &DowntimeRepository{db: db}
}

func (r *DowntimeRepository) ListForReservation(ctx context.Context, reservationID int64) ([]domain.DowntimeEntry, error) {
	var rows []domain.DowntimeEntry
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
