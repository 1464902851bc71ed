package repository

import (
	"context"
	"time"

	"machinepark/internal/domain"

	"gorm.io/gorm"
)

type BlockedDateRepository struct {
	db *gorm.DB
}

func NewBlockedDateRepository(db *gorm.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

func (r *BlockedDateRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	var rows []domain.BlockedDate
	tx := r.db.WithContext(ctx).Order("date").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]time.Time, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.Date)
	}
	return out, nil
}
