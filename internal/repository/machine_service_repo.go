package repository

import (
	"context"
	"time"

	"machinepark/internal/domain"

	"gorm.io/gorm"
)

type MachineServiceRepository struct {
	db *gorm.DB
}

func NewMachineServiceRepository(db *gorm.DB) *MachineServiceRepository {
	return &MachineServiceRepository{db: db}
}

type machineServiceModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Capacity      int       `gorm:"column:capacity"`
	RatePerMinute float64   `gorm:"column:rate_per_minute"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (machineServiceModel) TableName() string { return "machine_services" }

func (r *MachineServiceRepository) GetByID(ctx context.Context, id int64) (*domain.MachineService, error) {
	var m machineServiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.MachineService{
		ID:            m.ID,
		Name:          m.Name,
		Capacity:      m.Capacity,
		RatePerMinute: m.RatePerMinute,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
