package repository

import (
	"context"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// SchedulerLogRepository defines the interface for scheduler run logs
type SchedulerLogRepository interface {
	Create(ctx context.Context, entry *models.SchedulerLog) error
}

// schedulerLogRepository implements SchedulerLogRepository
type schedulerLogRepository struct {
	db *gorm.DB
}

// NewSchedulerLogRepository creates a new instance of SchedulerLogRepository
func NewSchedulerLogRepository(db *gorm.DB) SchedulerLogRepository {
	return &schedulerLogRepository{
		db: db,
	}
}

// Create appends a scheduler log row
func (r *schedulerLogRepository) Create(ctx context.Context, entry *models.SchedulerLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
