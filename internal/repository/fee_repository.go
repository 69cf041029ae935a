package repository

import (
	"context"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// FeeRepository defines the interface for fee definition data operations
type FeeRepository interface {
	List(ctx context.Context) ([]*models.FeeDefinition, error)
	ListMandatoryMonthly(ctx context.Context) ([]*models.FeeDefinition, error)
	GetByID(ctx context.Context, id uint) (*models.FeeDefinition, error)
	Create(ctx context.Context, fee *models.FeeDefinition) error
	Update(ctx context.Context, fee *models.FeeDefinition) error
	Delete(ctx context.Context, id uint) error
}

// feeRepository implements FeeRepository
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new instance of FeeRepository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{
		db: db,
	}
}

// List retrieves all fee definitions
func (r *feeRepository) List(ctx context.Context) ([]*models.FeeDefinition, error) {
	var fees []*models.FeeDefinition

	err := r.db.WithContext(ctx).Order("id").Find(&fees).Error
	if err != nil {
		return nil, err
	}

	return fees, nil
}

// ListMandatoryMonthly retrieves the fees charged on every monthly invoice
func (r *feeRepository) ListMandatoryMonthly(ctx context.Context) ([]*models.FeeDefinition, error) {
	var fees []*models.FeeDefinition

	err := r.db.WithContext(ctx).
		Where("is_mandatory = ? AND billing_cycle = ?", true, models.BillingCycleMonthly).
		Order("id").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}

	return fees, nil
}

// GetByID retrieves a fee definition by ID
func (r *feeRepository) GetByID(ctx context.Context, id uint) (*models.FeeDefinition, error) {
	var fee models.FeeDefinition

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&fee).Error
	if err != nil {
		return nil, err
	}

	return &fee, nil
}

// Create inserts a fee definition
func (r *feeRepository) Create(ctx context.Context, fee *models.FeeDefinition) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

// Update saves every column of a fee definition
func (r *feeRepository) Update(ctx context.Context, fee *models.FeeDefinition) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

// Delete removes a fee definition, gorm.ErrRecordNotFound when nothing was deleted
func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.FeeDefinition{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
