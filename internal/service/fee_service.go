package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

// FeeInput is the writable part of a fee definition
type FeeInput struct {
	FeeName      string `json:"feeName" binding:"required"`
	Description  string `json:"description"`
	UnitPrice    int64  `json:"unitPrice" binding:"min=0"`
	Unit         string `json:"unit" binding:"required"`
	BillingCycle string `json:"billingCycle" binding:"required"`
	IsMandatory  bool   `json:"isMandatory"`
}

// FeeService defines the interface for fee definition operations
type FeeService interface {
	List(ctx context.Context) ([]*models.FeeDefinition, error)
	Get(ctx context.Context, id uint) (*models.FeeDefinition, error)
	Create(ctx context.Context, input FeeInput) (*models.FeeDefinition, error)
	Update(ctx context.Context, id uint, input FeeInput) (*models.FeeDefinition, error)
	Delete(ctx context.Context, id uint) error
}

// feeService implements FeeService
type feeService struct {
	feeRepo repository.FeeRepository
	logger  *logger.Logger
}

// NewFeeService creates a new instance of FeeService
func NewFeeService(feeRepo repository.FeeRepository, logger *logger.Logger) FeeService {
	return &feeService{
		feeRepo: feeRepo,
		logger:  logger,
	}
}

var validFeeUnits = map[string]bool{
	models.FeeUnitSquareMeter: true,
	models.FeeUnitPerson:      true,
	models.FeeUnitApartment:   true,
	models.FeeUnitFixed:       true,
}

func (in *FeeInput) normalize() error {
	in.FeeName = strings.TrimSpace(in.FeeName)
	in.Unit = strings.ToLower(strings.TrimSpace(in.Unit))
	in.BillingCycle = strings.ToUpper(strings.TrimSpace(in.BillingCycle))

	if in.FeeName == "" {
		return newError(ErrInvalidInput, "fee name is required")
	}
	if in.UnitPrice < 0 {
		return newError(ErrInvalidInput, "unit price must not be negative")
	}
	if !validFeeUnits[in.Unit] {
		return newError(ErrInvalidInput, "unit must be one of m2, person, apartment, fixed")
	}
	if in.BillingCycle != models.BillingCycleMonthly && in.BillingCycle != models.BillingCycleOneTime {
		return newError(ErrInvalidInput, "billing cycle must be MONTHLY or ONE_TIME")
	}
	return nil
}

func (in FeeInput) applyTo(fee *models.FeeDefinition) {
	fee.FeeName = in.FeeName
	fee.Description = in.Description
	fee.UnitPrice = in.UnitPrice
	fee.Unit = in.Unit
	fee.BillingCycle = in.BillingCycle
	fee.IsMandatory = in.IsMandatory
}

// List returns all fee definitions
func (s *feeService) List(ctx context.Context) ([]*models.FeeDefinition, error) {
	return s.feeRepo.List(ctx)
}

// Get returns a single fee definition
func (s *feeService) Get(ctx context.Context, id uint) (*models.FeeDefinition, error) {
	fee, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "fee %d not found", id)
		}
		return nil, err
	}
	return fee, nil
}

// Create adds a fee definition
func (s *feeService) Create(ctx context.Context, input FeeInput) (*models.FeeDefinition, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	fee := &models.FeeDefinition{}
	input.applyTo(fee)
	if err := s.feeRepo.Create(ctx, fee); err != nil {
		s.logger.WithError(err).Error("Failed to create fee")
		return nil, err
	}

	s.logger.WithField("fee_id", fee.ID).Info("Fee created")
	return fee, nil
}

// Update replaces the writable fields of a fee definition
func (s *feeService) Update(ctx context.Context, id uint, input FeeInput) (*models.FeeDefinition, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	fee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.applyTo(fee)
	if err := s.feeRepo.Update(ctx, fee); err != nil {
		s.logger.WithError(err).WithField("fee_id", id).Error("Failed to update fee")
		return nil, err
	}

	s.logger.WithField("fee_id", id).Info("Fee updated")
	return fee, nil
}

// Delete removes a fee definition
func (s *feeService) Delete(ctx context.Context, id uint) error {
	if err := s.feeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "fee %d not found", id)
		}
		s.logger.WithError(err).WithField("fee_id", id).Error("Failed to delete fee")
		return err
	}

	s.logger.WithField("fee_id", id).Info("Fee deleted")
	return nil
}
