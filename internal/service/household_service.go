package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

// HouseholdService defines the interface for household operations
type HouseholdService interface {
	List(ctx context.Context, actor Actor, search string) ([]billing.Household, error)
	Get(ctx context.Context, actor Actor, id uint) (*billing.Household, error)
}

// householdService implements HouseholdService
type householdService struct {
	householdRepo repository.HouseholdRepository
	logger        *logger.Logger
}

// NewHouseholdService creates a new instance of HouseholdService
func NewHouseholdService(householdRepo repository.HouseholdRepository, logger *logger.Logger) HouseholdService {
	return &householdService{
		householdRepo: householdRepo,
		logger:        logger,
	}
}

// List returns all households; only administrators may list
func (s *householdService) List(ctx context.Context, actor Actor, search string) ([]billing.Household, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "only administrators can list households")
	}

	rows, err := s.householdRepo.ListHouseholds(ctx, search)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list households")
		return nil, err
	}

	households := make([]billing.Household, 0, len(rows))
	for _, row := range rows {
		households = append(households, toHousehold(row))
	}
	return households, nil
}

// Get returns a household; residents may only see their own
func (s *householdService) Get(ctx context.Context, actor Actor, id uint) (*billing.Household, error) {
	if !actor.CanAccessApartment(id) {
		return nil, newError(ErrForbidden, "you can only view your own household")
	}

	row, err := s.householdRepo.GetHouseholdByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "household %d not found", id)
		}
		s.logger.WithError(err).WithField("household_id", id).Error("Failed to get household")
		return nil, err
	}

	household := toHousehold(row)
	return &household, nil
}
