package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

const adminCreatedNote = "Created by admin"

// RegistrationInput is the writable part of a temporary registration
type RegistrationInput struct {
	ResidentID uint                    `json:"resident_id" binding:"required"`
	Type       models.RegistrationType `json:"type" binding:"required"`
	StartDate  time.Time               `json:"start_date" binding:"required"`
	EndDate    *time.Time              `json:"end_date"`
	Reason     string                  `json:"reason"`
}

// RegistrationQuery is a zero-based page request over registrations
type RegistrationQuery struct {
	Status models.RegistrationStatus
	Type   models.RegistrationType
	Page   int
	Size   int
}

// RegistrationService defines the interface for temporary residence and absence requests
type RegistrationService interface {
	List(ctx context.Context, actor Actor, query RegistrationQuery) ([]*models.TemporaryRegistration, int64, error)
	Get(ctx context.Context, actor Actor, id uint) (*models.TemporaryRegistration, error)
	Create(ctx context.Context, actor Actor, input RegistrationInput) (*models.TemporaryRegistration, error)
	Update(ctx context.Context, actor Actor, id uint, input RegistrationInput) (*models.TemporaryRegistration, error)
	Review(ctx context.Context, actor Actor, id uint, approve bool, note string) (*models.TemporaryRegistration, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

// registrationService implements RegistrationService
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	householdRepo    repository.HouseholdRepository
	logger           *logger.Logger
}

// NewRegistrationService creates a new instance of RegistrationService
func NewRegistrationService(registrationRepo repository.RegistrationRepository, householdRepo repository.HouseholdRepository, logger *logger.Logger) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		householdRepo:    householdRepo,
		logger:           logger,
	}
}

func validateRegistration(in RegistrationInput) error {
	if in.Type != models.RegistrationResidence && in.Type != models.RegistrationAbsence {
		return newError(ErrInvalidInput, "type must be TEMPORARY_RESIDENCE or TEMPORARY_ABSENCE")
	}
	if in.StartDate.IsZero() {
		return newError(ErrInvalidInput, "start date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return newError(ErrInvalidInput, "end date must not be before start date")
	}
	return nil
}

// List returns registrations newest first; residents only see their own household
func (s *registrationService) List(ctx context.Context, actor Actor, query RegistrationQuery) ([]*models.TemporaryRegistration, int64, error) {
	filter := repository.RegistrationFilter{
		Status: query.Status,
		Type:   query.Type,
		Page:   query.Page,
		Size:   query.Size,
	}
	if !actor.IsAdmin() {
		if actor.ApartmentID == nil {
			return nil, 0, newError(ErrForbidden, "account is not linked to a household")
		}
		filter.ApartmentID = actor.ApartmentID
	}

	return s.registrationRepo.List(ctx, filter)
}

// Get returns a registration visible to the actor
func (s *registrationService) Get(ctx context.Context, actor Actor, id uint) (*models.TemporaryRegistration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "registration %d not found", id)
		}
		return nil, err
	}
	if !actor.CanAccessApartment(reg.ApartmentID) {
		return nil, newError(ErrForbidden, "registration %d does not belong to your household", id)
	}
	return reg, nil
}

// Create files a request. Requests from administrators are approved immediately;
// residents may only file for people of their own household and start out PENDING.
func (s *registrationService) Create(ctx context.Context, actor Actor, input RegistrationInput) (*models.TemporaryRegistration, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	resident, err := s.householdRepo.GetResidentByID(ctx, input.ResidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "resident %d not found", input.ResidentID)
		}
		return nil, err
	}
	if resident.ApartmentID == nil {
		return nil, newError(ErrInvalidInput, "resident %d is not assigned to a household", resident.ID)
	}
	if !actor.CanAccessApartment(*resident.ApartmentID) {
		return nil, newError(ErrForbidden, "you can only register members of your own household")
	}

	reg := &models.TemporaryRegistration{
		ResidentID:  resident.ID,
		ApartmentID: *resident.ApartmentID,
		Type:        input.Type,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Reason:      strings.TrimSpace(input.Reason),
		Status:      models.RegistrationPending,
	}
	if actor.IsAdmin() {
		reg.Status = models.RegistrationApproved
		reg.Note = adminCreatedNote
	}

	if reg.Status == models.RegistrationApproved {
		err = s.saveApproved(ctx, reg)
	} else {
		err = s.registrationRepo.Create(ctx, reg)
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to create registration")
		return nil, err
	}

	reg.Resident = resident
	s.logger.WithFields(map[string]interface{}{
		"registration_id": reg.ID,
		"resident_id":     reg.ResidentID,
		"status":          reg.Status,
	}).Info("Registration created")
	return reg, nil
}

// Update edits a registration. Residents may only edit their own PENDING requests.
func (s *registrationService) Update(ctx context.Context, actor Actor, id uint, input RegistrationInput) (*models.TemporaryRegistration, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	reg, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && reg.Status != models.RegistrationPending {
		return nil, newError(ErrConflict, "only pending requests can be changed")
	}

	reg.Type = input.Type
	reg.StartDate = input.StartDate
	reg.EndDate = input.EndDate
	reg.Reason = strings.TrimSpace(input.Reason)

	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		s.logger.WithError(err).WithField("registration_id", id).Error("Failed to update registration")
		return nil, err
	}

	return reg, nil
}

// Review approves or rejects a PENDING request; administrators only
func (s *registrationService) Review(ctx context.Context, actor Actor, id uint, approve bool, note string) (*models.TemporaryRegistration, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "only administrators can review requests")
	}

	reg, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if reg.Status != models.RegistrationPending {
		return nil, newError(ErrConflict, "request %d has already been reviewed", id)
	}

	reg.Status = models.RegistrationRejected
	if approve {
		reg.Status = models.RegistrationApproved
	}
	reg.Note = strings.TrimSpace(note)

	if approve {
		err = s.saveApproved(ctx, reg)
	} else {
		err = s.registrationRepo.Update(ctx, reg)
	}
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotPending) {
			return nil, newError(ErrConflict, "request %d has already been reviewed", id)
		}
		s.logger.WithError(err).WithField("registration_id", id).Error("Failed to review registration")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"registration_id": id,
		"status":          reg.Status,
		"reviewer_id":     actor.UserID,
	}).Info("Registration reviewed")
	return reg, nil
}

// Delete removes a registration. Residents may only delete their own PENDING requests.
func (s *registrationService) Delete(ctx context.Context, actor Actor, id uint) error {
	reg, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && reg.Status != models.RegistrationPending {
		return newError(ErrConflict, "only pending requests can be deleted")
	}

	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("registration_id", id).Error("Failed to delete registration")
		return err
	}
	return nil
}

// saveApproved stores an approved registration together with the resident state it implies
func (s *registrationService) saveApproved(ctx context.Context, reg *models.TemporaryRegistration) error {
	state := models.ResidentTemporaryResidence
	if reg.Type == models.RegistrationAbsence {
		state = models.ResidentTemporaryAbsence
	}

	if err := s.registrationRepo.SaveApproved(ctx, reg, state); err != nil {
		s.logger.WithError(err).WithField("resident_id", reg.ResidentID).Error("Failed to save approved registration")
		return err
	}
	return nil
}
