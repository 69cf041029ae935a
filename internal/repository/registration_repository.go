package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// ErrRegistrationNotPending is returned when approving a registration that was already reviewed
var ErrRegistrationNotPending = errors.New("registration is not pending")

// RegistrationFilter narrows a registration listing
type RegistrationFilter struct {
	ApartmentID *uint
	Status      models.RegistrationStatus
	Type        models.RegistrationType
	Page        int
	Size        int
}

// RegistrationRepository defines the interface for temporary registration data operations
type RegistrationRepository interface {
	List(ctx context.Context, filter RegistrationFilter) ([]*models.TemporaryRegistration, int64, error)
	GetByID(ctx context.Context, id uint) (*models.TemporaryRegistration, error)
	Create(ctx context.Context, reg *models.TemporaryRegistration) error
	Update(ctx context.Context, reg *models.TemporaryRegistration) error
	SaveApproved(ctx context.Context, reg *models.TemporaryRegistration, state models.ResidentState) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status models.RegistrationStatus) (int64, error)
}

// registrationRepository implements RegistrationRepository
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new instance of RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// List returns one zero-based page of registrations, newest first
func (r *registrationRepository) List(ctx context.Context, f RegistrationFilter) ([]*models.TemporaryRegistration, int64, error) {
	var regs []*models.TemporaryRegistration
	var total int64

	q := r.db.WithContext(ctx).Model(&models.TemporaryRegistration{})
	if f.ApartmentID != nil {
		q = q.Where("apartment_id = ?", *f.ApartmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Resident").
		Order("id DESC").
		Offset(f.Page * f.Size).
		Limit(f.Size).
		Find(&regs).Error
	if err != nil {
		return nil, 0, err
	}

	return regs, total, nil
}

// GetByID retrieves a registration with its resident
func (r *registrationRepository) GetByID(ctx context.Context, id uint) (*models.TemporaryRegistration, error) {
	var reg models.TemporaryRegistration

	err := r.db.WithContext(ctx).Preload("Resident").Where("id = ?", id).First(&reg).Error
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// Create inserts a registration
func (r *registrationRepository) Create(ctx context.Context, reg *models.TemporaryRegistration) error {
	return r.db.WithContext(ctx).Omit("Resident").Create(reg).Error
}

// Update saves a registration
func (r *registrationRepository) Update(ctx context.Context, reg *models.TemporaryRegistration) error {
	return r.db.WithContext(ctx).Omit("Resident").Save(reg).Error
}

// SaveApproved stores an approved registration and moves its resident to the given state
// in one transaction. A new registration is inserted; an existing one must still be PENDING,
// otherwise ErrRegistrationNotPending is returned and nothing is written.
func (r *registrationRepository) SaveApproved(ctx context.Context, reg *models.TemporaryRegistration, state models.ResidentState) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reg.ID == 0 {
			if err := tx.Omit("Resident").Create(reg).Error; err != nil {
				return err
			}
		} else {
			res := tx.Model(&models.TemporaryRegistration{}).
				Where("id = ? AND status = ?", reg.ID, models.RegistrationPending).
				Updates(map[string]interface{}{
					"status":     reg.Status,
					"note":       reg.Note,
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrRegistrationNotPending
			}
		}

		res := tx.Model(&models.Resident{}).
			Where("id = ?", reg.ResidentID).
			Update("state", state)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes a registration
func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TemporaryRegistration{}, id).Error
}

// CountByStatus counts registrations in the given status
func (r *registrationRepository) CountByStatus(ctx context.Context, status models.RegistrationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TemporaryRegistration{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
