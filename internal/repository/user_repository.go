package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// UserRepository defines the interface for user account data operations
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	GetByID(ctx context.Context, id uint) (*models.UserAccount, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// GetByEmail retrieves an account and its resident by login email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	var user models.UserAccount

	err := r.db.WithContext(ctx).
		Preload("Resident").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID retrieves an account and its resident by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.UserAccount, error) {
	var user models.UserAccount

	err := r.db.WithContext(ctx).
		Preload("Resident").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}
