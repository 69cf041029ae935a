package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// HouseholdRepository defines the interface for apartment and resident data operations
type HouseholdRepository interface {
	ListHouseholds(ctx context.Context, search string) ([]*models.HouseholdRow, error)
	GetHouseholdByID(ctx context.Context, id uint) (*models.HouseholdRow, error)
	CountHouseholds(ctx context.Context) (int64, error)
	ListHouseholdsForBilling(ctx context.Context) ([]*models.HouseholdRow, error)
	GetResidentByID(ctx context.Context, id uint) (*models.Resident, error)
}

// householdRepository implements HouseholdRepository
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new instance of HouseholdRepository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{
		db: db,
	}
}

const householdSelect = `
	SELECT
		a.id,
		a.building,
		a.room_number,
		COALESCE(a.area, 0) AS area,
		COALESCE((SELECT o.name FROM residents o WHERE o.apartment_id = a.id AND o.is_owner ORDER BY o.id LIMIT 1), '') AS owner_name,
		COALESCE((SELECT o.phone_number FROM residents o WHERE o.apartment_id = a.id AND o.is_owner ORDER BY o.id LIMIT 1), '') AS phone_number,
		(SELECT COUNT(*) FROM residents r WHERE r.apartment_id = a.id) AS member_count
	FROM apartments a`

// ListHouseholds lists households, optionally filtered by room number or owner name
func (r *householdRepository) ListHouseholds(ctx context.Context, search string) ([]*models.HouseholdRow, error) {
	var rows []*models.HouseholdRow

	query := householdSelect
	var args []interface{}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		query += `
	WHERE a.room_number ILIKE ?
		OR EXISTS (SELECT 1 FROM residents o WHERE o.apartment_id = a.id AND o.is_owner AND o.name ILIKE ?)`
		args = append(args, like, like)
	}
	query += `
	ORDER BY a.building, a.room_number`

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// GetHouseholdByID retrieves a single household, gorm.ErrRecordNotFound when absent
func (r *householdRepository) GetHouseholdByID(ctx context.Context, id uint) (*models.HouseholdRow, error) {
	var rows []*models.HouseholdRow

	err := r.db.WithContext(ctx).Raw(householdSelect+`
	WHERE a.id = ?`, id).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return rows[0], nil
}

// CountHouseholds counts apartments
func (r *householdRepository) CountHouseholds(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Apartment{}).Count(&count).Error
	return count, err
}

// ListHouseholdsForBilling lists every household with at least one resident
func (r *householdRepository) ListHouseholdsForBilling(ctx context.Context) ([]*models.HouseholdRow, error) {
	var rows []*models.HouseholdRow

	err := r.db.WithContext(ctx).Raw(householdSelect+`
	WHERE EXISTS (SELECT 1 FROM residents r WHERE r.apartment_id = a.id)
	ORDER BY a.id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetResidentByID retrieves a resident by ID
func (r *householdRepository) GetResidentByID(ctx context.Context, id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}
