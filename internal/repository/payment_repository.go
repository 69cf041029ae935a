package repository

import (
	"context"

	"gorm.io/gorm"

	"apartment-be-svc/internal/models"
)

// PaymentRepository defines the interface for payment history queries
type PaymentRepository interface {
	ListRecentByApartment(ctx context.Context, apartmentID uint, limit int) ([]*models.PaymentHistoryRow, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// ListRecentByApartment returns the latest payments made for an apartment's invoices
func (r *paymentRepository) ListRecentByApartment(ctx context.Context, apartmentID uint, limit int) ([]*models.PaymentHistoryRow, error) {
	var rows []*models.PaymentHistoryRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT p.invoice_id, i.title, p.amount, p.transaction_id, p.paid_at
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.apartment_id = ?
		ORDER BY p.paid_at DESC, p.id DESC
		LIMIT ?`, apartmentID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
