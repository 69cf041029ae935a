package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
)

// ErrInvoiceNotUnpaid is returned when settling an invoice that is no longer unpaid
var ErrInvoiceNotUnpaid = errors.New("invoice is not unpaid")

// InvoiceFilter narrows an invoice listing
type InvoiceFilter struct {
	ApartmentID *uint
	Status      string
	Search      string
	Month       *int
	Year        *int
	Page        int
	Size        int
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	List(ctx context.Context, filter InvoiceFilter) ([]*models.Invoice, int64, error)
	ListForExport(ctx context.Context, filter InvoiceFilter) ([]*models.Invoice, error)
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	ExistsForPeriod(ctx context.Context, apartmentID uint, month, year int) (bool, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Settle(ctx context.Context, id uint, payment *models.Payment) error
	SumUnpaidByApartment(ctx context.Context, apartmentID uint) (int64, int64, error)
}

// invoiceRepository implements InvoiceRepository
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

func (r *invoiceRepository) filtered(ctx context.Context, f InvoiceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Joins("JOIN apartments ON apartments.id = invoices.apartment_id")

	if f.ApartmentID != nil {
		q = q.Where("invoices.apartment_id = ?", *f.ApartmentID)
	}
	if f.Status != "" {
		q = q.Where("invoices.status = ?", f.Status)
	}
	if f.Month != nil {
		q = q.Where("invoices.month = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where("invoices.year = ?", *f.Year)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("(invoices.title ILIKE ? OR apartments.room_number ILIKE ?)", like, like)
	}

	return q.Session(&gorm.Session{})
}

// List returns one zero-based page of invoices, newest first, with the total match count
func (r *invoiceRepository) List(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, int64, error) {
	var invoices []*models.Invoice
	var total int64

	q := r.filtered(ctx, f)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return invoices, 0, nil
	}

	err := q.Preload("Apartment").
		Order("invoices.id DESC").
		Offset(f.Page * f.Size).
		Limit(f.Size).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// ListForExport returns every matching invoice ordered by period and room
func (r *invoiceRepository) ListForExport(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, error) {
	var invoices []*models.Invoice

	err := r.filtered(ctx, f).
		Preload("Apartment").
		Order("invoices.year DESC, invoices.month DESC, apartments.room_number").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// GetByID retrieves an invoice with its apartment and line items
func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice

	err := r.db.WithContext(ctx).
		Preload("Apartment").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("invoice_details.id") }).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// ExistsForPeriod reports whether the apartment already has an invoice for the period
func (r *invoiceRepository) ExistsForPeriod(ctx context.Context, apartmentID uint, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("apartment_id = ? AND month = ? AND year = ?", apartmentID, month, year).
		Count(&count).Error
	return count > 0, err
}

// Create inserts an invoice together with its line items
func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// Settle flips an unpaid invoice to paid and records the payment in one transaction.
// ErrInvoiceNotUnpaid is returned if the invoice was settled concurrently.
func (r *invoiceRepository) Settle(ctx context.Context, id uint, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paidAt := payment.PaidAt
		if paidAt.IsZero() {
			paidAt = time.Now()
			payment.PaidAt = paidAt
		}

		res := tx.Model(&models.Invoice{}).
			Where("id = ? AND status = ?", id, billing.StatusUnpaid).
			Updates(map[string]interface{}{
				"status":     billing.StatusPaid,
				"paid_at":    paidAt,
				"updated_at": paidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvoiceNotUnpaid
		}

		payment.InvoiceID = id
		return tx.Create(payment).Error
	})
}

// SumUnpaidByApartment returns the outstanding amount and number of unpaid invoices of an apartment
func (r *invoiceRepository) SumUnpaidByApartment(ctx context.Context, apartmentID uint) (int64, int64, error) {
	var result struct {
		Total int64 `gorm:"column:total"`
		Count int64 `gorm:"column:count"`
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count
		FROM invoices
		WHERE apartment_id = ? AND status = ?`, apartmentID, billing.StatusUnpaid).Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Total, result.Count, nil
}
