package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// PaymentMethodSimulated marks payments recorded without a payment gateway
const PaymentMethodSimulated = "SIMULATED"

// InvoiceQuery is a zero-based page request over invoices
type InvoiceQuery struct {
	Page   int
	Size   int
	Search string
	Status string
}

// InvoiceExportFilter selects invoices for the Excel export
type InvoiceExportFilter struct {
	Status string
	Month  *int
	Year   *int
}

// GenerateInvoicesResponse summarises a monthly invoice generation run
type GenerateInvoicesResponse struct {
	Month           int      `json:"month"`
	Year            int      `json:"year"`
	TotalHouseholds int      `json:"total_households"`
	CreatedCount    int      `json:"created_count"`
	SkippedCount    int      `json:"skipped_count"`
	FailedCount     int      `json:"failed_count"`
	Errors          []string `json:"errors,omitempty"`
}

// InvoiceService defines the interface for invoice business operations
type InvoiceService interface {
	List(ctx context.Context, actor Actor, query InvoiceQuery) (*billing.InvoicePage, error)
	Get(ctx context.Context, actor Actor, id uint) (*billing.Invoice, error)
	Settle(ctx context.Context, actor Actor, id uint, amount *int64) (string, error)
	SettleBatch(ctx context.Context, actor Actor, ids []uint) (*billing.BatchResult, error)
	GenerateMonthly(ctx context.Context, month, year int) (*GenerateInvoicesResponse, error)
	ExportToExcel(ctx context.Context, filter InvoiceExportFilter) ([]byte, string, error)
}

// invoiceService implements InvoiceService
type invoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	householdRepo repository.HouseholdRepository
	feeRepo       repository.FeeRepository
	logger        *logger.Logger
	dueDay        int
	now           func() time.Time
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	householdRepo repository.HouseholdRepository,
	feeRepo repository.FeeRepository,
	dueDay int,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		householdRepo: householdRepo,
		feeRepo:       feeRepo,
		logger:        logger,
		dueDay:        dueDay,
		now:           time.Now,
	}
}

// List returns one page of invoices. Residents only ever see their own household.
func (s *invoiceService) List(ctx context.Context, actor Actor, query InvoiceQuery) (*billing.InvoicePage, error) {
	if query.Page < 0 {
		return nil, newError(ErrInvalidInput, "page must not be negative")
	}
	if query.Size <= 0 || query.Size > utils.MaxPageSize {
		return nil, newError(ErrInvalidInput, "size must be between 1 and %d", utils.MaxPageSize)
	}

	filter := repository.InvoiceFilter{
		Search: query.Search,
		Page:   query.Page,
		Size:   query.Size,
	}
	if query.Status != "" {
		status, err := billing.ParseInvoiceStatus(query.Status)
		if err != nil {
			return nil, newError(ErrInvalidInput, "status must be paid or unpaid")
		}
		filter.Status = string(status)
	}
	if !actor.IsAdmin() {
		if actor.ApartmentID == nil {
			return nil, newError(ErrForbidden, "account is not linked to a household")
		}
		filter.ApartmentID = actor.ApartmentID
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list invoices")
		return nil, err
	}

	return &billing.InvoicePage{
		Content:       toInvoices(invoices),
		Page:          query.Page,
		Size:          query.Size,
		TotalElements: total,
		TotalPages:    utils.TotalPages(total, query.Size),
	}, nil
}

// Get returns an invoice with its line items
func (s *invoiceService) Get(ctx context.Context, actor Actor, id uint) (*billing.Invoice, error) {
	invoice, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	out := toInvoice(invoice)
	return &out, nil
}

func (s *invoiceService) load(ctx context.Context, actor Actor, id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "invoice #%d not found", id)
		}
		s.logger.WithError(err).WithField("invoice_id", id).Error("Failed to get invoice")
		return nil, err
	}

	if !actor.CanAccessApartment(invoice.ApartmentID) {
		return nil, newError(ErrForbidden, "invoice #%d does not belong to your household", id)
	}

	return invoice, nil
}

// Settle marks an unpaid invoice as paid and records a simulated payment.
// When amount is given it must equal the invoice total.
func (s *invoiceService) Settle(ctx context.Context, actor Actor, id uint, amount *int64) (string, error) {
	invoice, err := s.load(ctx, actor, id)
	if err != nil {
		return "", err
	}

	if billing.InvoiceStatus(invoice.Status) == billing.StatusPaid {
		return "", newError(ErrConflict, "invoice is already paid")
	}
	if amount != nil && *amount != invoice.TotalAmount {
		return "", newError(ErrInvalidInput, "payment amount %d does not match invoice total %d", *amount, invoice.TotalAmount)
	}

	payment := &models.Payment{
		Amount:        invoice.TotalAmount,
		Method:        PaymentMethodSimulated,
		TransactionID: uuid.NewString(),
		PayerEmail:    actor.Email,
		PaidAt:        s.now(),
	}

	if err := s.invoiceRepo.Settle(ctx, id, payment); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotUnpaid) {
			return "", newError(ErrConflict, "invoice is already paid")
		}
		s.logger.WithError(err).WithField("invoice_id", id).Error("Failed to settle invoice")
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id":     id,
		"amount":         payment.Amount,
		"transaction_id": payment.TransactionID,
		"user_id":        actor.UserID,
	}).Info("Invoice settled")

	return fmt.Sprintf("Payment successful! Transaction ID: %s", payment.TransactionID), nil
}

// SettleBatch settles the invoices in order and stops at the first failure
func (s *invoiceService) SettleBatch(ctx context.Context, actor Actor, ids []uint) (*billing.BatchResult, error) {
	executor := billing.NewBatchExecutor(billing.SettleFunc(func(ctx context.Context, id uint) (string, error) {
		return s.Settle(ctx, actor, id, nil)
	}))

	result, err := executor.SettleBatch(ctx, ids)
	if err != nil {
		return nil, newError(ErrInvalidInput, "%s", err.Error())
	}

	fields := map[string]interface{}{
		"user_id":   actor.UserID,
		"count":     len(ids),
		"succeeded": result.Succeeded,
	}
	if !result.Succeeded {
		fields["failed_id"] = result.FailedID
		s.logger.WithFields(fields).Warn("Invoice batch stopped at first failure")
	} else {
		s.logger.WithFields(fields).Info("Invoice batch settled")
	}

	return result, nil
}

// GenerateMonthly creates one invoice per occupied household for the period from
// the mandatory monthly fees. Households already invoiced for the period are skipped.
func (s *invoiceService) GenerateMonthly(ctx context.Context, month, year int) (*GenerateInvoicesResponse, error) {
	if month < 1 || month > 12 {
		return nil, newError(ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, newError(ErrInvalidInput, "year is out of range")
	}

	fees, err := s.feeRepo.ListMandatoryMonthly(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fees: %w", err)
	}
	if len(fees) == 0 {
		return nil, newError(ErrInvalidInput, "no mandatory monthly fees are defined")
	}

	households, err := s.householdRepo.ListHouseholdsForBilling(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load households: %w", err)
	}

	resp := &GenerateInvoicesResponse{
		Month:           month,
		Year:            year,
		TotalHouseholds: len(households),
	}
	dueDate := time.Date(year, time.Month(month), s.dueDay, 0, 0, 0, 0, time.Local)

	for _, h := range households {
		exists, err := s.invoiceRepo.ExistsForPeriod(ctx, h.ID, month, year)
		if err != nil {
			resp.FailedCount++
			resp.Errors = append(resp.Errors, fmt.Sprintf("household %s: %v", h.RoomNumber, err))
			continue
		}
		if exists {
			resp.SkippedCount++
			continue
		}

		invoice := buildInvoice(h, fees, month, year, dueDate)
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			resp.FailedCount++
			resp.Errors = append(resp.Errors, fmt.Sprintf("household %s: %v", h.RoomNumber, err))
			s.logger.WithError(err).WithField("household_id", h.ID).Error("Failed to create invoice")
			continue
		}
		resp.CreatedCount++
	}

	s.logger.WithFields(map[string]interface{}{
		"month":   month,
		"year":    year,
		"created": resp.CreatedCount,
		"skipped": resp.SkippedCount,
		"failed":  resp.FailedCount,
	}).Info("Monthly invoices generated")

	return resp, nil
}

func buildInvoice(h *models.HouseholdRow, fees []*models.FeeDefinition, month, year int, dueDate time.Time) *models.Invoice {
	invoice := &models.Invoice{
		ApartmentID: h.ID,
		Title:       "Monthly fees " + billing.MonthLabel(month, year),
		Month:       month,
		Year:        year,
		Status:      string(billing.StatusUnpaid),
		DueDate:     dueDate,
	}

	for _, fee := range fees {
		feeID := fee.ID
		quantity := lineQuantity(fee.Unit, h)
		amount := decimal.NewFromInt(fee.UnitPrice).
			Mul(decimal.NewFromFloat(quantity)).
			Round(0).
			IntPart()

		invoice.Details = append(invoice.Details, models.InvoiceDetail{
			FeeDefinitionID: &feeID,
			FeeName:         fee.FeeName,
			UnitPrice:       fee.UnitPrice,
			Quantity:        quantity,
			Unit:            fee.Unit,
			Amount:          amount,
		})
		invoice.TotalAmount += amount
	}

	return invoice
}

func lineQuantity(unit string, h *models.HouseholdRow) float64 {
	switch strings.ToLower(unit) {
	case models.FeeUnitSquareMeter:
		return h.Area
	case models.FeeUnitPerson:
		return float64(h.MemberCount)
	default:
		return 1
	}
}
