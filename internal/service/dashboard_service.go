package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/models/response"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/pkg/logger"
)

const (
	// dashboardInvoiceWindow is how many invoices the admin dashboard aggregates
	dashboardInvoiceWindow = 1000
	recentPaymentsLimit    = 3
)

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetAdminDashboard(ctx context.Context) (*billing.DashboardSummary, error)
	GetResidentDashboard(ctx context.Context, actor Actor) (*response.ResidentDashboardResponse, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	householdRepo    repository.HouseholdRepository
	invoiceRepo      repository.InvoiceRepository
	registrationRepo repository.RegistrationRepository
	paymentRepo      repository.PaymentRepository
	logger           *logger.Logger
	now              func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	householdRepo repository.HouseholdRepository,
	invoiceRepo repository.InvoiceRepository,
	registrationRepo repository.RegistrationRepository,
	paymentRepo repository.PaymentRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		householdRepo:    householdRepo,
		invoiceRepo:      invoiceRepo,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		logger:           logger,
		now:              time.Now,
	}
}

// GetAdminDashboard loads households, invoices and pending requests concurrently and summarises them
func (s *dashboardService) GetAdminDashboard(ctx context.Context) (*billing.DashboardSummary, error) {
	var (
		householdCount int64
		invoices       []*models.Invoice
		pending        int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		householdCount, err = s.householdRepo.CountHouseholds(gctx)
		if err != nil {
			return fmt.Errorf("failed to count households: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		invoices, _, err = s.invoiceRepo.List(gctx, repository.InvoiceFilter{Page: 0, Size: dashboardInvoiceWindow})
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pending, err = s.registrationRepo.CountByStatus(gctx, models.RegistrationPending)
		if err != nil {
			return fmt.Errorf("failed to count pending registrations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("Failed to load admin dashboard")
		return nil, err
	}

	summary, err := billing.Summarize(s.now(), int(householdCount), pending, toInvoices(invoices))
	if err != nil {
		s.logger.WithError(err).Error("Failed to summarise invoices")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"households":      householdCount,
		"invoices":        len(invoices),
		"pending":         pending,
		"collection_rate": summary.CollectionRate,
	}).Info("Admin dashboard computed")

	return summary, nil
}

// GetResidentDashboard returns the resident's household, outstanding debt and latest payments
func (s *dashboardService) GetResidentDashboard(ctx context.Context, actor Actor) (*response.ResidentDashboardResponse, error) {
	if actor.ApartmentID == nil {
		return nil, newError(ErrForbidden, "account is not linked to a household")
	}
	apartmentID := *actor.ApartmentID

	var (
		household   *models.HouseholdRow
		totalDebt   int64
		unpaidCount int64
		payments    []*models.PaymentHistoryRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		household, err = s.householdRepo.GetHouseholdByID(gctx, apartmentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "household %d not found", apartmentID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		totalDebt, unpaidCount, err = s.invoiceRepo.SumUnpaidByApartment(gctx, apartmentID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListRecentByApartment(gctx, apartmentID, recentPaymentsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("household_id", apartmentID).Error("Failed to load resident dashboard")
		return nil, err
	}

	h := toHousehold(household)
	resp := &response.ResidentDashboardResponse{
		Household:      &h,
		TotalDebt:      totalDebt,
		UnpaidCount:    unpaidCount,
		RecentPayments: make([]response.PaymentHistoryItem, 0, len(payments)),
	}
	for _, p := range payments {
		resp.RecentPayments = append(resp.RecentPayments, response.PaymentHistoryItem{
			InvoiceID:     p.InvoiceID,
			Title:         p.Title,
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
			PaidAt:        p.PaidAt,
		})
	}

	return resp, nil
}
