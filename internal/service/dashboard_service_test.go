package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
)

func TestDashboardService_Admin(t *testing.T) {
	invoices := newFakeInvoiceRepo(
		&models.Invoice{ID: 1, ApartmentID: 1, Month: 3, Year: 2024, TotalAmount: 500000, Status: "paid"},
		&models.Invoice{ID: 2, ApartmentID: 2, Month: 3, Year: 2024, TotalAmount: 300000, Status: "unpaid"},
	)
	regs := newFakeRegistrationRepo()
	regs.pending = 4

	svc := NewDashboardService(newFakeHouseholdRepo(), invoices, regs, &fakePaymentRepo{}, testLogger).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC) }

	summary, err := svc.GetAdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.HouseholdCount)
	assert.Equal(t, int64(4), summary.PendingRequests)
	assert.Equal(t, 63, summary.CollectionRate)
	assert.Equal(t, 1000, invoices.lastList.Size)
	assert.Equal(t, billing.StatBucket{Month: "T3/2024", Revenue: 500000, Debt: 300000}, summary.Stats[4])
	assert.Equal(t, "T4/2024", summary.Stats[5].Month)
}

func TestDashboardService_Resident(t *testing.T) {
	invoices := newFakeInvoiceRepo(
		&models.Invoice{ID: 1, ApartmentID: 1, TotalAmount: 500000, Status: "unpaid"},
		&models.Invoice{ID: 2, ApartmentID: 1, TotalAmount: 200000, Status: "unpaid"},
		&models.Invoice{ID: 3, ApartmentID: 2, TotalAmount: 900000, Status: "unpaid"},
	)
	payments := &fakePaymentRepo{rows: []*models.PaymentHistoryRow{
		{InvoiceID: 9, Amount: 100, TransactionID: "t9"},
		{InvoiceID: 8, Amount: 100, TransactionID: "t8"},
		{InvoiceID: 7, Amount: 100, TransactionID: "t7"},
		{InvoiceID: 6, Amount: 100, TransactionID: "t6"},
	}}
	svc := NewDashboardService(newFakeHouseholdRepo(), invoices, newFakeRegistrationRepo(), payments, testLogger)

	resp, err := svc.GetResidentDashboard(context.Background(), resident)
	require.NoError(t, err)
	assert.Equal(t, "A-101", resp.Household.RoomNumber)
	assert.Equal(t, int64(700000), resp.TotalDebt)
	assert.Equal(t, int64(2), resp.UnpaidCount)
	assert.Len(t, resp.RecentPayments, 3)

	_, err = svc.GetResidentDashboard(context.Background(), admin)
	assert.ErrorIs(t, err, ErrForbidden)
}
