package response

import (
	"time"

	"apartment-be-svc/internal/billing"
)

// PaymentHistoryItem represents a single settled payment
type PaymentHistoryItem struct {
	InvoiceID     uint      `json:"invoiceId" example:"12"`
	Title         string    `json:"title" example:"Phí dịch vụ T3/2024"`
	Amount        int64     `json:"amount" example:"500000"`
	TransactionID string    `json:"transactionId" example:"8b0f3f0e-9c43-4d2b-a1a4-0b9a5c1f2d11"`
	PaidAt        time.Time `json:"paidAt"`
}

// ResidentDashboardResponse is what a resident sees on the home screen
type ResidentDashboardResponse struct {
	Household      *billing.Household   `json:"household"`
	TotalDebt      int64                `json:"totalDebt" example:"300000"`
	UnpaidCount    int64                `json:"unpaidCount" example:"1"`
	RecentPayments []PaymentHistoryItem `json:"recentPayments"`
}
