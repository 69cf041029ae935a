package models

import (
	"time"
)

// HouseholdRow is an apartment joined with its owner and resident count
type HouseholdRow struct {
	ID          uint    `gorm:"column:id"`
	Building    string  `gorm:"column:building"`
	RoomNumber  string  `gorm:"column:room_number"`
	Area        float64 `gorm:"column:area"`
	OwnerName   string  `gorm:"column:owner_name"`
	PhoneNumber string  `gorm:"column:phone_number"`
	MemberCount int     `gorm:"column:member_count"`
}

// PaymentHistoryRow is a payment joined with the title of its invoice
type PaymentHistoryRow struct {
	InvoiceID     uint   `gorm:"column:invoice_id"`
	Title         string `gorm:"column:title"`
	Amount        int64  `gorm:"column:amount"`
	TransactionID string `gorm:"column:transaction_id"`
	PaidAt        time.Time `gorm:"column:paid_at"`
}
