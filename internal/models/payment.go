package models

import (
	"time"
)

// Payment represents the payments table
type Payment struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	InvoiceID     uint      `json:"invoice_id" gorm:"column:invoice_id;not null;index"`
	Amount        int64     `json:"amount" gorm:"column:amount;not null"`
	Method        string    `json:"method" gorm:"column:method;size:30"`
	TransactionID string    `json:"transaction_id" gorm:"column:transaction_id;size:64;uniqueIndex"`
	PayerEmail    string    `json:"payer_email" gorm:"column:payer_email;size:150"`
	PaidAt        time.Time `json:"paid_at" gorm:"column:paid_at"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}
