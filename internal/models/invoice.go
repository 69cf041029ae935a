package models

import (
	"time"
)

// Invoice represents the invoices table
type Invoice struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	ApartmentID uint            `json:"apartment_id" gorm:"column:apartment_id;not null;uniqueIndex:idx_invoice_period"`
	Apartment   *Apartment      `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID"`
	Title       string          `json:"title" gorm:"column:title;size:200"`
	Month       int             `json:"month" gorm:"column:month;not null;uniqueIndex:idx_invoice_period"`
	Year        int             `json:"year" gorm:"column:year;not null;uniqueIndex:idx_invoice_period"`
	TotalAmount int64           `json:"total_amount" gorm:"column:total_amount;not null"`
	Status      string          `json:"status" gorm:"column:status;size:20;not null;index"`
	DueDate     time.Time       `json:"due_date" gorm:"column:due_date;type:date"`
	PaidAt      *time.Time      `json:"paid_at" gorm:"column:paid_at"`
	Details     []InvoiceDetail `json:"details,omitempty" gorm:"foreignKey:InvoiceID"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceDetail represents the invoice_details table
type InvoiceDetail struct {
	ID              uint    `json:"id" gorm:"primarykey"`
	InvoiceID       uint    `json:"invoice_id" gorm:"column:invoice_id;not null;index"`
	FeeDefinitionID *uint   `json:"fee_definition_id" gorm:"column:fee_definition_id"`
	FeeName         string  `json:"fee_name" gorm:"column:fee_name;size:150"`
	UnitPrice       int64   `json:"unit_price" gorm:"column:unit_price"`
	Quantity        float64 `json:"quantity" gorm:"column:quantity"`
	Unit            string  `json:"unit" gorm:"column:unit;size:20"`
	Amount          int64   `json:"amount" gorm:"column:amount"`
}

// TableName sets the insert table name for InvoiceDetail
func (InvoiceDetail) TableName() string {
	return "invoice_details"
}
