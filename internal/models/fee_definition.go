package models

import (
	"time"
)

// Fee units decide how the quantity of a generated line item is computed
const (
	FeeUnitSquareMeter = "m2"
	FeeUnitPerson      = "person"
	FeeUnitApartment   = "apartment"
	FeeUnitFixed       = "fixed"
)

// Billing cycles of a fee definition
const (
	BillingCycleMonthly = "MONTHLY"
	BillingCycleOneTime = "ONE_TIME"
)

// FeeDefinition represents the fee_definitions table
type FeeDefinition struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	FeeName      string    `json:"feeName" gorm:"column:fee_name;size:150;not null"`
	Description  string    `json:"description" gorm:"column:description"`
	UnitPrice    int64     `json:"unitPrice" gorm:"column:unit_price;not null"`
	Unit         string    `json:"unit" gorm:"column:unit;size:20;not null"`
	BillingCycle string    `json:"billingCycle" gorm:"column:billing_cycle;size:20;not null"`
	IsMandatory  bool      `json:"isMandatory" gorm:"column:is_mandatory;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName sets the insert table name for FeeDefinition
func (FeeDefinition) TableName() string {
	return "fee_definitions"
}
