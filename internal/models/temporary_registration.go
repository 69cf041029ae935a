package models

import (
	"time"
)

// RegistrationType distinguishes temporary residence from temporary absence
type RegistrationType string

const (
	RegistrationResidence RegistrationType = "TEMPORARY_RESIDENCE"
	RegistrationAbsence   RegistrationType = "TEMPORARY_ABSENCE"
)

// RegistrationStatus is the review state of a registration request
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// TemporaryRegistration represents the temporary_registrations table
type TemporaryRegistration struct {
	ID          uint               `json:"id" gorm:"primarykey"`
	ResidentID  uint               `json:"resident_id" gorm:"column:resident_id;not null;index"`
	Resident    *Resident          `json:"resident,omitempty" gorm:"foreignKey:ResidentID"`
	ApartmentID uint               `json:"apartment_id" gorm:"column:apartment_id;not null;index"`
	Type        RegistrationType   `json:"type" gorm:"column:type;size:30;not null"`
	StartDate   time.Time          `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate     *time.Time         `json:"end_date" gorm:"column:end_date;type:date"`
	Reason      string             `json:"reason" gorm:"column:reason"`
	Status      RegistrationStatus `json:"status" gorm:"column:status;size:20;not null;index"`
	Note        string             `json:"note" gorm:"column:note"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName sets the insert table name for TemporaryRegistration
func (TemporaryRegistration) TableName() string {
	return "temporary_registrations"
}
