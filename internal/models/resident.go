package models

import (
	"time"
)

// ResidentState is the residence status of a person
type ResidentState string

const (
	ResidentPermanent          ResidentState = "PERMANENT"
	ResidentTemporaryResidence ResidentState = "TEMPORARY_RESIDENCE"
	ResidentTemporaryAbsence   ResidentState = "TEMPORARY_ABSENCE"
)

// Resident represents the residents table
type Resident struct {
	ID          uint          `json:"id" gorm:"primarykey"`
	ApartmentID *uint         `json:"apartment_id" gorm:"column:apartment_id;index"`
	Name        string        `json:"name" gorm:"column:name;size:150;not null"`
	PhoneNumber string        `json:"phone_number" gorm:"column:phone_number;size:20"`
	Email       string        `json:"email" gorm:"column:email;size:150"`
	DateOfBirth *time.Time    `json:"date_of_birth" gorm:"column:date_of_birth;type:date"`
	State       ResidentState `json:"state" gorm:"column:state;size:30;default:PERMANENT"`
	Address     string        `json:"address" gorm:"column:address"`
	CitizenID   string        `json:"citizen_id" gorm:"column:citizen_id;size:20"`
	IsOwner     bool          `json:"is_owner" gorm:"column:is_owner;default:false"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
