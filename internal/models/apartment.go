package models

import (
	"time"
)

// Apartment represents the apartments table
type Apartment struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	Building   string     `json:"building" gorm:"column:building;size:50;not null"`
	RoomNumber string     `json:"room_number" gorm:"column:room_number;size:20;not null;uniqueIndex"`
	Floor      int        `json:"floor" gorm:"column:floor"`
	Area       float64    `json:"area" gorm:"column:area"`
	Type       string     `json:"type" gorm:"column:type;size:50"`
	Status     string     `json:"status" gorm:"column:status;size:30"`
	Residents  []Resident `json:"residents,omitempty" gorm:"foreignKey:ApartmentID"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}
