package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserAccount represents the user_accounts table
type UserAccount struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Email        string    `json:"email" gorm:"column:email;size:150;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	FullName     string    `json:"full_name" gorm:"column:full_name;size:150"`
	Role         string    `json:"role" gorm:"column:role;size:20;not null"`
	ResidentID   *uint     `json:"resident_id" gorm:"column:resident_id;uniqueIndex"`
	Resident     *Resident `json:"resident,omitempty" gorm:"foreignKey:ResidentID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the insert table name for UserAccount
func (UserAccount) TableName() string {
	return "user_accounts"
}

// BeforeSave keeps the login email in line with the linked resident record
func (u *UserAccount) BeforeSave(tx *gorm.DB) error {
	if u.Resident != nil && strings.TrimSpace(u.Resident.Email) != "" {
		u.Email = u.Resident.Email
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
