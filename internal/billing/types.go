// Package billing holds the invoice aggregation and settlement logic shared by
// the portal backend and the portal client, together with the wire types of the
// portal REST contract.
package billing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus is the settlement state of an invoice
type InvoiceStatus string

const (
	StatusPaid   InvoiceStatus = "paid"
	StatusUnpaid InvoiceStatus = "unpaid"
)

// ParseInvoiceStatus accepts only the known statuses
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPaid:
		return StatusPaid, nil
	case StatusUnpaid:
		return StatusUnpaid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownInvoiceStatus, s)
}

// Valid reports whether s is one of the known statuses
func (s InvoiceStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseInvoiceStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Role is the portal role of an authenticated user
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
)

// ParseRole accepts only the known roles
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleResident:
		return RoleResident, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// LineItem is one fee line of an invoice. Amount is unitPrice x quantity rounded to whole VND.
type LineItem struct {
	ID        uint    `json:"id"`
	FeeName   string  `json:"feeName"`
	UnitPrice int64   `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Amount    int64   `json:"amount"`
}

// Invoice is a single billing-period charge owed by a household
type Invoice struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	TotalAmount int64         `json:"totalAmount"`
	Status      InvoiceStatus `json:"status"`
	DueDate     time.Time     `json:"dueDate"`
	RoomNumber  string        `json:"roomNumber"`
	Details     []LineItem    `json:"details,omitempty"`
}

// Household is an apartment together with its owner and occupancy
type Household struct {
	ID          uint    `json:"id"`
	Building    string  `json:"building"`
	RoomNumber  string  `json:"roomNumber"`
	OwnerName   string  `json:"ownerName"`
	Area        float64 `json:"area"`
	MemberCount int     `json:"memberCount"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
}

// User is an authenticated portal user
type User struct {
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	HouseholdID *uint  `json:"householdId,omitempty"`
}

// IsAdmin reports whether the user holds the ADMIN role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// InvoicePage is one page of an invoice listing
type InvoicePage struct {
	Content       []Invoice `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}
