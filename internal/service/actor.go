package service

import (
	"apartment-be-svc/internal/billing"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID      uint
	Email       string
	Role        billing.Role
	ApartmentID *uint
}

// IsAdmin reports whether the actor holds the ADMIN role
func (a Actor) IsAdmin() bool {
	return a.Role == billing.RoleAdmin
}

// CanAccessApartment reports whether the actor may see data of the given apartment
func (a Actor) CanAccessApartment(apartmentID uint) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ApartmentID != nil && *a.ApartmentID == apartmentID
}
