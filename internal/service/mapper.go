package service

import (
	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/models"
)

func toHousehold(row *models.HouseholdRow) billing.Household {
	return billing.Household{
		ID:          row.ID,
		Building:    row.Building,
		RoomNumber:  row.RoomNumber,
		OwnerName:   row.OwnerName,
		Area:        row.Area,
		MemberCount: row.MemberCount,
		PhoneNumber: row.PhoneNumber,
	}
}

func toInvoice(inv *models.Invoice) billing.Invoice {
	out := billing.Invoice{
		ID:          inv.ID,
		Title:       inv.Title,
		Month:       inv.Month,
		Year:        inv.Year,
		TotalAmount: inv.TotalAmount,
		Status:      billing.InvoiceStatus(inv.Status),
		DueDate:     inv.DueDate,
	}
	if inv.Apartment != nil {
		out.RoomNumber = inv.Apartment.RoomNumber
	}
	for _, d := range inv.Details {
		out.Details = append(out.Details, billing.LineItem{
			ID:        d.ID,
			FeeName:   d.FeeName,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Unit:      d.Unit,
			Amount:    d.Amount,
		})
	}
	return out
}

func toInvoices(invoices []*models.Invoice) []billing.Invoice {
	out := make([]billing.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoice(inv))
	}
	return out
}

func toUser(u *models.UserAccount) billing.User {
	user := billing.User{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     billing.Role(u.Role),
	}
	if u.Resident != nil {
		if user.FullName == "" {
			user.FullName = u.Resident.Name
		}
		user.HouseholdID = u.Resident.ApartmentID
	}
	return user
}
