package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RecentActivityLimit is how many paid invoices the dashboard lists
const RecentActivityLimit = 5

// PaidSum adds up the amounts of paid invoices
func PaidSum(invoices []Invoice) int64 {
	return sumByStatus(invoices, StatusPaid)
}

// UnpaidSum adds up the amounts of unpaid invoices
func UnpaidSum(invoices []Invoice) int64 {
	return sumByStatus(invoices, StatusUnpaid)
}

func sumByStatus(invoices []Invoice, status InvoiceStatus) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status == status {
			total += inv.TotalAmount
		}
	}
	return total
}

// CollectionRate returns round(100 * paid / (paid + unpaid)) as a whole percentage,
// or 0 when nothing has been billed.
func CollectionRate(paid, unpaid int64) int {
	total := paid + unpaid
	if total <= 0 {
		return 0
	}

	rate := decimal.NewFromInt(paid).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(0)

	return int(rate.IntPart())
}

// RecentActivity returns up to limit paid invoices, highest id first.
// Ids are server-assigned in creation order so they stand in for recency.
func RecentActivity(invoices []Invoice, limit int) []Invoice {
	paid := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == StatusPaid {
			paid = append(paid, inv)
		}
	}

	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].ID > paid[j].ID
	})

	if limit >= 0 && len(paid) > limit {
		paid = paid[:limit]
	}
	return paid
}
