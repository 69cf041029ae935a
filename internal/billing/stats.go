package billing

import (
	"fmt"
	"time"
)

// StatWindowMonths is the number of monthly buckets shown on the dashboard chart
const StatWindowMonths = 6

// StatBucket accumulates paid and unpaid amounts for one month
type StatBucket struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
	Debt    int64  `json:"debt"`
}

// MonthLabel formats a bucket label, e.g. "T3/2024"
func MonthLabel(month, year int) string {
	return fmt.Sprintf("T%d/%d", month, year)
}

type monthKey struct {
	month int
	year  int
}

// ComputeMonthlyStats folds invoices into the current month and the five months
// before it, oldest first. Buckets are keyed by the invoice's month and year; paid
// amounts go to revenue and unpaid amounts to debt. Invoices outside the window
// are skipped. An invoice with any other status fails the whole computation.
func ComputeMonthlyStats(now time.Time, invoices []Invoice) ([StatWindowMonths]StatBucket, error) {
	var buckets [StatWindowMonths]StatBucket
	index := make(map[monthKey]int, StatWindowMonths)

	for i := 0; i < StatWindowMonths; i++ {
		offset := StatWindowMonths - 1 - i
		t := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, now.Location())
		key := monthKey{month: int(t.Month()), year: t.Year()}
		index[key] = i
		buckets[i] = StatBucket{Month: MonthLabel(key.month, key.year)}
	}

	for _, inv := range invoices {
		if !inv.Status.Valid() {
			return [StatWindowMonths]StatBucket{}, fmt.Errorf("invoice #%d: %w: %q", inv.ID, ErrUnknownInvoiceStatus, inv.Status)
		}

		i, ok := index[monthKey{month: inv.Month, year: inv.Year}]
		if !ok {
			continue
		}

		if inv.Status == StatusPaid {
			buckets[i].Revenue += inv.TotalAmount
		} else {
			buckets[i].Debt += inv.TotalAmount
		}
	}

	return buckets, nil
}
