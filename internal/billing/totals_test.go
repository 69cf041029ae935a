package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSums(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Status: StatusPaid, TotalAmount: 100},
		{ID: 2, Status: StatusUnpaid, TotalAmount: 40},
		{ID: 3, Status: StatusPaid, TotalAmount: 60},
	}
	assert.Equal(t, int64(160), PaidSum(invoices))
	assert.Equal(t, int64(40), UnpaidSum(invoices))
	assert.Zero(t, PaidSum(nil))
}

func TestCollectionRate(t *testing.T) {
	tests := []struct {
		name         string
		paid, unpaid int64
		want         int
	}{
		{"nothing billed", 0, 0, 0},
		{"all paid", 500, 0, 100},
		{"nothing paid", 0, 500, 0},
		{"example", 500000, 300000, 63},
		{"rounds half up", 1, 7, 13},
		{"rounds down", 1, 2, 33},
		{"two thirds", 2, 1, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectionRate(tt.paid, tt.unpaid))
		})
	}
}

func TestRecentActivity(t *testing.T) {
	invoices := []Invoice{
		{ID: 3, Status: StatusPaid},
		{ID: 10, Status: StatusUnpaid},
		{ID: 7, Status: StatusPaid},
		{ID: 1, Status: StatusPaid},
		{ID: 9, Status: StatusPaid},
		{ID: 2, Status: StatusPaid},
		{ID: 8, Status: StatusPaid},
	}

	recent := RecentActivity(invoices, RecentActivityLimit)

	ids := make([]uint, 0, len(recent))
	for _, inv := range recent {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []uint{9, 8, 7, 3, 2}, ids)
}

func TestRecentActivity_FewerThanLimit(t *testing.T) {
	recent := RecentActivity([]Invoice{{ID: 1, Status: StatusUnpaid}, {ID: 2, Status: StatusPaid}}, 5)
	assert.Len(t, recent, 1)
	assert.Empty(t, RecentActivity(nil, 5))
}
