package billing

import (
	"fmt"
	"strconv"
	"time"
)

// CardVariant names one of the stat cards shown on the admin dashboard
type CardVariant string

const (
	CardHouseholds      CardVariant = "households"
	CardRevenue         CardVariant = "revenue"
	CardDebt            CardVariant = "debt"
	CardPendingRequests CardVariant = "pending_requests"
)

// CardStyle is the visual configuration of a card variant
type CardStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var cardStyles = map[CardVariant]CardStyle{
	CardHouseholds:      {Icon: "users", Color: "blue"},
	CardRevenue:         {Icon: "dollar-sign", Color: "green"},
	CardDebt:            {Icon: "alert-circle", Color: "red"},
	CardPendingRequests: {Icon: "file-text", Color: "orange"},
}

// Style returns the style of v and false for an unknown variant
func (v CardVariant) Style() (CardStyle, bool) {
	style, ok := cardStyles[v]
	return style, ok
}

// StatCard is a single headline figure on the dashboard
type StatCard struct {
	Variant CardVariant `json:"variant"`
	Title   string      `json:"title"`
	Value   string      `json:"value"`
	Style   CardStyle   `json:"style"`
}

// NewStatCard builds a card, rejecting variants without a style
func NewStatCard(variant CardVariant, title, value string) (StatCard, error) {
	style, ok := variant.Style()
	if !ok {
		return StatCard{}, fmt.Errorf("unknown card variant %q", variant)
	}
	return StatCard{Variant: variant, Title: title, Value: value, Style: style}, nil
}

// DashboardSummary is everything the admin dashboard renders
type DashboardSummary struct {
	Cards           []StatCard                   `json:"cards"`
	Stats           [StatWindowMonths]StatBucket `json:"stats"`
	RecentActivity  []Invoice                    `json:"recentActivity"`
	HouseholdCount  int                          `json:"householdCount"`
	PendingRequests int64                        `json:"pendingRequests"`
	TotalRevenue    int64                        `json:"totalRevenue"`
	TotalDebt       int64                        `json:"totalDebt"`
	CollectionRate  int                          `json:"collectionRate"`
}

// Summarize derives the admin dashboard from freshly fetched data
func Summarize(now time.Time, householdCount int, pendingRequests int64, invoices []Invoice) (*DashboardSummary, error) {
	stats, err := ComputeMonthlyStats(now, invoices)
	if err != nil {
		return nil, err
	}

	revenue := PaidSum(invoices)
	debt := UnpaidSum(invoices)

	specs := []struct {
		variant CardVariant
		title   string
		value   string
	}{
		{CardHouseholds, "Total Households", strconv.Itoa(householdCount)},
		{CardRevenue, "Total Revenue", FormatCurrency(revenue)},
		{CardDebt, "Outstanding Debt", FormatCurrency(debt)},
		{CardPendingRequests, "Pending Requests", strconv.FormatInt(pendingRequests, 10)},
	}

	cards := make([]StatCard, 0, len(specs))
	for _, s := range specs {
		card, err := NewStatCard(s.variant, s.title, s.value)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return &DashboardSummary{
		Cards:           cards,
		Stats:           stats,
		RecentActivity:  RecentActivity(invoices, RecentActivityLimit),
		HouseholdCount:  householdCount,
		PendingRequests: pendingRequests,
		TotalRevenue:    revenue,
		TotalDebt:       debt,
		CollectionRate:  CollectionRate(revenue, debt),
	}, nil
}
