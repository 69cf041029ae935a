package portal

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"apartment-be-svc/internal/billing"
)

// DashboardSource is the part of the API the admin dashboard reads
type DashboardSource interface {
	ListHouseholds(ctx context.Context) ([]billing.Household, error)
	ListInvoices(ctx context.Context, q InvoiceQuery) (*billing.InvoicePage, error)
	CountPendingRegistrations(ctx context.Context) (int64, error)
}

// LoadAdminDashboard fetches households, invoices and pending requests
// concurrently, waits for all of them and summarises the result.
// Any failed fetch fails the whole load.
func LoadAdminDashboard(ctx context.Context, src DashboardSource, now time.Time) (*billing.DashboardSummary, error) {
	var (
		households []billing.Household
		page       *billing.InvoicePage
		pending    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		households, err = src.ListHouseholds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = src.ListInvoices(gctx, InvoiceQuery{Page: 0, Size: MaxPageSize})
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = src.CountPendingRegistrations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return billing.Summarize(now, len(households), pending, page.Content)
}
