package portal

import (
	"context"
	"fmt"
	"sync"

	"apartment-be-svc/internal/billing"
)

// UnpaidPageSize is how many unpaid invoices a resident session loads
const UnpaidPageSize = 100

// PaymentAPI is what a payment session needs from the backend
type PaymentAPI interface {
	billing.Settler
	ListInvoices(ctx context.Context, q InvoiceQuery) (*billing.InvoicePage, error)
}

// PaymentSession holds a resident's unpaid invoices and the invoices selected
// for payment. Only one batch can be in flight at a time.
type PaymentSession struct {
	api PaymentAPI

	mu         sync.Mutex
	unpaid     []billing.Invoice
	selection  *billing.Selection
	processing bool
}

// NewPaymentSession creates an empty session
func NewPaymentSession(api PaymentAPI) *PaymentSession {
	return &PaymentSession{
		api:       api,
		selection: billing.NewSelection(),
	}
}

// Load fetches the unpaid invoices. On failure the previous list is kept.
// Selected invoices that are no longer unpaid are dropped from the selection.
func (s *PaymentSession) Load(ctx context.Context) error {
	page, err := s.api.ListInvoices(ctx, InvoiceQuery{Page: 0, Size: UnpaidPageSize, Status: billing.StatusUnpaid})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unpaid = page.Content
	present := make(map[uint]struct{}, len(page.Content))
	for _, inv := range page.Content {
		present[inv.ID] = struct{}{}
	}
	s.selection.Retain(func(id uint) bool {
		_, ok := present[id]
		return ok
	})
	return nil
}

// Invoices returns the currently loaded unpaid invoices
func (s *PaymentSession) Invoices() []billing.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]billing.Invoice, len(s.unpaid))
	copy(out, s.unpaid)
	return out
}

// Toggle selects or deselects a loaded invoice and reports whether it is now selected
func (s *PaymentSession) Toggle(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing {
		return false, billing.ErrBatchInProgress
	}
	if !s.isLoaded(id) {
		return false, billing.NewValidationError(fmt.Sprintf("invoice #%d is not in the unpaid list", id))
	}
	return s.selection.Toggle(id), nil
}

func (s *PaymentSession) isLoaded(id uint) bool {
	for _, inv := range s.unpaid {
		if inv.ID == id {
			return true
		}
	}
	return false
}

// Selected returns the selected invoice ids in selection order
func (s *PaymentSession) Selected() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// SelectedTotal sums the amounts of the selected invoices
func (s *PaymentSession) SelectedTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, inv := range s.unpaid {
		if s.selection.Has(inv.ID) {
			total += inv.TotalAmount
		}
	}
	return total
}

// State reports the batch button state
func (s *PaymentSession) State() billing.BatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return billing.StateOf(s.selection.Len(), s.processing)
}

// Submit settles the selected invoices in selection order, stopping at the first failure.
// After a successful batch the selection is cleared and the unpaid list is fetched again;
// a failure of that refresh is returned together with the successful result.
// After a failed batch the selection and the loaded list are left untouched, so invoices
// settled before the failure stay listed and selected. Submitting again stops at the first
// of them with "invoice is already paid"; Load drops them from the list and the selection.
func (s *PaymentSession) Submit(ctx context.Context) (*billing.BatchResult, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, billing.ErrBatchInProgress
	}
	ids := s.selection.IDs()
	if len(ids) == 0 {
		s.mu.Unlock()
		return nil, billing.NewValidationError("no invoices selected")
	}
	s.processing = true
	s.mu.Unlock()

	result, err := billing.NewBatchExecutor(s.api).SettleBatch(ctx, ids)

	s.mu.Lock()
	s.processing = false
	if err == nil && result.Succeeded {
		s.selection.Clear()
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !result.Succeeded {
		return result, nil
	}

	if err := s.Load(ctx); err != nil {
		return result, fmt.Errorf("refresh unpaid invoices: %w", err)
	}
	return result, nil
}
