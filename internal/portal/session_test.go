package portal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/billing"
)

type fakePaymentAPI struct {
	mu        sync.Mutex
	unpaid    map[uint]int64
	failing   map[uint]string
	settled   []uint
	listCalls int
	listErr   error
	block     chan struct{}
}

func newFakePaymentAPI() *fakePaymentAPI {
	return &fakePaymentAPI{
		unpaid:  map[uint]int64{5: 500000, 6: 300000, 7: 200000},
		failing: map[uint]string{},
	}
}

func (f *fakePaymentAPI) ListInvoices(ctx context.Context, q InvoiceQuery) (*billing.InvoicePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := &billing.InvoicePage{Size: q.Size}
	for _, id := range []uint{5, 6, 7} {
		if amount, ok := f.unpaid[id]; ok {
			page.Content = append(page.Content, billing.Invoice{ID: id, TotalAmount: amount, Status: billing.StatusUnpaid})
		}
	}
	page.TotalElements = int64(len(page.Content))
	return page, nil
}

func (f *fakePaymentAPI) SettleInvoice(ctx context.Context, id uint) (string, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.settled = append(f.settled, id)
	if reason, ok := f.failing[id]; ok {
		return "", &billing.Error{Kind: billing.ServerRejection, Message: reason}
	}
	if _, ok := f.unpaid[id]; !ok {
		return "", &billing.Error{Kind: billing.ServerRejection, StatusCode: 409, Message: "invoice is already paid"}
	}
	delete(f.unpaid, id)
	return "OK", nil
}

func TestPaymentSession_SuccessfulBatch(t *testing.T) {
	api := newFakePaymentAPI()
	session := NewPaymentSession(api)
	require.NoError(t, session.Load(context.Background()))
	assert.Equal(t, billing.Idle, session.State())

	_, err := session.Toggle(6)
	require.NoError(t, err)
	_, err = session.Toggle(5)
	require.NoError(t, err)
	assert.Equal(t, billing.Selectable, session.State())
	assert.Equal(t, int64(800000), session.SelectedTotal())

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, []string{"Invoice #6: OK", "Invoice #5: OK"}, result.Messages)
	assert.Equal(t, []uint{6, 5}, api.settled)

	assert.Empty(t, session.Selected())
	assert.Equal(t, billing.Idle, session.State())
	assert.Equal(t, 2, api.listCalls)
	require.Len(t, session.Invoices(), 1)
	assert.Equal(t, uint(7), session.Invoices()[0].ID)
}

func TestPaymentSession_FailedBatchKeepsSelection(t *testing.T) {
	api := newFakePaymentAPI()
	api.failing[6] = "insufficient funds"
	session := NewPaymentSession(api)
	require.NoError(t, session.Load(context.Background()))

	for _, id := range []uint{5, 6, 7} {
		_, err := session.Toggle(id)
		require.NoError(t, err)
	}

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "insufficient funds", result.FailureMessage)
	assert.Empty(t, result.Messages)

	assert.Equal(t, []uint{5, 6}, api.settled)
	assert.Equal(t, []uint{5, 6, 7}, session.Selected())
	assert.Len(t, session.Invoices(), 3)
	assert.Equal(t, 1, api.listCalls)
	assert.Equal(t, billing.Selectable, session.State())
}

func TestPaymentSession_ResubmitAfterFailureNeedsReload(t *testing.T) {
	api := newFakePaymentAPI()
	api.failing[6] = "insufficient funds"
	session := NewPaymentSession(api)
	ctx := context.Background()
	require.NoError(t, session.Load(ctx))

	for _, id := range []uint{5, 6} {
		_, err := session.Toggle(id)
		require.NoError(t, err)
	}
	result, err := session.Submit(ctx)
	require.NoError(t, err)
	require.False(t, result.Succeeded)

	delete(api.failing, 6)
	result, err = session.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "invoice is already paid", result.FailureMessage)
	assert.Equal(t, uint(5), result.FailedID)

	require.NoError(t, session.Load(ctx))
	assert.Len(t, session.Invoices(), 2)
	assert.Equal(t, []uint{6}, session.Selected())

	result, err = session.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, []uint{5, 6, 5, 6}, api.settled)
}

func TestPaymentSession_RejectsConcurrentSubmit(t *testing.T) {
	api := newFakePaymentAPI()
	api.block = make(chan struct{})
	session := NewPaymentSession(api)
	require.NoError(t, session.Load(context.Background()))
	_, err := session.Toggle(5)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return session.State() == billing.Processing }, time.Second, 5*time.Millisecond)

	_, err = session.Submit(context.Background())
	assert.ErrorIs(t, err, billing.ErrBatchInProgress)
	_, err = session.Toggle(6)
	assert.ErrorIs(t, err, billing.ErrBatchInProgress)

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, billing.Idle, session.State())
}

func TestPaymentSession_SelectionValidation(t *testing.T) {
	session := NewPaymentSession(newFakePaymentAPI())
	require.NoError(t, session.Load(context.Background()))

	_, err := session.Toggle(42)
	kind, _ := billing.KindOf(err)
	assert.Equal(t, billing.ValidationFailure, kind)

	_, err = session.Submit(context.Background())
	kind, _ = billing.KindOf(err)
	assert.Equal(t, billing.ValidationFailure, kind)

	selected, err := session.Toggle(5)
	require.NoError(t, err)
	assert.True(t, selected)
	selected, err = session.Toggle(5)
	require.NoError(t, err)
	assert.False(t, selected)
}

func TestPaymentSession_FailedLoadKeepsPreviousList(t *testing.T) {
	api := newFakePaymentAPI()
	session := NewPaymentSession(api)
	require.NoError(t, session.Load(context.Background()))

	api.listErr = errors.New("connection reset")
	assert.Error(t, session.Load(context.Background()))
	assert.Len(t, session.Invoices(), 3)
}
