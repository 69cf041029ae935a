package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSettler struct {
	calls    []uint
	failOn   map[uint]error
	messages map[uint]string
}

func (r *recordingSettler) SettleInvoice(_ context.Context, id uint) (string, error) {
	r.calls = append(r.calls, id)
	if err, ok := r.failOn[id]; ok {
		return "", err
	}
	if msg, ok := r.messages[id]; ok {
		return msg, nil
	}
	return "OK", nil
}

func TestSettleBatch_AllSucceed(t *testing.T) {
	settler := &recordingSettler{messages: map[uint]string{4: "Paid"}}
	exec := NewBatchExecutor(settler)

	result, err := exec.SettleBatch(context.Background(), []uint{7, 4, 12})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, []uint{7, 4, 12}, settler.calls)
	assert.Equal(t, []string{"Invoice #7: OK", "Invoice #4: Paid", "Invoice #12: OK"}, result.Messages)
	assert.Equal(t, "Invoice #7: OK\nInvoice #4: Paid\nInvoice #12: OK", result.Joined())
	assert.Empty(t, result.FailureMessage)
}

func TestSettleBatch_FailFast(t *testing.T) {
	settler := &recordingSettler{failOn: map[uint]error{6: errors.New("insufficient funds")}}
	exec := NewBatchExecutor(settler)

	result, err := exec.SettleBatch(context.Background(), []uint{5, 6})
	require.NoError(t, err)

	assert.False(t, result.Succeeded)
	assert.Equal(t, "insufficient funds", result.FailureMessage)
	assert.Equal(t, uint(6), result.FailedID)
	assert.Empty(t, result.Messages)
}

func TestSettleBatch_NoCallsAfterFailure(t *testing.T) {
	settler := &recordingSettler{failOn: map[uint]error{2: &Error{Kind: ServerRejection, Message: "invoice is already paid"}}}
	exec := NewBatchExecutor(settler)

	result, err := exec.SettleBatch(context.Background(), []uint{1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2}, settler.calls)
	assert.Equal(t, "invoice is already paid", result.FailureMessage)
}

func TestSettleBatch_InvalidInput(t *testing.T) {
	exec := NewBatchExecutor(SettleFunc(func(context.Context, uint) (string, error) {
		t.Fatal("settler must not be called")
		return "", nil
	}))

	for _, ids := range [][]uint{nil, {}, {1, 0}, {3, 3}} {
		_, err := exec.SettleBatch(context.Background(), ids)
		require.Error(t, err)
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, ValidationFailure, kind)
	}
}
