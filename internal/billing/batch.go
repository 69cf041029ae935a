package billing

import (
	"context"
	"fmt"
	"strings"
)

// Settler settles a single invoice and returns the confirmation message
type Settler interface {
	SettleInvoice(ctx context.Context, invoiceID uint) (string, error)
}

// SettleFunc adapts a plain function to Settler
type SettleFunc func(ctx context.Context, invoiceID uint) (string, error)

func (f SettleFunc) SettleInvoice(ctx context.Context, invoiceID uint) (string, error) {
	return f(ctx, invoiceID)
}

// BatchResult is the outcome of a batch. Either every settlement succeeded and
// Messages holds one line per invoice, or the batch stopped at FailedID and only
// FailureMessage is reported.
type BatchResult struct {
	Succeeded      bool     `json:"succeeded"`
	Messages       []string `json:"messages,omitempty"`
	FailureMessage string   `json:"failureMessage,omitempty"`
	FailedID       uint     `json:"failedId,omitempty"`
}

// Joined returns the success messages one per line
func (r *BatchResult) Joined() string {
	return strings.Join(r.Messages, "\n")
}

// BatchExecutor settles invoices one after the other and stops at the first failure
type BatchExecutor struct {
	settler Settler
}

// NewBatchExecutor creates a BatchExecutor backed by settler
func NewBatchExecutor(settler Settler) *BatchExecutor {
	return &BatchExecutor{settler: settler}
}

// SettleBatch settles ids in the given order. One settlement is in flight at a
// time and nothing is retried. The returned error is non-nil only when ids itself
// is unusable; settlement failures are reported through the result.
func (e *BatchExecutor) SettleBatch(ctx context.Context, ids []uint) (*BatchResult, error) {
	if err := validateBatch(ids); err != nil {
		return nil, err
	}

	messages := make([]string, 0, len(ids))
	for _, id := range ids {
		msg, err := e.settler.SettleInvoice(ctx, id)
		if err != nil {
			return &BatchResult{
				Succeeded:      false,
				FailureMessage: err.Error(),
				FailedID:       id,
			}, nil
		}
		messages = append(messages, fmt.Sprintf("Invoice #%d: %s", id, msg))
	}

	return &BatchResult{Succeeded: true, Messages: messages}, nil
}

func validateBatch(ids []uint) error {
	if len(ids) == 0 {
		return NewValidationError("no invoices selected")
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return NewValidationError("invoice id must be positive")
		}
		if _, dup := seen[id]; dup {
			return NewValidationError(fmt.Sprintf("invoice #%d selected more than once", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
