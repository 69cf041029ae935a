package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
)

type fakeGenerator struct {
	month, year int
	err         error
}

func (f *fakeGenerator) GenerateMonthly(ctx context.Context, month, year int) (*service.GenerateInvoicesResponse, error) {
	f.month, f.year = month, year
	if f.err != nil {
		return nil, f.err
	}
	return &service.GenerateInvoicesResponse{Month: month, Year: year, TotalHouseholds: 2, CreatedCount: 2}, nil
}

type memoryLogRepo struct {
	entries []*models.SchedulerLog
}

func (r *memoryLogRepo) Create(ctx context.Context, entry *models.SchedulerLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryLogRepo) statuses() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Status)
	}
	return out
}

func newTestScheduler(gen *fakeGenerator, logs *memoryLogRepo) *InvoiceScheduler {
	s := NewInvoiceScheduler(gen, logs, logger.NewNopLogger(), "0 0 1 1 * *")
	s.now = func() time.Time { return time.Date(2024, time.April, 1, 1, 0, 0, 0, time.Local) }
	return s
}

func TestRun_Success(t *testing.T) {
	gen := &fakeGenerator{}
	logs := &memoryLogRepo{}

	newTestScheduler(gen, logs).Run(context.Background())

	assert.Equal(t, 4, gen.month)
	assert.Equal(t, 2024, gen.year)
	assert.Equal(t, []string{models.SchedulerStart, models.SchedulerRunning, models.SchedulerSuccess}, logs.statuses())

	runID := logs.entries[0].RunID
	require.NotEmpty(t, runID)
	for _, e := range logs.entries {
		assert.Equal(t, runID, e.RunID)
		assert.Equal(t, MonthlyInvoiceJobCode, e.SchedulerCode)
	}
	assert.Contains(t, logs.entries[2].Message, `"created_count":2`)
}

func TestRun_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("database unavailable")}
	logs := &memoryLogRepo{}

	newTestScheduler(gen, logs).Run(context.Background())

	assert.Equal(t, []string{models.SchedulerStart, models.SchedulerRunning, models.SchedulerFailed}, logs.statuses())
	assert.Contains(t, logs.entries[2].Message, "database unavailable")
}

func TestStart_InvalidExpression(t *testing.T) {
	s := NewInvoiceScheduler(&fakeGenerator{}, &memoryLogRepo{}, logger.NewNopLogger(), "not a cron")
	assert.Error(t, s.Start())
}
