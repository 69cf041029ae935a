package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/repository"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
)

// MonthlyInvoiceJobCode identifies the monthly invoice job in scheduler_logs
const MonthlyInvoiceJobCode = "MONTHLY_INVOICE_GENERATION"

const jobTimeout = 10 * time.Minute

// InvoiceGenerator creates the invoices of one billing period
type InvoiceGenerator interface {
	GenerateMonthly(ctx context.Context, month, year int) (*service.GenerateInvoicesResponse, error)
}

// InvoiceScheduler runs monthly invoice generation on a cron schedule
type InvoiceScheduler struct {
	generator        InvoiceGenerator
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
	now              func() time.Time
}

// NewInvoiceScheduler creates a new invoice scheduler
func NewInvoiceScheduler(generator InvoiceGenerator, schedulerLogRepo repository.SchedulerLogRepository, logger *logger.Logger, cronExpression string) *InvoiceScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &InvoiceScheduler{
		generator:        generator,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
		now:              time.Now,
	}
}

// Start schedules the job and starts the cron runner
func (s *InvoiceScheduler) Start() error {
	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling monthly invoice job")
	if _, err := s.cron.AddFunc(s.cronExpression, s.generateMonthlyInvoices); err != nil {
		return fmt.Errorf("failed to schedule monthly invoice job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Invoice scheduler started successfully")

	return nil
}

// Stop waits for a running job to finish and stops the scheduler
func (s *InvoiceScheduler) Stop() {
	s.logger.Info("Stopping invoice scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Invoice scheduler stopped successfully")
}

func (s *InvoiceScheduler) generateMonthlyInvoices() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.Run(ctx)
}

// Run generates the invoices of the current month and records each step in scheduler_logs
func (s *InvoiceScheduler) Run(ctx context.Context) {
	runID := uuid.NewString()
	now := s.now()
	month, year := int(now.Month()), now.Year()

	s.logRun(ctx, runID, models.SchedulerStart, "Starting scheduled monthly invoice generation")
	s.logRun(ctx, runID, models.SchedulerRunning, fmt.Sprintf("Generating invoices for month %d year %d", month, year))

	result, err := s.generator.GenerateMonthly(ctx, month, year)
	if err != nil {
		s.logRun(ctx, runID, models.SchedulerFailed, fmt.Sprintf("Failed to generate monthly invoices: %v", err))
		s.logger.WithError(err).WithField("run_id", runID).Error("Scheduled invoice generation failed")
		return
	}

	summary, _ := json.Marshal(result)
	s.logRun(ctx, runID, models.SchedulerSuccess, fmt.Sprintf("Monthly invoices generated: %s", summary))

	s.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"created": result.CreatedCount,
		"skipped": result.SkippedCount,
		"failed":  result.FailedCount,
	}).Info("Scheduled invoice generation completed")
}

func (s *InvoiceScheduler) logRun(ctx context.Context, runID, status, message string) {
	entry := &models.SchedulerLog{
		RunID:         runID,
		SchedulerCode: MonthlyInvoiceJobCode,
		Message:       message,
		Status:        status,
		CreatedAt:     s.now(),
	}

	if err := s.schedulerLogRepo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
