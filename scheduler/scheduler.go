package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr_payroll/models"
	"hr_payroll/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the periodic attendance and payroll jobs.
type Scheduler struct {
	cron    *cron.Cron
	ledger  *services.AttendanceLedger
	payroll *services.PayrollAggregator
	logger  *zap.Logger

	absenceCron string
	reportCron  string
}

// NewScheduler creates a scheduler whose cron expressions are evaluated in
// the ledger's location.
func NewScheduler(ledger *services.AttendanceLedger, payroll *services.PayrollAggregator, absenceCron, reportCron string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:        cron.New(cron.WithLocation(ledger.Location)),
		ledger:      ledger,
		payroll:     payroll,
		logger:      logger,
		absenceCron: absenceCron,
		reportCron:  reportCron,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("absence_cron", s.absenceCron),
		zap.String("payroll_report_cron", s.reportCron))

	if _, err := s.cron.AddFunc(s.absenceCron, s.markAbsent); err != nil {
		return fmt.Errorf("schedule absence job: %w", err)
	}
	if _, err := s.cron.AddFunc(s.reportCron, s.reportPayroll); err != nil {
		return fmt.Errorf("schedule payroll report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// markAbsent fills today's gaps with Absent rows.
func (s *Scheduler) markAbsent() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	date := s.ledger.Today()
	created, err := s.ledger.MarkAbsent(ctx, date)
	if err != nil {
		s.logger.Error("failed to mark absences", zap.String("date", date), zap.Error(err))
		return
	}
	s.logger.Info("absences marked", zap.String("date", date), zap.Int64("created", created))
}

// reportPayroll logs the payroll total of the month before the current one.
func (s *Scheduler) reportPayroll() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	month := previousMonth(s.ledger.Now().In(s.ledger.Location))
	summary, err := s.payroll.MonthTotal(ctx, services.Unscoped(), month)
	if errors.Is(err, services.ErrNoAttendanceData) || errors.Is(err, services.ErrMonthNotFound) {
		s.logger.Info("no payroll for month", zap.String("month", month))
		return
	}
	if err != nil {
		s.logger.Error("failed to compute payroll report", zap.String("month", month), zap.Error(err))
		return
	}

	s.logger.Info("monthly payroll",
		zap.String("month", month),
		zap.String("total", summary.TotalSalaryForMonth.StringFixed(2)),
		zap.Int("employees", len(summary.Employees)))
}

func previousMonth(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0).Format(models.MonthLayout)
}
