package services

import (
	"context"
	"errors"

	"hr_payroll/models"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	ActiveEmployees   int64           `json:"active_employees"`
	BannedEmployees   int64           `json:"banned_employees"`
	Date              string          `json:"date"`
	CheckedInToday    int64           `json:"checked_in_today"`
	Month             string          `json:"month"`
	MonthPayrollTotal decimal.Decimal `json:"month_payroll_total"`
}

type DashboardService struct {
	Employees *EmployeeService
	Ledger    *AttendanceLedger
	Payroll   *PayrollAggregator
}

func NewDashboardService(employees *EmployeeService, ledger *AttendanceLedger, payroll *PayrollAggregator) *DashboardService {
	return &DashboardService{Employees: employees, Ledger: ledger, Payroll: payroll}
}

func (d *DashboardService) Overview(ctx context.Context, scope Scope) (*DashboardStats, error) {
	var stats DashboardStats

	active, banned, err := d.Employees.Counts(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats.ActiveEmployees = active
	stats.BannedEmployees = banned

	stats.Date = d.Ledger.Today()
	stats.CheckedInToday, err = d.Ledger.CountForDate(ctx, scope, stats.Date, models.StatusPresent)
	if err != nil {
		return nil, err
	}

	stats.Month = stats.Date[:len(models.MonthLayout)]
	stats.MonthPayrollTotal = decimal.Zero
	summary, err := d.Payroll.MonthTotal(ctx, scope, stats.Month)
	switch {
	case err == nil:
		stats.MonthPayrollTotal = summary.TotalSalaryForMonth
	case errors.Is(err, ErrNoAttendanceData), errors.Is(err, ErrMonthNotFound):
	default:
		return nil, err
	}

	return &stats, nil
}
