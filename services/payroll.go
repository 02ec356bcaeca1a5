package services

import (
	"context"
	"fmt"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeSalaryTotal struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	PresentDays int64           `json:"present_days"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

// MonthlySalarySummary is computed on every request and never stored.
type MonthlySalarySummary struct {
	Month               string                `json:"month"`
	TotalSalaryForMonth decimal.Decimal       `json:"totalSalaryForMonth"`
	Employees           []EmployeeSalaryTotal `json:"employees"`
}

type PayrollAggregator struct {
	DB *gorm.DB
}

func NewPayrollAggregator(db *gorm.DB) *PayrollAggregator {
	return &PayrollAggregator{DB: db}
}

type payrollRow struct {
	Month       string
	EmployeeID  uint
	Name        string
	Rate        decimal.Decimal
	PresentDays int64
}

// The month horizon is every month with attendance by an in-scope employee.
// Crossing it with every in-scope employee keeps employees with no present
// days in the report with a zero total.
const monthlyPayrollQuery = `
WITH months AS (
	SELECT DISTINCT substr(a.date, 1, 7) AS month
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id
	WHERE %s
)
SELECT
	m.month AS month,
	e.id AS employee_id,
	e.name AS name,
	COALESCE(s.amount, 0) AS rate,
	COUNT(a.id) AS present_days
FROM months m
CROSS JOIN employees e
LEFT JOIN salaries s ON s.employee_id = e.id
LEFT JOIN attendance a
	ON a.employee_id = e.id
	AND substr(a.date, 1, 7) = m.month
	AND a.status = ?
WHERE %s
GROUP BY m.month, e.id, e.name, s.amount
ORDER BY m.month, e.id`

// MonthlySummary returns one summary per month, oldest first, each listing
// every in-scope employee. It fails with ErrNoAttendanceData when the
// attendance table is empty.
func (p *PayrollAggregator) MonthlySummary(ctx context.Context, scope Scope) ([]MonthlySalarySummary, error) {
	db := p.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Attendance{}).Count(&total).Error; err != nil {
		return nil, types.NewStoreError(err)
	}
	if total == 0 {
		return nil, ErrNoAttendanceData
	}

	where, whereArgs := scope.sql("e")
	query := fmt.Sprintf(monthlyPayrollQuery, where, where)

	args := make([]interface{}, 0, 2*len(whereArgs)+1)
	args = append(args, whereArgs...)
	args = append(args, models.StatusPresent)
	args = append(args, whereArgs...)

	var rows []payrollRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, types.NewStoreError(err)
	}

	return summarize(rows), nil
}

func summarize(rows []payrollRow) []MonthlySalarySummary {
	summaries := make([]MonthlySalarySummary, 0)
	for _, row := range rows {
		if len(summaries) == 0 || summaries[len(summaries)-1].Month != row.Month {
			summaries = append(summaries, MonthlySalarySummary{
				Month:               row.Month,
				TotalSalaryForMonth: decimal.Zero,
				Employees:           []EmployeeSalaryTotal{},
			})
		}

		current := &summaries[len(summaries)-1]
		totalSalary := row.Rate.Mul(decimal.NewFromInt(row.PresentDays))
		current.TotalSalaryForMonth = current.TotalSalaryForMonth.Add(totalSalary)
		current.Employees = append(current.Employees, EmployeeSalaryTotal{
			ID:          row.EmployeeID,
			Name:        row.Name,
			PresentDays: row.PresentDays,
			TotalSalary: totalSalary,
		})
	}
	return summaries
}

// MonthQuery is the ?month= filter of the payroll report.
type MonthQuery struct {
	Month string `json:"month" query:"month" validate:"required,yearmonth"`
}

// MonthTotal returns the summary of a single YYYY-MM month.
func (p *PayrollAggregator) MonthTotal(ctx context.Context, scope Scope, month string) (*MonthlySalarySummary, error) {
	if errs := utils.ValidateStruct(MonthQuery{Month: month}); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	summaries, err := p.MonthlySummary(ctx, scope)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		if summaries[i].Month == month {
			return &summaries[i], nil
		}
	}
	return nil, ErrMonthNotFound
}
