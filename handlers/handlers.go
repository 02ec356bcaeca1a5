package handlers

import (
	"hr_payroll/services"

	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	Ledger    *services.AttendanceLedger
	Payroll   *services.PayrollAggregator
	Employees *services.EmployeeService
	Auth      *services.AuthService
	Dashboard *services.DashboardService
)

// Services groups the collaborators the handlers call into.
type Services struct {
	Ledger    *services.AttendanceLedger
	Payroll   *services.PayrollAggregator
	Employees *services.EmployeeService
	Auth      *services.AuthService
	Dashboard *services.DashboardService
}

func InitHandlers(db *gorm.DB, svc Services) {
	DB = db
	Ledger = svc.Ledger
	Payroll = svc.Payroll
	Employees = svc.Employees
	Auth = svc.Auth
	Dashboard = svc.Dashboard
}
