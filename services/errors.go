package services

import "hr_payroll/types"

var (
	ErrEmployeeNotFound   = types.NewNotFoundError("Employee not found")
	ErrAdminNotFound      = types.NewNotFoundError("Account not found")
	ErrAttendanceNotFound = types.NewNotFoundError("Attendance record not found")
	ErrAttendanceExists   = types.NewConflictError("Attendance already recorded for this employee and date")
	ErrEmailTaken         = types.NewConflictError("Email already registered")
	ErrNoAttendanceData   = types.NewNotFoundError("No data found")
	ErrMonthNotFound      = types.NewNotFoundError("No attendance for this month")

	ErrEmployeeBanned     = types.NewForbiddenError("Employee is banned")
	ErrEmailNotVerified   = types.NewForbiddenError("Email not verified")
	ErrInvalidCredentials = types.NewUnauthorizedError("Invalid email or password")
	ErrNotProvisioned     = types.NewUnauthorizedError("Account is not registered with this service")
	ErrInvalidToken       = types.NewUnauthorizedError("Invalid or expired token")
)
