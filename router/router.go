package router

import (
	"hr_payroll/handlers"
	"hr_payroll/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every endpoint on app. handlers.InitHandlers must
// have run before the first request.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.Health)

	auth := app.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/admin/login", handlers.AdminLogin)
	auth.Post("/employee/login", handlers.EmployeeLogin)

	employees := app.Group("/employees", middleware.RequireAdmin)
	employees.Get("/", handlers.GetAllEmployees)
	employees.Post("/", handlers.AddEmployee)
	employees.Put("/:id", handlers.UpdateEmployee)
	employees.Patch("/:id/field", handlers.UpdateEmployeeField)
	employees.Post("/:id/ban", handlers.BanEmployee)
	employees.Post("/:id/unban", handlers.UnbanEmployee)

	// Employee routes are registered before the admin group so the admin
	// middleware never sees them.
	app.Get("/attendance/me", middleware.RequireEmployee, handlers.MyAttendance)
	app.Post("/attendance/check-in", middleware.RequireEmployee, handlers.CheckIn)

	attendance := app.Group("/attendance", middleware.RequireAdmin)
	attendance.Get("/", handlers.GetAttendance)
	attendance.Post("/", handlers.InsertAttendance)
	attendance.Put("/", handlers.UpdateAttendance)

	app.Get("/payroll/monthly", middleware.RequireAdmin, handlers.GetMonthlySalary)
	app.Get("/dashboard", middleware.RequireAdmin, handlers.GetDashboard)
}
