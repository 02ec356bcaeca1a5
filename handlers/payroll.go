package handlers

import (
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// GetMonthlySalary returns the payroll of every month with attendance, or of
// the single month given as ?month=YYYY-MM.
func GetMonthlySalary(c *fiber.Ctx) error {
	var query services.MonthQuery
	if err := c.QueryParser(&query); err != nil {
		return badBody(c)
	}
	if query.Month != "" {
		summary, err := Payroll.MonthTotal(c.UserContext(), adminScope(c), query.Month)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    summary,
		})
	}

	summaries, err := Payroll.MonthlySummary(c.UserContext(), adminScope(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    summaries,
	})
}
