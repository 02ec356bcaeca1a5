package handlers

import (
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

func GetDashboard(c *fiber.Ctx) error {
	stats, err := Dashboard.Overview(c.UserContext(), adminScope(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}
