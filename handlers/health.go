package handlers

import (
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Health reports whether the process is up and the database answers.
func Health(c *fiber.Ctx) error {
	sqlDB, err := DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		utils.Logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "ok",
	})
}
