package handlers

import (
	"hr_payroll/middleware"
	"hr_payroll/services"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var statusByKind = map[types.ErrorKind]int{
	types.KindValidation:   fiber.StatusBadRequest,
	types.KindUnauthorized: fiber.StatusUnauthorized,
	types.KindForbidden:    fiber.StatusForbidden,
	types.KindNotFound:     fiber.StatusNotFound,
	types.KindConflict:     fiber.StatusConflict,
	types.KindUpstream:     fiber.StatusBadGateway,
	types.KindStore:        fiber.StatusInternalServerError,
}

// defaultMessage fills in for an AppError raised without a message.
var defaultMessage = map[types.ErrorKind]string{
	types.KindValidation:   types.ErrInvalidInput,
	types.KindUnauthorized: types.ErrUnauthorized,
	types.KindForbidden:    types.ErrForbidden,
	types.KindNotFound:     types.ErrNotFound,
	types.KindConflict:     types.ErrConflict,
}

// respondError writes the JSON error envelope for err. Server side failures
// are logged here and nowhere else.
func respondError(c *fiber.Ctx, err error) error {
	appErr := types.GetAppError(err)
	if appErr == nil {
		utils.Logger.Error("Unhandled error",
			zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	if status >= fiber.StatusInternalServerError {
		utils.Logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("kind", string(appErr.Kind)),
			zap.Error(err))
	}

	message := appErr.Message
	if message == "" {
		message = defaultMessage[appErr.Kind]
	}
	switch appErr.Kind {
	case types.KindStore:
		message = types.ErrDatabaseError
	case types.KindUpstream:
		message = types.ErrUpstreamError + ": " + appErr.Message
	}

	return c.Status(status).JSON(types.APIResponse{
		Success: false,
		Error:   message,
		Details: appErr.Details,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrInvalidInput,
	})
}

// adminScope limits a request to the employees of the signed in admin.
func adminScope(c *fiber.Ctx) services.Scope {
	return services.AdminScope(middleware.Claims(c).AdminID)
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, types.NewValidationError("id must be a positive integer", nil)
	}
	return uint(id), nil
}
