package handlers

import (
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// Signup registers a new admin account. The account can log in once the
// emailed verification link has been opened.
func Signup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	admin, err := Auth.SignupAdmin(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Account created. Check your email to verify it.",
		Data:    admin,
	})
}

func AdminLogin(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	result, err := Auth.LoginAdmin(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    result,
	})
}

func EmployeeLogin(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	result, err := Auth.LoginEmployee(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    result,
	})
}
