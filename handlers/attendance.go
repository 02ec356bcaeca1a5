package handlers

import (
	"hr_payroll/middleware"
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// GetAttendance lists attendance grouped per employee. ?mode=recorded drops
// employees without any rows.
func GetAttendance(c *fiber.Ctx) error {
	mode, err := services.ParseListingMode(c.Query("mode"))
	if err != nil {
		return respondError(c, err)
	}

	data, err := Ledger.FormattedAttendance(c.UserContext(), adminScope(c), mode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    data,
	})
}

func InsertAttendance(c *fiber.Ctx) error {
	var req services.AttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	record, err := Ledger.Insert(c.UserContext(), adminScope(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Attendance recorded",
		Data:    record,
	})
}

func UpdateAttendance(c *fiber.Ctx) error {
	var req services.AttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	record, err := Ledger.Update(c.UserContext(), adminScope(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance updated",
		Data:    record,
	})
}

// MyAttendance returns the signed in employee's own history.
func MyAttendance(c *fiber.Ctx) error {
	scope := services.EmployeeScope(middleware.Claims(c).UserID)
	data, err := Ledger.FormattedAttendance(c.UserContext(), scope, services.ListingAllEmployees)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    data,
	})
}

func CheckIn(c *fiber.Ctx) error {
	result, err := Ledger.CheckIn(c.UserContext(), middleware.Claims(c).UserID)
	if err != nil {
		return respondError(c, err)
	}

	if result.AlreadyCheckedIn {
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "Already checked in today",
			Data:    result,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Checked in",
		Data:    result,
	})
}
