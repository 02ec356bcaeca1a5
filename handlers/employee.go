package handlers

import (
	"hr_payroll/middleware"
	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

func GetAllEmployees(c *fiber.Ctx) error {
	employees, err := Employees.List(c.UserContext(), adminScope(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func AddEmployee(c *fiber.Ctx) error {
	var req services.AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	employee, err := Employees.Add(c.UserContext(), middleware.Claims(c).AdminID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req services.EditEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	employee, err := Employees.Edit(c.UserContext(), adminScope(c), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

// UpdateEmployeeField changes a single field, e.g. {"field":"phone","value":"..."}.
func UpdateEmployeeField(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req services.FieldUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	update, err := services.ParseFieldUpdate(req)
	if err != nil {
		return respondError(c, err)
	}

	employee, err := Employees.UpdateField(c.UserContext(), adminScope(c), id, update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: update.Field() + " updated successfully",
		Data:    employee,
	})
}

func BanEmployee(c *fiber.Ctx) error {
	return setEmployeeStatus(c, models.EmployeeStatusBanned, "Employee banned")
}

func UnbanEmployee(c *fiber.Ctx) error {
	return setEmployeeStatus(c, models.EmployeeStatusActive, "Employee unbanned")
}

func setEmployeeStatus(c *fiber.Ctx, status, message string) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	employee, err := Employees.SetStatus(c.UserContext(), adminScope(c), id, status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    employee,
	})
}
