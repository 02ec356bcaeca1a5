package handlers_test

import (
	"fmt"
	"testing"

	"hr_payroll/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":         "Test Employee",
		"email":        email,
		"password":     "secret123",
		"phone":        "0900000000",
		"id_number":    "ID-100",
		"dob":          "1992-07-01",
		"address":      "42 Test Road",
		"payment_type": "daily",
		"amount":       85.5,
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	env := setupTest(t)
	admin := seedAdmin(t, env.db, "root@example.com")
	other := seedAdmin(t, env.db, "other@example.com")
	token := adminToken(admin.ID)

	var created models.Employee

	t.Run("Get Employees When Empty", func(t *testing.T) {
		status, res := env.do(t, "GET", "/employees", token, nil)
		assert.Equal(t, 200, status)
		assert.JSONEq(t, `[]`, string(res.Data))
	})

	t.Run("Add Employee", func(t *testing.T) {
		status, res := env.do(t, "POST", "/employees", token, newEmployeeBody("new@example.com"))
		require.Equal(t, 201, status)
		decodeData(t, res, &created)
		assert.Equal(t, admin.ID, created.AdminID)
		require.NotNil(t, created.Salary)
		assert.True(t, decimal.RequireFromString("85.5").Equal(created.Salary.Amount))
		assert.NotContains(t, string(res.Data), "password")
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		status, _ := env.do(t, "POST", "/employees", token, newEmployeeBody("new@example.com"))
		assert.Equal(t, 409, status)
	})

	t.Run("Invalid Payload", func(t *testing.T) {
		body := newEmployeeBody("invalid@example.com")
		body["payment_type"] = "hourly"
		status, res := env.do(t, "POST", "/employees", token, body)
		assert.Equal(t, 400, status)
		assert.Contains(t, string(res.Details), "PaymentType")
	})

	t.Run("Edit Employee", func(t *testing.T) {
		body := newEmployeeBody("new@example.com")
		delete(body, "password")
		body["name"] = "Edited Name"
		body["amount"] = "90"
		status, res := env.do(t, "PUT", fmt.Sprintf("/employees/%d", created.ID), token, body)
		require.Equal(t, 200, status)

		var edited models.Employee
		decodeData(t, res, &edited)
		assert.Equal(t, "Edited Name", edited.Name)
		assert.True(t, decimal.NewFromInt(90).Equal(edited.Salary.Amount))
	})

	t.Run("Update Single Field", func(t *testing.T) {
		path := fmt.Sprintf("/employees/%d/field", created.ID)
		status, res := env.do(t, "PATCH", path, token, map[string]interface{}{"field": "phone", "value": "0123456789"})
		require.Equal(t, 200, status)
		assert.Equal(t, "phone updated successfully", res.Message)

		var updated models.Employee
		decodeData(t, res, &updated)
		assert.Equal(t, "0123456789", updated.Phone)

		status, _ = env.do(t, "PATCH", path, token, map[string]interface{}{"field": "amount", "value": 120})
		assert.Equal(t, 200, status)

		status, _ = env.do(t, "PATCH", path, token, map[string]interface{}{"field": "salary", "value": "1"})
		assert.Equal(t, 400, status)
	})

	t.Run("Ban And Unban", func(t *testing.T) {
		status, res := env.do(t, "POST", fmt.Sprintf("/employees/%d/ban", created.ID), token, nil)
		require.Equal(t, 200, status)
		var banned models.Employee
		decodeData(t, res, &banned)
		assert.Equal(t, models.EmployeeStatusBanned, banned.Status)

		status, res = env.do(t, "POST", fmt.Sprintf("/employees/%d/unban", created.ID), token, nil)
		require.Equal(t, 200, status)
		var active models.Employee
		decodeData(t, res, &active)
		assert.Equal(t, models.EmployeeStatusActive, active.Status)
	})

	t.Run("Bad Id", func(t *testing.T) {
		status, _ := env.do(t, "POST", "/employees/abc/ban", token, nil)
		assert.Equal(t, 400, status)
	})

	t.Run("Other Admin Sees Nothing", func(t *testing.T) {
		otherToken := adminToken(other.ID)
		status, res := env.do(t, "GET", "/employees", otherToken, nil)
		assert.Equal(t, 200, status)
		assert.JSONEq(t, `[]`, string(res.Data))

		status, _ = env.do(t, "POST", fmt.Sprintf("/employees/%d/ban", created.ID), otherToken, nil)
		assert.Equal(t, 404, status)
	})
}
