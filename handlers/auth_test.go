package handlers_test

import (
	"testing"

	"hr_payroll/models"
	"hr_payroll/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSignupAndLogin(t *testing.T) {
	env := setupTest(t)
	signup := map[string]interface{}{"name": "Owner", "email": "owner@example.com", "password": "secret123"}
	login := map[string]interface{}{"email": "owner@example.com", "password": "secret123"}

	t.Run("Signup", func(t *testing.T) {
		status, res := env.do(t, "POST", "/auth/signup", "", signup)
		require.Equal(t, 201, status)
		assert.True(t, res.Success)
		assert.NotContains(t, string(res.Data), "secret123")
		assert.Equal(t, []string{"owner@example.com"}, env.mailer.sent)
	})

	t.Run("Signup Twice", func(t *testing.T) {
		status, _ := env.do(t, "POST", "/auth/signup", "", signup)
		assert.Equal(t, 409, status)
	})

	t.Run("Login Before Verification", func(t *testing.T) {
		status, res := env.do(t, "POST", "/auth/admin/login", "", login)
		assert.Equal(t, 403, status)
		assert.Equal(t, "Email not verified", res.Error)
	})

	t.Run("Login After Verification", func(t *testing.T) {
		env.identity.verify("owner@example.com")

		status, res := env.do(t, "POST", "/auth/admin/login", "", login)
		require.Equal(t, 200, status)

		var result services.LoginResult
		decodeData(t, res, &result)
		assert.Equal(t, services.RoleAdmin, result.Role)
		require.NotEmpty(t, result.Token)

		status, _ = env.do(t, "GET", "/employees", result.Token, nil)
		assert.Equal(t, 200, status)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		status, res := env.do(t, "POST", "/auth/admin/login", "", map[string]interface{}{
			"email": "nobody@example.com", "password": "secret123",
		})
		assert.Equal(t, 404, status)
		assert.Equal(t, "Account not found", res.Error)
	})
}

func TestSignupMailFailure(t *testing.T) {
	env := setupTest(t)
	env.mailer.err = errMailDown

	status, res := env.do(t, "POST", "/auth/signup", "", map[string]interface{}{
		"name": "Owner", "email": "owner@example.com", "password": "secret123",
	})
	assert.Equal(t, 502, status)
	assert.False(t, res.Success)

	var count int64
	require.NoError(t, env.db.Model(&models.Admin{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEmployeeLogin(t *testing.T) {
	env := setupTest(t)
	admin := seedAdmin(t, env.db, "root@example.com")
	employee := seedEmployee(t, env.db, admin.ID, "Jane", "100")

	t.Run("Valid Credentials", func(t *testing.T) {
		status, res := env.do(t, "POST", "/auth/employee/login", "", map[string]interface{}{
			"email": employee.Email, "password": "password1",
		})
		require.Equal(t, 200, status)

		var result services.LoginResult
		decodeData(t, res, &result)
		assert.Equal(t, services.RoleEmployee, result.Role)

		status, _ = env.do(t, "POST", "/attendance/check-in", result.Token, nil)
		assert.Equal(t, 201, status)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		status, _ := env.do(t, "POST", "/auth/employee/login", "", map[string]interface{}{
			"email": employee.Email, "password": "wrong-password",
		})
		assert.Equal(t, 401, status)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		status, _ := env.do(t, "POST", "/auth/employee/login", "", map[string]interface{}{})
		assert.Equal(t, 400, status)
	})
}
