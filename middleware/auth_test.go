package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hr_payroll/config"
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func signToken(t *testing.T, role string, userID, adminID uint, ttl time.Duration) string {
	t.Helper()
	claims := services.TokenClaims{
		Role:    role,
		UserID:  userID,
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newApp(t *testing.T) (*fiber.App, *int) {
	t.Helper()
	previous := config.AppConfig
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig = previous })

	calls := 0
	handler := func(c *fiber.Ctx) error {
		calls++
		claims := Claims(c)
		return c.JSON(fiber.Map{
			"role":     claims.Role,
			"user_id":  claims.UserID,
			"admin_id": claims.AdminID,
		})
	}

	app := fiber.New()
	app.Get("/admin", RequireAdmin, handler)
	app.Get("/employee", RequireEmployee, handler)
	return app, &calls
}

func request(t *testing.T, app *fiber.App, path, header string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthenticate(t *testing.T) {
	app, calls := newApp(t)

	t.Run("No Token", func(t *testing.T) {
		status, body := request(t, app, "/admin", "")
		assert.Equal(t, 401, status)
		assert.Equal(t, "No token provided", body["error"])
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		status, body := request(t, app, "/admin", "Token abc")
		assert.Equal(t, 401, status)
		assert.Equal(t, "Invalid token format", body["error"])
	})

	t.Run("Expired Token", func(t *testing.T) {
		status, _ := request(t, app, "/admin", "Bearer "+signToken(t, services.RoleAdmin, 1, 1, -time.Minute))
		assert.Equal(t, 401, status)
	})

	t.Run("Valid Token Exposes Claims", func(t *testing.T) {
		status, body := request(t, app, "/employee", "Bearer "+signToken(t, services.RoleEmployee, 7, 3, time.Hour))
		require.Equal(t, 200, status)
		assert.Equal(t, services.RoleEmployee, body["role"])
		assert.Equal(t, float64(7), body["user_id"])
		assert.Equal(t, float64(3), body["admin_id"])
	})

	assert.Equal(t, 1, *calls)
}

func TestRoleGuards(t *testing.T) {
	app, calls := newApp(t)
	admin := "Bearer " + signToken(t, services.RoleAdmin, 1, 1, time.Hour)
	employee := "Bearer " + signToken(t, services.RoleEmployee, 2, 1, time.Hour)

	status, _ := request(t, app, "/admin", admin)
	assert.Equal(t, 200, status)

	status, body := request(t, app, "/admin", employee)
	assert.Equal(t, 403, status)
	assert.Equal(t, "Admin access required", body["error"])

	status, _ = request(t, app, "/employee", employee)
	assert.Equal(t, 200, status)

	status, _ = request(t, app, "/employee", admin)
	assert.Equal(t, 403, status)

	assert.Equal(t, 2, *calls, "handler must run exactly once per allowed request")
}

func TestClaimsAreTheOnlyLocal(t *testing.T) {
	previous := config.AppConfig
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig = previous })

	app := fiber.New()
	app.Get("/", RequireAdmin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals("user_id"),
			"role":     c.Locals("role"),
			"admin_id": c.Locals("admin_id"),
			"admin":    Claims(c).AdminID,
		})
	})

	status, body := request(t, app, "/", "Bearer "+signToken(t, services.RoleAdmin, 4, 4, time.Hour))
	require.Equal(t, 200, status)
	assert.Nil(t, body["user_id"])
	assert.Nil(t, body["role"])
	assert.Nil(t, body["admin_id"])
	assert.Equal(t, float64(4), body["admin"])
}

func TestClaimsWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.APIResponse{Success: true, Data: Claims(c).UserID})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
