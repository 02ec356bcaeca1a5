package middleware

import (
	"strings"

	"hr_payroll/config"
	"hr_payroll/services"
	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.APIResponse{
		Success: false,
		Error:   message,
	})
}

// authenticate verifies the bearer token and stores its claims on the context.
// Handlers read them back through Claims.
func authenticate(c *fiber.Ctx) (*services.TokenClaims, error) {
	token, err := extractToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := services.ParseToken(token, []byte(config.AppConfig.JWTSecret))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return claims, nil
}

func requireRole(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := authenticate(c)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return deny(c, fe.Code, fe.Message)
			}
			return deny(c, fiber.StatusUnauthorized, types.ErrUnauthorized)
		}
		if claims.Role != role {
			return deny(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

var RequireAdmin = requireRole(services.RoleAdmin, "Admin access required")

var RequireEmployee = requireRole(services.RoleEmployee, "Employee access required")

// Claims returns the token claims stored by the auth middleware.
func Claims(c *fiber.Ctx) *services.TokenClaims {
	claims, _ := c.Locals(claimsKey).(*services.TokenClaims)
	if claims == nil {
		return &services.TokenClaims{}
	}
	return claims
}
