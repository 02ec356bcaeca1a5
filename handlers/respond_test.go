package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func respondWith(t *testing.T, err error) (int, types.APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	previous := utils.Logger
	utils.Logger = zap.New(core)
	t.Cleanup(func() { utils.Logger = previous })

	t.Run("empty messages fall back per kind", func(t *testing.T) {
		cases := []struct {
			kind    types.ErrorKind
			status  int
			message string
		}{
			{types.KindValidation, 400, types.ErrInvalidInput},
			{types.KindUnauthorized, 401, types.ErrUnauthorized},
			{types.KindForbidden, 403, types.ErrForbidden},
			{types.KindNotFound, 404, types.ErrNotFound},
			{types.KindConflict, 409, types.ErrConflict},
		}
		for _, tc := range cases {
			status, body := respondWith(t, types.NewAppError(tc.kind, "", nil))
			assert.Equal(t, tc.status, status, tc.kind)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Error, tc.kind)
		}
	})

	t.Run("explicit message wins", func(t *testing.T) {
		status, body := respondWith(t, types.NewNotFoundError("Employee not found"))
		assert.Equal(t, 404, status)
		assert.Equal(t, "Employee not found", body.Error)
	})

	t.Run("store failures hide the cause and are logged", func(t *testing.T) {
		status, body := respondWith(t, types.NewStoreError(errors.New("disk I/O error")))
		assert.Equal(t, 500, status)
		assert.Equal(t, types.ErrDatabaseError, body.Error)
		assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
	})

	t.Run("upstream failures name the service", func(t *testing.T) {
		status, body := respondWith(t, types.NewUpstreamError("Mail delivery failed", errors.New("timeout")))
		assert.Equal(t, 502, status)
		assert.Equal(t, types.ErrUpstreamError+": Mail delivery failed", body.Error)
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		status, body := respondWith(t, errors.New("boom"))
		assert.Equal(t, 500, status)
		assert.Equal(t, types.ErrInternalError, body.Error)
		assert.Equal(t, 1, logs.FilterMessage("Unhandled error").Len())
	})
}
