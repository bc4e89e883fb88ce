package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"myfinbank-admin/internal/adapters/http/middleware"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", domain.ErrLoanNotFound, http.StatusNotFound, "not_found", "loan application not found"},
		{"invalid state", domain.ErrInvalidStateTransition, http.StatusConflict, "invalid_state", "loan application is not in pending status"},
		{"conflict", domain.ErrEmailExists, http.StatusConflict, "conflict", "email already exists"},
		{"invalid input", domain.NewError(domain.KindInvalidInput, "invalid loan id"), http.StatusBadRequest, "invalid_input", "invalid loan id"},
		{"auth failure", domain.ErrUnauthenticated, http.StatusUnauthorized, "auth_failure", middleware.UnauthorizedMessage},
		{"internal hides cause", domain.Wrap(domain.KindInternal, "update loan status", errors.New("deadlock")), http.StatusInternalServerError, "internal", "Internal server error"},
		{"untagged", errors.New("boom"), http.StatusInternalServerError, "internal", "Internal server error"},
		{"notify failure", domain.ErrNotificationFailed, http.StatusInternalServerError, "internal", "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body response.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Error)
		})
	}
}

func TestIdentity_MissingIsAuthFailure(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := identity(c)
		return writeError(c, err)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
