package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrofeira/internal/handlers"
	"agrofeira/internal/middleware"
	"agrofeira/internal/services"
	"agrofeira/pkg/logger"
	"agrofeira/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(tokens *token.Manager) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(logger.Nop())})
	auth := services.NewAuthService(nil, tokens, logger.Nop())

	app.Get("/me", middleware.AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":   middleware.ProducerID(c),
			"name": middleware.ProducerName(c),
		})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tokens := token.NewManager("test_jwt_secret", time.Hour)
	app := setupApp(tokens)

	valid, err := tokens.Sign("p-1", "Ana")
	require.NoError(t, err)
	foreign, err := token.NewManager("other_secret", time.Hour).Sign("p-1", "Ana")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"bearer without token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.status == http.StatusOK {
				assert.Equal(t, "p-1", body["id"])
				assert.Equal(t, "Ana", body["name"])
			} else {
				assert.Equal(t, "UNAUTHENTICATED", body["code"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}
