package middleware

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(token string) *fiber.App {
	app := fiber.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app.Get("/metrics", BearerToken(token, logger), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		status int
	}{
		{"open when no token configured", "", "", fiber.StatusOK},
		{"missing header", "secret", "", fiber.StatusUnauthorized},
		{"wrong scheme", "secret", "Basic secret", fiber.StatusUnauthorized},
		{"wrong token", "secret", "Bearer nope", fiber.StatusUnauthorized},
		{"valid token", "secret", "Bearer secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(tt.token)
			req := httptest.NewRequest("GET", "/metrics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
