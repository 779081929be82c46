package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestServiceAuth(t *testing.T) {
	newApp := func(secret string) *fiber.App {
		app := fiber.New()
		app.Use(ServiceAuth(secret))
		app.Post("/forms/validate", func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("valid token passes", func(t *testing.T) {
		app := newApp("s2s-secret")
		req := httptest.NewRequest("POST", "/forms/validate", nil)
		req.Header.Set(ServiceAuthHeader, "s2s-secret")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		app := newApp("s2s-secret")
		req := httptest.NewRequest("POST", "/forms/validate", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		app := newApp("s2s-secret")
		req := httptest.NewRequest("POST", "/forms/validate", nil)
		req.Header.Set(ServiceAuthHeader, "other")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("probe endpoints stay open", func(t *testing.T) {
		app := newApp("s2s-secret")
		req := httptest.NewRequest("GET", "/healthz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("empty secret disables the check", func(t *testing.T) {
		app := newApp("")
		req := httptest.NewRequest("POST", "/forms/validate", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
