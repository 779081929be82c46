package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// ServiceAuthHeader is the header carrying the caller's service token on
// inbound callbacks.
const ServiceAuthHeader = "ServiceAuthorization"

// ServiceAuth verifies the ServiceAuthorization header on every request
// except the probe and documentation endpoints.
//
// Behavior:
// - An empty secret disables the check entirely (local development).
// - Comparison is constant-time.
// - Failures are answered by the global error handler as 401.
func ServiceAuth(secret string) fiber.Handler {
	open := map[string]struct{}{
		"/health":       {},
		"/healthz":      {},
		"/metrics":      {},
		"/docs":         {},
		"/openapi.yaml": {},
	}

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		if _, ok := open[c.Path()]; ok {
			return c.Next()
		}

		got := c.Get(ServiceAuthHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
