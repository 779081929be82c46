package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"bulkscan/internal/model"
	"bulkscan/internal/pipeline"
	"bulkscan/internal/storage"
	"bulkscan/internal/validation"
)

// validationResponse is the body of the validate-only callback. Status is
// always derived from the two lists.
type validationResponse struct {
	Status   validation.Status `json:"status"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
}

// creationResponse is the success body of the create callback.
type creationResponse struct {
	CaseID   string          `json:"case_id"`
	EventID  string          `json:"event_id"`
	Data     *model.CaseData `json:"data,omitempty"`
	Warnings []string        `json:"warnings"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic: decoding, the one
// service call, and status-code mapping only.
func RegisterRoutes(app *fiber.App, svc pipeline.Service, evidence storage.EvidenceStore, evidenceLinkTTL time.Duration) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck())
	app.Get("/healthz", LivenessProbe())

	app.Post("/forms/exception-record", TransformExceptionRecord(svc))
	app.Post("/forms/validate", ValidateExceptionRecord(svc))
	app.Get("/evidence/*", EvidenceLink(evidence, evidenceLinkTTL))
}

// HealthCheck reports readiness. The pipeline holds no connections of its
// own; downstream collaborators are called per request.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// TransformExceptionRecord runs the create path: the record is
// transformed, validated and, unless rejected, created downstream. A
// rejected record answers 422 with the error and warning lists.
func TransformExceptionRecord(svc pipeline.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec model.ExceptionRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse exception record")
		}

		res, err := svc.ProcessExceptionRecord(c.UserContext(), &rec)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if res.Rejected() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse{
				Status:   res.Status(),
				Errors:   emptyIfNil(res.Errors),
				Warnings: emptyIfNil(res.Warnings),
			})
		}
		return c.Status(fiber.StatusOK).JSON(creationResponse{
			CaseID:   res.CaseID,
			EventID:  res.EventID,
			Data:     res.Data,
			Warnings: emptyIfNil(res.Warnings),
		})
	}
}

// ValidateExceptionRecord runs the validate-only path. No case is
// created; missing mandatory fields come back as errors here. The
// combine_errors query flag merges errors into the warning list for
// callers with a single severity axis.
func ValidateExceptionRecord(svc pipeline.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		combine, err := strconv.ParseBool(c.Query("combine_errors", "false"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_COMBINE_ERRORS", "invalid combine_errors flag")
		}

		var rec model.ExceptionRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse exception record")
		}

		res, err := svc.ValidateRecord(c.UserContext(), &rec, combine)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(validationResponse{
			Status:   res.Status(),
			Errors:   emptyIfNil(res.Errors),
			Warnings: emptyIfNil(res.Warnings),
		})
	}
}

// EvidenceLink answers a presigned, time-limited download URL for an
// archived scan binary. The wildcard is the object key. With
// download=true the binary is streamed through the service instead, for
// callers that cannot reach the store directly.
func EvidenceLink(evidence storage.EvidenceStore, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if evidence == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "evidence store not configured")
		}
		key := c.Params("*")
		if key == "" {
			return writeError(c, fiber.StatusBadRequest, "KEY_REQUIRED", "evidence key is required")
		}

		if c.QueryBool("download", false) {
			body, info, err := evidence.Fetch(c.UserContext(), key)
			if err != nil {
				if storage.IsNotFound(err) {
					return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "evidence not found")
				}
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
			if info.ContentType != "" {
				c.Set(fiber.HeaderContentType, info.ContentType)
			}
			return c.SendStream(body, int(info.Size))
		}

		url, err := evidence.PresignDownload(c.UserContext(), key, ttl)
		if err != nil {
			if storage.IsNotFound(err) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "evidence not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"url":                url,
			"expires_in_seconds": int(ttl.Seconds()),
		})
	}
}

// emptyIfNil keeps the JSON lists as [] rather than null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
