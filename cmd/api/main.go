package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bulkscan/internal/ccd"
	"bulkscan/internal/config"
	handlers "bulkscan/internal/http/handler"
	"bulkscan/internal/http/middleware"
	"bulkscan/internal/idam"
	"bulkscan/internal/otel"
	"bulkscan/internal/pipeline"
	"bulkscan/internal/postcode"
	"bulkscan/internal/storage"
	"bulkscan/internal/validation"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing degrades to noop when the collector is unreachable or disabled
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Postcode confirmation is optional; without it postcodes are accepted
	// unverified and the validator emits no postcode warnings
	var postcodes postcode.Lookup
	if cfg.PostcodeLookupURL != "" {
		postcodes, err = postcode.NewClient(cfg.PostcodeLookupURL)
		if err != nil {
			log.Fatalf("failed to initialize postcode lookup: %v", err)
		}
	}

	tokens, err := idam.NewClient(idam.Config{
		BaseURL:      cfg.Idam.BaseURL,
		S2SBaseURL:   cfg.Idam.S2SBaseURL,
		ClientID:     cfg.Idam.ClientID,
		ClientSecret: cfg.Idam.ClientSecret,
		Username:     cfg.Idam.Username,
		Password:     cfg.Idam.Password,
		ServiceName:  cfg.Idam.ServiceName,
	})
	if err != nil {
		log.Fatalf("failed to initialize token provider: %v", err)
	}

	cases, err := ccd.NewClient(cfg.CaseAPI.BaseURL, tokens)
	if err != nil {
		log.Fatalf("failed to initialize case client: %v", err)
	}

	svc, err := pipeline.New(validation.New(postcodes), cases)
	if err != nil {
		log.Fatalf("failed to initialize pipeline: %v", err)
	}

	// Evidence archive is optional in local setups; the evidence routes
	// answer 503 when it is absent
	var evidence storage.EvidenceStore
	if cfg.MinIO.Endpoint != "" {
		evidence, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize evidence store: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	// Inbound callbacks must present the shared service token
	app.Use(middleware.ServiceAuth(cfg.ServiceAuthSecret))

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected collaborators
	handlers.RegisterRoutes(app, svc, evidence,
		time.Duration(cfg.EvidenceLinkTTLSec)*time.Second)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
