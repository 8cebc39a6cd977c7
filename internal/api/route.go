package api

import (
	"strings"

	v1 "github.com/a1tips/paymentgateway/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *Handler, v1Handler *v1.Handler, allowedOrigins []string) {
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(allowedOrigins)))

	app.Get("/ping", handler.Pong)
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	payments := app.Group("/payments/api/v1")
	payments.Post("/create-deposit", v1Handler.CreateDeposit)
	payments.Get("/check-status/:referenceId", v1Handler.CheckStatus)
	payments.Post("/record-payment-event", v1Handler.RecordPaymentEvent)
}

// corsConfig only allows credentials for an explicit origin list; fiber
// rejects credentials combined with a wildcard.
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}

	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = strings.Join(allowedOrigins, ",")
		cfg.AllowCredentials = true
	}

	return cfg
}
