package main

import (
	"context"
	"time"

	"github.com/a1tips/paymentgateway/internal/api"
	"github.com/a1tips/paymentgateway/internal/api/middleware"
	v1 "github.com/a1tips/paymentgateway/internal/api/v1"
	"github.com/a1tips/paymentgateway/internal/api/validator"
	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/database"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/repository"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/httpclient"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/a1tips/paymentgateway/pkg/tokencache"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const poolSampleInterval = 15 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			database.NewConnection,
			NewMetrics,
			metrics.NewSinkMonitor,

			NewMoMoClient,
			NewHostedCheckoutClient,
			NewTokenCache,

			repository.NewPaymentEventRepository,

			service.NewTokenService,
			service.NewDepositService,
			service.NewPaymentEventService,
			service.NewReconcileService,
			service.NewWebhookService,

			NewValidator,
			v1.NewHandler,
			NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *api.Handler, v1Handler *v1.Handler, cfg *config.Config,
	monitor *metrics.SinkMonitor, logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, v1Handler, cfg.API.AllowedOrigins)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			monitor.Start(poolSampleInterval)

			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()

			logger.Info("Payment gateway started",
				zap.String("port", cfg.API.Port),
				zap.String("provider", cfg.Payments.Provider))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			monitor.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "paymentgateway",
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	return app
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewHandler(logger *zap.Logger, monitor *metrics.SinkMonitor) *api.Handler {
	return api.NewHandler(logger, monitor)
}

func NewValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func NewMoMoClient(cfg *config.Config) momo.Client {
	return momo.NewCollectionClient(cfg.MoMo, httpclient.NewHTTPClient(cfg.MoMo.Timeout))
}

func NewHostedCheckoutClient(cfg *config.Config) hostedcheckout.Client {
	return hostedcheckout.NewClient(cfg.HostedCheckout, httpclient.NewHTTPClient(cfg.HostedCheckout.Timeout))
}

// NewTokenCache returns a nil cache when redis is disabled, which makes the
// token service fetch a fresh token on every call.
func NewTokenCache(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) tokencache.Cache {
	if !cfg.Redis.Enable {
		logger.Info("Token cache disabled")
		return nil
	}

	cache := tokencache.NewRedisCache(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.Ping(ctx); err != nil {
				logger.Warn("Token cache unreachable, tokens will be fetched per call", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})

	return cache
}
