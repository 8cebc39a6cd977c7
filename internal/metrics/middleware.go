package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const slowRequestThreshold = time.Second

// HTTPMetricsMiddleware observes every request under its route template so
// check-status/:referenceId stays one series. Handler errors are rendered here
// so the recorded status matches what the caller receives.
func HTTPMetricsMiddleware(metrics *Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		began := time.Now()
		if err := c.Next(); err != nil {
			if renderErr := c.App().ErrorHandler(c, err); renderErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(began)

		route := routeLabel(c)
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.RecordHTTPRequest(c.Method(), route, status, elapsed, len(c.Response().Body()))

		if elapsed > slowRequestThreshold {
			logger.Warn("Slow HTTP request",
				zap.String("route", route),
				zap.String("statusCode", status),
				zap.Duration("elapsed", elapsed))
		}

		return nil
	}
}

func routeLabel(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
		return route.Path
	}

	return c.Path()
}
