package main

import (
	"context"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/database"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/publishers"
	"github.com/a1tips/paymentgateway/internal/repository"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/mq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			database.NewConnection,
			NewMetrics,
			NewMQConnection,
			NewMQPublisher,

			repository.NewPaymentEventRepository,

			service.NewPaymentEventQueueService,

			publishers.NewPaymentEventPublisher,
		),
		fx.Invoke(runPaymentEventPublisher),
	).Run()
}

func runPaymentEventPublisher(cfg *config.Config, publisher publishers.PaymentEventPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) error {
	appCtx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)))

	_, err := scheduler.AddFunc(cfg.Outbox.Schedule, func() {
		if err := publisher.Publish(appCtx); err != nil {
			logger.Error("Failed to publish payment events", zap.Error(err))
		}
	})
	if err != nil {
		cancel()
		logger.Error("Invalid outbox schedule",
			zap.String("schedule", cfg.Outbox.Schedule),
			zap.Error(err))
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(cfg.Outbox.Queue); err != nil {
				logger.Error("Declare queue failed", zap.Error(err))
				return err
			}

			scheduler.Start()
			logger.Info("Payment event publisher started",
				zap.String("queue", cfg.Outbox.Queue),
				zap.String("schedule", cfg.Outbox.Schedule))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping payment event publisher")
			cancel()

			select {
			case <-scheduler.Stop().Done():
			case <-ctx.Done():
			}

			return rabbit.Close()
		},
	})

	return nil
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
