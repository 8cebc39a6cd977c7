package publishers

import (
	"context"
	"encoding/json"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/mq"
	"go.uber.org/zap"
)

type PaymentEventPublisher interface {
	Publish(ctx context.Context) error
}

type paymentEventPublisher struct {
	service   service.PaymentEventQueueService
	publisher mq.Publisher
	queue     string
	batchSize int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPaymentEventPublisher(service service.PaymentEventQueueService, publisher mq.Publisher,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger,
) PaymentEventPublisher {
	return &paymentEventPublisher{
		service:   service,
		publisher: publisher,
		queue:     cfg.Outbox.Queue,
		batchSize: cfg.Outbox.BatchSize,
		metrics:   metrics,
		logger:    logger,
	}
}

// Publish drains one batch of unpublished payment events. A row is marked
// published only after the broker confirmed it, so a crash in between causes
// a redelivery with the same message id rather than a loss.
func (p *paymentEventPublisher) Publish(ctx context.Context) error {
	messages, err := p.service.FindEventsToPublish(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}

	p.logger.Info("Publishing payment events", zap.Int("count", len(messages)))

	successCount := 0
	for _, message := range messages {
		body, err := json.Marshal(message)
		if err != nil {
			p.logger.Error("Failed to encode payment event",
				zap.Error(err),
				zap.Int64("eventId", message.EventID))
			continue
		}

		if err := p.publisher.Publish(ctx, p.queue, message.ReferenceID, body); err != nil {
			p.metrics.RecordOutboxPublish(metrics.OutcomeError)
			p.logger.Error("Failed to publish payment event",
				zap.Error(err),
				zap.Int64("eventId", message.EventID),
				zap.String("referenceId", message.ReferenceID))
			continue
		}

		p.metrics.RecordOutboxPublish(metrics.OutcomeSuccess)

		if err := p.service.MarkEventAsPublished(ctx, message.EventID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published payment events",
			zap.Int("published", successCount),
			zap.Int("total", len(messages)))
	}

	return nil
}
