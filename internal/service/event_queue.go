package service

import (
	"context"
	"time"

	"github.com/a1tips/paymentgateway/internal/repository"
	"go.uber.org/zap"
)

type PaymentEventQueueService interface {
	FindEventsToPublish(ctx context.Context, limit int) ([]PaymentRecordedMessage, error)
	MarkEventAsPublished(ctx context.Context, eventID int64) error
}

type paymentEventQueue struct {
	repo   repository.PaymentEventRepository
	logger *zap.Logger
}

func NewPaymentEventQueueService(repo repository.PaymentEventRepository, logger *zap.Logger) PaymentEventQueueService {
	return &paymentEventQueue{repo: repo, logger: logger}
}

func (q *paymentEventQueue) FindEventsToPublish(ctx context.Context, limit int) ([]PaymentRecordedMessage, error) {
	q.logger.Debug("Finding payment events to publish", zap.Int("batchSize", limit))

	events, err := q.repo.FindUnpublished(ctx, limit)
	if err != nil {
		q.logger.Error("Failed to find unpublished payment events", zap.Error(err))
		return nil, err
	}

	if len(events) == 0 {
		q.logger.Debug("No payment events found to publish")
		return nil, nil
	}

	messages := make([]PaymentRecordedMessage, 0, len(events))
	for _, event := range events {
		msg := PaymentRecordedMessage{
			EventID:     event.ID,
			ReferenceID: event.Reference,
			Email:       event.Email,
			BookingID:   event.BookingID,
			Provider:    string(event.Provider),
			Amount:      event.Amount,
			RecordedAt:  event.CreatedAt.UTC().Format(time.RFC3339),
		}
		if event.Currency != nil {
			msg.Currency = *event.Currency
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

func (q *paymentEventQueue) MarkEventAsPublished(ctx context.Context, eventID int64) error {
	if err := q.repo.MarkPublished(ctx, eventID, time.Now()); err != nil {
		q.logger.Error("Failed to mark payment event as published",
			zap.Error(err),
			zap.Int64("eventId", eventID))
		return err
	}

	q.logger.Debug("Successfully marked payment event as published", zap.Int64("eventId", eventID))

	return nil
}
