package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/repository"
	"go.uber.org/zap"
)

// PaymentEventService is the payment record sink.
type PaymentEventService interface {
	Record(ctx context.Context, cmd RecordPaymentCommand) (RecordResult, error)
	FindByReference(ctx context.Context, reference string) (*model.PaymentEvent, error)
}

type PaymentEvent struct {
	repo    repository.PaymentEventRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPaymentEventService(repo repository.PaymentEventRepository, metrics *metrics.Metrics, logger *zap.Logger) PaymentEventService {
	return &PaymentEvent{repo: repo, metrics: metrics, logger: logger}
}

// Record stores the event at most once per reference. A second call for the
// same reference returns Created=false and no error.
func (p *PaymentEvent) Record(ctx context.Context, cmd RecordPaymentCommand) (RecordResult, error) {
	if cmd.Reference == "" {
		return RecordResult{}, NewServiceError(constants.ErrCodeValidationFailure,
			fmt.Errorf("%w: reference is required", ErrMissingField))
	}

	event := &model.PaymentEvent{
		Reference: cmd.Reference,
		Email:     cmd.Email,
		BookingID: cmd.BookingID,
		Provider:  cmd.Provider,
		Source:    cmd.Source,
		Amount:    cmd.Amount,
		Currency:  optional(cmd.Currency),
		Payer:     optional(cmd.Payer),
	}

	err := p.repo.Create(ctx, event)
	if errors.Is(err, repository.ErrPaymentEventExists) {
		p.metrics.RecordPaymentEvent(cmd.Source, "duplicate")
		p.logger.Info("Payment event already recorded",
			zap.String("referenceId", cmd.Reference),
			zap.String("source", cmd.Source))
		return RecordResult{Created: false}, nil
	}

	if err != nil {
		p.metrics.RecordPaymentEvent(cmd.Source, "error")
		p.logger.Error("Failed to record payment event",
			zap.Error(err),
			zap.String("referenceId", cmd.Reference))
		return RecordResult{}, NewServiceError(constants.ErrCodePersistenceFailure, err)
	}

	p.metrics.RecordPaymentEvent(cmd.Source, "created")
	p.logger.Info("Payment event recorded",
		zap.String("referenceId", cmd.Reference),
		zap.String("bookingId", cmd.BookingID),
		zap.String("provider", string(cmd.Provider)),
		zap.String("source", cmd.Source))

	return RecordResult{Created: true, Event: event}, nil
}

func (p *PaymentEvent) FindByReference(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	event, err := p.repo.GetByReference(ctx, reference)
	if err == nil {
		return event, nil
	}

	if errors.Is(err, repository.ErrPaymentEventNotFound) {
		return nil, err
	}

	p.logger.Error("Failed to look up payment event", zap.Error(err), zap.String("referenceId", reference))
	return nil, NewServiceError(constants.ErrCodePersistenceFailure, err)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
