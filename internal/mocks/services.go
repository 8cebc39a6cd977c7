package mocks

import (
	"context"

	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type TokenService struct {
	mock.Mock
}

func (t *TokenService) AccessToken(ctx context.Context) (string, error) {
	args := t.Called(ctx)
	return args.String(0), args.Error(1)
}

type DepositService struct {
	mock.Mock
}

func (d *DepositService) Initiate(ctx context.Context, cmd service.DepositCommand) (service.DepositResult, error) {
	args := d.Called(ctx, cmd)
	return args.Get(0).(service.DepositResult), args.Error(1)
}

type ReconcileService struct {
	mock.Mock
}

func (r *ReconcileService) CheckStatus(ctx context.Context, referenceID string) (service.StatusResult, error) {
	args := r.Called(ctx, referenceID)
	return args.Get(0).(service.StatusResult), args.Error(1)
}

type PaymentEventService struct {
	mock.Mock
}

func (p *PaymentEventService) Record(ctx context.Context, cmd service.RecordPaymentCommand) (service.RecordResult, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(service.RecordResult), args.Error(1)
}

func (p *PaymentEventService) FindByReference(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	args := p.Called(ctx, reference)
	event, _ := args.Get(0).(*model.PaymentEvent)
	return event, args.Error(1)
}

type WebhookService struct {
	mock.Mock
}

func (w *WebhookService) HandlePaymentEvent(ctx context.Context, payload []byte) (service.WebhookResult, error) {
	args := w.Called(ctx, payload)
	return args.Get(0).(service.WebhookResult), args.Error(1)
}

type PaymentEventQueueService struct {
	mock.Mock
}

func (q *PaymentEventQueueService) FindEventsToPublish(ctx context.Context, limit int) ([]service.PaymentRecordedMessage, error) {
	args := q.Called(ctx, limit)
	messages, _ := args.Get(0).([]service.PaymentRecordedMessage)
	return messages, args.Error(1)
}

func (q *PaymentEventQueueService) MarkEventAsPublished(ctx context.Context, eventID int64) error {
	args := q.Called(ctx, eventID)
	return args.Error(0)
}
