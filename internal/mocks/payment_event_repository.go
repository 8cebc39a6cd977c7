package mocks

import (
	"context"
	"time"

	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentEventRepository struct {
	mock.Mock
}

func (m *PaymentEventRepository) Create(ctx context.Context, event *model.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *PaymentEventRepository) GetByReference(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	args := m.Called(ctx, reference)
	event, _ := args.Get(0).(*model.PaymentEvent)
	return event, args.Error(1)
}

func (m *PaymentEventRepository) FindUnpublished(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]model.PaymentEvent)
	return events, args.Error(1)
}

func (m *PaymentEventRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	args := m.Called(ctx, id, publishedAt)
	return args.Error(0)
}
