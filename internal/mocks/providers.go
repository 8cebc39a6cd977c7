package mocks

import (
	"context"
	"time"

	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/stretchr/testify/mock"
)

type MoMoClient struct {
	mock.Mock
}

func (m *MoMoClient) FetchToken(ctx context.Context) (momo.Token, error) {
	args := m.Called(ctx)
	return args.Get(0).(momo.Token), args.Error(1)
}

func (m *MoMoClient) RequestToPay(ctx context.Context, accessToken, referenceID string, request momo.RequestToPayRequest) error {
	args := m.Called(ctx, accessToken, referenceID, request)
	return args.Error(0)
}

func (m *MoMoClient) RequestToPayStatus(ctx context.Context, accessToken, referenceID string) (momo.RequestToPayStatus, error) {
	args := m.Called(ctx, accessToken, referenceID)
	return args.Get(0).(momo.RequestToPayStatus), args.Error(1)
}

type HostedCheckoutClient struct {
	mock.Mock
}

func (h *HostedCheckoutClient) InitiateHostedPayment(ctx context.Context, input hostedcheckout.PaymentInput) (hostedcheckout.HostedPayment, error) {
	args := h.Called(ctx, input)
	return args.Get(0).(hostedcheckout.HostedPayment), args.Error(1)
}

type TokenCache struct {
	mock.Mock
}

func (c *TokenCache) Get(ctx context.Context, key string) (string, error) {
	args := c.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (c *TokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := c.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, body []byte) error {
	args := p.Called(ctx, routingKey, messageID, body)
	return args.Error(0)
}
