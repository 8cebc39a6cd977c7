package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/mocks"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The provider echoes the mutation's reference, customer and metadata back in
// its payment event, so a hosted deposit must carry everything the webhook needs.
func TestHostedCheckout_DepositThenWebhookThenStatus(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	cfg := newConfig(config.ProviderHostedCheckout)
	m := newMetrics()

	repo := newMemoryRepository()
	events := service.NewPaymentEventService(repo, m, logger)
	hosted := &mocks.HostedCheckoutClient{}

	deposit, err := service.NewDepositService(&mocks.TokenService{}, &mocks.MoMoClient{}, hosted, cfg, m, logger)
	require.NoError(t, err)
	webhook := service.NewWebhookService(events, m, logger)
	reconcile := service.NewReconcileService(&mocks.TokenService{}, &mocks.MoMoClient{}, events, cfg, m, logger)

	var sent hostedcheckout.PaymentInput
	hosted.On("InitiateHostedPayment", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(hostedcheckout.PaymentInput) }).
		Return(hostedcheckout.HostedPayment{HostedLink: "https://pay.test/h/abc"}, nil)

	created, err := deposit.Initiate(ctx, hostedCommand())
	require.NoError(t, err)
	assert.Equal(t, "premium-tips", sent.Metadata.GameType)

	pending, err := reconcile.CheckStatus(ctx, created.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, model.ChargeStatusPending, pending.Status)

	payload, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"status":    "successful",
			"reference": sent.Reference,
			"amount":    sent.Amount,
			"customer":  map[string]any{"email": sent.Email},
			"metadata":  sent.Metadata,
		},
	})
	require.NoError(t, err)

	recorded, err := webhook.HandlePaymentEvent(ctx, payload)
	require.NoError(t, err)
	assert.True(t, recorded.Recorded)

	final, err := reconcile.CheckStatus(ctx, created.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, model.ChargeStatusSuccessful, final.Status)

	event, err := repo.GetByReference(ctx, created.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", event.Email)
	assert.Equal(t, "premium-tips", event.BookingID)
}

func TestHostedCheckout_GameTypeRequired(t *testing.T) {
	hosted := &mocks.HostedCheckoutClient{}
	svc, err := service.NewDepositService(&mocks.TokenService{}, &mocks.MoMoClient{}, hosted,
		newConfig(config.ProviderHostedCheckout), newMetrics(), zap.NewNop())
	require.NoError(t, err)

	cmd := hostedCommand()
	cmd.GameType = ""

	_, err = svc.Initiate(context.Background(), cmd)

	assert.Equal(t, constants.ErrCodeValidationFailure, serviceCode(t, err))
	assert.Contains(t, err.Error(), "gameType")
	hosted.AssertNotCalled(t, "InitiateHostedPayment", mock.Anything, mock.Anything)
}
