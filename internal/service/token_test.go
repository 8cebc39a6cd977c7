package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/mocks"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/a1tips/paymentgateway/pkg/provider"
	"github.com/a1tips/paymentgateway/pkg/tokencache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokenService_AccessToken(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	cfg := newConfig(config.ProviderMoMo)

	t.Run("fetches a fresh token without cache", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		svc := service.NewTokenService(client, nil, cfg, newMetrics(), logger)

		client.On("FetchToken", ctx).Return(momo.Token{AccessToken: "tok-1", ExpiresIn: 3600}, nil).Twice()

		for i := 0; i < 2; i++ {
			tok, err := svc.AccessToken(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok-1", tok)
		}

		client.AssertNumberOfCalls(t, "FetchToken", 2)
	})

	t.Run("auth failure", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		svc := service.NewTokenService(client, nil, cfg, newMetrics(), logger)

		authErr := &provider.ResponseError{Kind: provider.ErrAuthFailure, StatusCode: 401}
		client.On("FetchToken", ctx).Return(momo.Token{}, authErr)

		tok, err := svc.AccessToken(ctx)

		assert.Empty(t, tok)
		assert.ErrorIs(t, err, provider.ErrAuthFailure)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAuthFailure, serviceErr.Code)
	})

	t.Run("network failure", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		svc := service.NewTokenService(client, nil, cfg, newMetrics(), logger)

		client.On("FetchToken", ctx).Return(momo.Token{}, fmt.Errorf("%w: dial tcp", provider.ErrNetworkFailure))

		_, err := svc.AccessToken(ctx)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeNetworkFailure, serviceErr.Code)
	})

	t.Run("cache hit skips the provider", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		cache := &mocks.TokenCache{}
		m := newMetrics()
		svc := service.NewTokenService(client, cache, cfg, m, logger)

		cache.On("Get", ctx, "momo:token:api-user").Return("cached-token", nil)

		tok, err := svc.AccessToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, "cached-token", tok)
		client.AssertNotCalled(t, "FetchToken", mock.Anything)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenCacheRequests.WithLabelValues("hit")))
	})

	t.Run("cache miss stores token with expiry margin", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		cache := &mocks.TokenCache{}
		svc := service.NewTokenService(client, cache, cfg, newMetrics(), logger)

		cache.On("Get", ctx, "momo:token:api-user").Return("", tokencache.ErrMiss)
		client.On("FetchToken", ctx).Return(momo.Token{AccessToken: "tok-2", ExpiresIn: 3600}, nil)
		cache.On("Set", ctx, "momo:token:api-user", "tok-2", 3570*time.Second).Return(nil)

		tok, err := svc.AccessToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, "tok-2", tok)
		cache.AssertExpectations(t)
	})

	t.Run("short lived token is not cached", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		cache := &mocks.TokenCache{}
		svc := service.NewTokenService(client, cache, cfg, newMetrics(), logger)

		cache.On("Get", ctx, "momo:token:api-user").Return("", tokencache.ErrMiss)
		client.On("FetchToken", ctx).Return(momo.Token{AccessToken: "tok-3", ExpiresIn: 10}, nil)

		_, err := svc.AccessToken(ctx)

		require.NoError(t, err)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache errors degrade to a fresh fetch", func(t *testing.T) {
		client := &mocks.MoMoClient{}
		cache := &mocks.TokenCache{}
		svc := service.NewTokenService(client, cache, cfg, newMetrics(), logger)

		cache.On("Get", ctx, "momo:token:api-user").Return("", errors.New("redis: connection refused"))
		client.On("FetchToken", ctx).Return(momo.Token{AccessToken: "tok-4", ExpiresIn: 3600}, nil)
		cache.On("Set", ctx, "momo:token:api-user", "tok-4", mock.AnythingOfType("time.Duration")).
			Return(errors.New("redis: connection refused"))

		tok, err := svc.AccessToken(ctx)

		require.NoError(t, err)
		assert.Equal(t, "tok-4", tok)
	})
}
