package service

import (
	"context"
	"errors"
	"time"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/a1tips/paymentgateway/pkg/tokencache"
	"go.uber.org/zap"
)

type TokenService interface {
	AccessToken(ctx context.Context) (string, error)
}

type token struct {
	client  momo.Client
	cache   tokencache.Cache
	config  momo.Config
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewTokenService returns a token source for the collection API. A nil cache
// means every call fetches a fresh token.
func NewTokenService(client momo.Client, cache tokencache.Cache, cfg *config.Config,
	metrics *metrics.Metrics, logger *zap.Logger,
) TokenService {
	return &token{client: client, cache: cache, config: cfg.MoMo, metrics: metrics, logger: logger}
}

func (t *token) AccessToken(ctx context.Context) (string, error) {
	if cached, ok := t.cached(ctx); ok {
		return cached, nil
	}

	start := time.Now()
	tok, err := t.client.FetchToken(ctx)
	t.metrics.RecordProviderCall(string(model.ProviderMoMo), "token", err, time.Since(start))
	if err != nil {
		statusCode, _ := providerFields(err)
		t.logger.Error("Failed to fetch provider token",
			zap.Error(err),
			zap.Int("providerStatus", statusCode))
		return "", providerError(err)
	}

	t.store(ctx, tok)

	return tok.AccessToken, nil
}

func (t *token) cached(ctx context.Context) (string, bool) {
	if t.cache == nil {
		return "", false
	}

	value, err := t.cache.Get(ctx, t.cacheKey())
	switch {
	case err == nil && value != "":
		t.metrics.RecordTokenCache("hit")
		return value, true
	case err == nil, errors.Is(err, tokencache.ErrMiss):
		t.metrics.RecordTokenCache("miss")
	default:
		t.metrics.RecordTokenCache("error")
		t.logger.Warn("Token cache lookup failed, fetching a fresh token", zap.Error(err))
	}

	return "", false
}

func (t *token) store(ctx context.Context, tok momo.Token) {
	if t.cache == nil {
		return
	}

	ttl := time.Duration(tok.ExpiresIn)*time.Second - t.config.TokenExpiryMargin
	if ttl <= 0 {
		return
	}

	if err := t.cache.Set(ctx, t.cacheKey(), tok.AccessToken, ttl); err != nil {
		t.logger.Warn("Failed to cache provider token", zap.Error(err))
	}
}

func (t *token) cacheKey() string {
	return "momo:token:" + t.config.APIUser
}
