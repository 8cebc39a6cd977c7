package momo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/a1tips/paymentgateway/pkg/httpclient"
	"github.com/a1tips/paymentgateway/pkg/provider"
)

const (
	TokenEndpoint        = "/collection/token/"
	RequestToPayEndpoint = "/collection/v1_0/requesttopay"
)

const (
	HeaderSubscriptionKey   = "Ocp-Apim-Subscription-Key"
	HeaderReferenceID       = "X-Reference-Id"
	HeaderTargetEnvironment = "X-Target-Environment"
)

type Client interface {
	FetchToken(ctx context.Context) (Token, error)
	RequestToPay(ctx context.Context, accessToken, referenceID string, request RequestToPayRequest) error
	RequestToPayStatus(ctx context.Context, accessToken, referenceID string) (RequestToPayStatus, error)
}

type collectionClient struct {
	client httpclient.HTTPClient
	config Config
}

func NewCollectionClient(cfg Config, client httpclient.HTTPClient) Client {
	return &collectionClient{config: cfg, client: client}
}

// FetchToken exchanges the static API user/key pair for a bearer token.
// Any answer other than 200 is an auth failure.
func (c *collectionClient) FetchToken(ctx context.Context) (Token, error) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.config.APIUser + ":" + c.config.APIKey))

	headers := map[string]string{
		"Authorization":       "Basic " + credentials,
		HeaderSubscriptionKey: c.config.SubscriptionKey,
	}

	resp, err := c.client.Post(ctx, c.config.BaseURL+TokenEndpoint, nil, headers)
	if err != nil {
		return Token{}, provider.TransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Token{}, provider.NewResponseError(provider.ErrAuthFailure, resp)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return Token{}, fmt.Errorf("%w: decoding token: %w", provider.ErrAuthFailure, err)
	}

	if token.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: empty access token", provider.ErrAuthFailure)
	}

	return token, nil
}

// RequestToPay submits a charge. The provider accepts it for asynchronous
// processing with 202; the payer then approves it on the handset.
func (c *collectionClient) RequestToPay(ctx context.Context, accessToken, referenceID string, request RequestToPayRequest) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	headers := c.headers(accessToken)
	headers[HeaderReferenceID] = referenceID
	headers["Content-Type"] = "application/json"

	resp, err := c.client.Post(ctx, c.config.BaseURL+RequestToPayEndpoint, &buf, headers)
	if err != nil {
		return provider.TransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return provider.NewResponseError(provider.ErrProviderRejected, resp)
	}

	return nil
}

func (c *collectionClient) RequestToPayStatus(ctx context.Context, accessToken, referenceID string) (RequestToPayStatus, error) {
	endpoint := c.config.BaseURL + RequestToPayEndpoint + "/" + url.PathEscape(referenceID)

	resp, err := c.client.Get(ctx, endpoint, c.headers(accessToken))
	if err != nil {
		return RequestToPayStatus{}, provider.TransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RequestToPayStatus{}, provider.NewResponseError(provider.ErrStatusUnavailable, resp)
	}

	var status RequestToPayStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return RequestToPayStatus{}, fmt.Errorf("%w: decoding error: %w", provider.ErrStatusUnavailable, err)
	}

	return status, nil
}

func (c *collectionClient) headers(accessToken string) map[string]string {
	return map[string]string{
		"Authorization":         "Bearer " + accessToken,
		HeaderTargetEnvironment: c.config.TargetEnvironment,
		HeaderSubscriptionKey:   c.config.SubscriptionKey,
	}
}
