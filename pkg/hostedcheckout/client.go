package hostedcheckout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/a1tips/paymentgateway/pkg/httpclient"
	"github.com/a1tips/paymentgateway/pkg/provider"
)

type Client interface {
	InitiateHostedPayment(ctx context.Context, input PaymentInput) (HostedPayment, error)
}

type client struct {
	client httpclient.HTTPClient
	config Config
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	return &client{config: cfg, client: httpClient}
}

// InitiateHostedPayment sends the initiateHostedPayment mutation. A response
// carrying a GraphQL errors array, or no link at all, is a rejection and the
// raw payload is kept on the returned error.
func (c *client) InitiateHostedPayment(ctx context.Context, input PaymentInput) (HostedPayment, error) {
	var buf bytes.Buffer
	request := graphQLRequest{
		Query:     InitiateHostedPaymentMutation,
		Variables: map[string]any{"input": input},
	}
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return HostedPayment{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.config.SecretKey,
		"Content-Type":  "application/json",
	}

	resp, err := c.client.Post(ctx, c.config.URL, &buf, headers)
	if err != nil {
		return HostedPayment{}, provider.TransportError(err)
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return HostedPayment{}, provider.NewResponseError(provider.ErrAuthFailure, resp)
	case resp.StatusCode != http.StatusOK:
		return HostedPayment{}, provider.NewResponseError(provider.ErrProviderRejected, resp)
	}

	payload, err := provider.ReadPayload(resp)
	if err != nil {
		return HostedPayment{}, provider.TransportError(err)
	}

	var body graphQLResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return HostedPayment{}, provider.NewPayloadError(provider.ErrProviderRejected, resp.StatusCode, payload)
	}

	if len(body.Errors) > 0 {
		return HostedPayment{}, provider.NewPayloadError(provider.ErrProviderRejected, resp.StatusCode, payload)
	}

	if body.Data == nil || body.Data.InitiateHostedPayment == nil || body.Data.InitiateHostedPayment.HostedLink == "" {
		return HostedPayment{}, provider.NewPayloadError(provider.ErrProviderRejected, resp.StatusCode, payload)
	}

	return *body.Data.InitiateHostedPayment, nil
}
