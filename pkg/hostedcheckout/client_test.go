package hostedcheckout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a1tips/paymentgateway/pkg/hostedcheckout"
	"github.com/a1tips/paymentgateway/pkg/mocks"
	"github.com/a1tips/paymentgateway/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cfg = hostedcheckout.Config{
	URL:         "https://checkout.test/graphql",
	SecretKey:   "sk_test_123",
	RedirectURL: "https://a1tips.test/payment/complete",
	Timeout:     15 * time.Second,
}

var input = hostedcheckout.PaymentInput{
	Amount:      json.Number("50.00"),
	CountryCode: "GH",
	Email:       "ama@example.com",
	FirstName:   "Ama",
	LastName:    "Mensah",
	RedirectURL: cfg.RedirectURL,
	Reference:   "6f1c2a8e-3b5d-4c7e-9f10-2a3b4c5d6e7f",
}

var headers = map[string]string{
	"Authorization": "Bearer sk_test_123",
	"Content-Type":  "application/json",
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func matchMutation(reference string) interface{} {
	return mock.MatchedBy(func(body interface{}) bool {
		buf, ok := body.(*bytes.Buffer)
		if !ok {
			return false
		}

		var req struct {
			Query     string `json:"query"`
			Variables struct {
				Input hostedcheckout.PaymentInput `json:"input"`
			} `json:"variables"`
		}
		if err := json.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&req); err != nil {
			return false
		}

		return strings.Contains(req.Query, "initiateHostedPayment") && req.Variables.Input.Reference == reference
	})
}

func TestClient_InitiateHostedPayment(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		body       string
		wantLink   string
		wantErr    error
		wantDetail bool
	}{
		{
			name:     "hosted link returned",
			status:   http.StatusOK,
			body:     `{"data":{"initiateHostedPayment":{"hostedLink":"https://pay.test/h/abc"}}}`,
			wantLink: "https://pay.test/h/abc",
		},
		{
			name:   "hosted link with large extensions",
			status: http.StatusOK,
			body: `{"data":{"initiateHostedPayment":{"hostedLink":"https://pay.test/h/abc"}},` +
				`"extensions":{"trace":"` + strings.Repeat("x", 5000) + `"}}`,
			wantLink: "https://pay.test/h/abc",
		},
		{
			name:       "no link and no errors",
			status:     http.StatusOK,
			body:       `{"data":{"initiateHostedPayment":{}}}`,
			wantErr:    provider.ErrProviderRejected,
			wantDetail: true,
		},
		{
			name:       "empty data",
			status:     http.StatusOK,
			body:       `{}`,
			wantErr:    provider.ErrProviderRejected,
			wantDetail: true,
		},
		{
			name:       "graphql errors",
			status:     http.StatusOK,
			body:       `{"errors":[{"message":"invalid country code"}],"data":null}`,
			wantErr:    provider.ErrProviderRejected,
			wantDetail: true,
		},
		{
			name:       "invalid json",
			status:     http.StatusOK,
			body:       `<html>bad gateway</html>`,
			wantErr:    provider.ErrProviderRejected,
			wantDetail: true,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"message":"invalid secret key"}`,
			wantErr:    provider.ErrAuthFailure,
			wantDetail: true,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"message":"upstream down"}`,
			wantErr:    provider.ErrProviderRejected,
			wantDetail: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := &mocks.HTTPClient{}
			client := hostedcheckout.NewClient(cfg, mockClient)

			mockClient.On("Post", context.Background(), cfg.URL, matchMutation(input.Reference), headers).
				Return(newResponse(tc.status, tc.body), nil)

			payment, err := client.InitiateHostedPayment(context.Background(), input)

			mockClient.AssertExpectations(t)

			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.wantLink, payment.HostedLink)
				return
			}

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, payment.HostedLink)

			if tc.wantDetail {
				var respErr *provider.ResponseError
				require.True(t, errors.As(err, &respErr))
				assert.Equal(t, tc.status, respErr.StatusCode)
				assert.Equal(t, tc.body, respErr.Body)
			}
		})
	}
}

func TestClient_InitiateHostedPayment_NetworkError(t *testing.T) {
	mockClient := &mocks.HTTPClient{}
	client := hostedcheckout.NewClient(cfg, mockClient)

	mockClient.On("Post", context.Background(), cfg.URL, mock.Anything, headers).
		Return((*http.Response)(nil), errors.New("connection refused"))

	_, err := client.InitiateHostedPayment(context.Background(), input)

	assert.ErrorIs(t, err, provider.ErrNetworkFailure)
	assert.NotContains(t, err.Error(), "sk_test_123")
}

func TestClient_InitiateHostedPayment_SendsMetadata(t *testing.T) {
	mockClient := &mocks.HTTPClient{}
	client := hostedcheckout.NewClient(cfg, mockClient)

	withGame := input
	withGame.Metadata = hostedcheckout.Metadata{GameType: "premium-tips"}

	mockClient.On("Post", context.Background(), cfg.URL, mock.MatchedBy(func(body interface{}) bool {
		buf, ok := body.(*bytes.Buffer)
		return ok && strings.Contains(buf.String(), `"metadata":{"game_type":"premium-tips"}`)
	}), headers).Return(newResponse(http.StatusOK, `{"data":{"initiateHostedPayment":{"hostedLink":"https://pay.test/h/abc"}}}`), nil)

	payment, err := client.InitiateHostedPayment(context.Background(), withGame)

	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/h/abc", payment.HostedLink)
	mockClient.AssertExpectations(t)
}
