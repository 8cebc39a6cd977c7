package provider_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/a1tips/paymentgateway/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponseError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(strings.NewReader(`{"code":"PAYER_NOT_FOUND"}`)),
	}

	err := provider.NewResponseError(provider.ErrProviderRejected, resp)

	assert.ErrorIs(t, err, provider.ErrProviderRejected)
	assert.NotErrorIs(t, err, provider.ErrAuthFailure)

	var respErr *provider.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
	assert.Equal(t, `{"code":"PAYER_NOT_FOUND"}`, respErr.Body)
	assert.Contains(t, err.Error(), "PAYER_NOT_FOUND")
}

func TestNewPayloadError_TruncatesLargeBodies(t *testing.T) {
	payload := []byte(strings.Repeat("x", 10_000))

	err := provider.NewPayloadError(provider.ErrProviderRejected, http.StatusOK, payload)

	var respErr *provider.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Len(t, respErr.Body, 4096)
}

func TestTransportError(t *testing.T) {
	testCases := []struct {
		name        string
		cause       error
		wantTimeout bool
	}{
		{name: "deadline", cause: context.DeadlineExceeded, wantTimeout: true},
		{name: "connection refused", cause: errors.New("dial tcp: connection refused"), wantTimeout: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := provider.TransportError(tc.cause)

			assert.ErrorIs(t, err, provider.ErrNetworkFailure)
			assert.ErrorIs(t, err, tc.cause)
			assert.Equal(t, tc.wantTimeout, provider.IsTimeout(err))
		})
	}
}

func TestReadPayload_KeepsBodiesLargerThanDiagnosticCap(t *testing.T) {
	body := `{"trace":"` + strings.Repeat("x", 10_000) + `"}`
	resp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}

	payload, err := provider.ReadPayload(resp)

	require.NoError(t, err)
	assert.Equal(t, body, string(payload))
}
