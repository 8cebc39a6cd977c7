package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrAuthFailure       = errors.New("AUTH_FAILURE")
	ErrNetworkFailure    = errors.New("NETWORK_FAILURE")
	ErrProviderRejected  = errors.New("PROVIDER_REJECTED")
	ErrStatusUnavailable = errors.New("STATUS_UNAVAILABLE")
)

const (
	// maxBodySize caps how much of a provider payload is kept for diagnostics.
	maxBodySize = 4 << 10
	// maxPayloadSize caps how much of a successful response is read for parsing.
	maxPayloadSize = 1 << 20
)

// ResponseError is returned when a provider answered, but not with what the
// caller needed. Body holds the raw provider payload.
type ResponseError struct {
	Kind       error
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: provider responded with status %d", e.Kind, e.StatusCode)
	}

	return fmt.Sprintf("%s: provider responded with status %d: %s", e.Kind, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Kind
}

// NewResponseError drains resp.Body into a ResponseError of the given kind.
// The caller still owns closing the body.
func NewResponseError(kind error, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	return &ResponseError{Kind: kind, StatusCode: resp.StatusCode, Body: string(body)}
}

// NewPayloadError wraps an already read payload.
func NewPayloadError(kind error, statusCode int, payload []byte) error {
	if len(payload) > maxBodySize {
		payload = payload[:maxBodySize]
	}

	return &ResponseError{Kind: kind, StatusCode: statusCode, Body: string(payload)}
}

// TransportError classifies a failed round trip. Timeouts and refused
// connections are both network failures; callers decide whether to retry.
func TransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out: %w", ErrNetworkFailure, err)
	}

	return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
}

// IsTimeout reports whether err is a network failure caused by a deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ReadPayload reads a response body for decoding, up to 1 MiB.
func ReadPayload(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
}
