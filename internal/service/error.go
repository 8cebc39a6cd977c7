package service

import (
	"errors"

	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/pkg/provider"
)

var (
	ErrInvalidReference   = errors.New("INVALID_REFERENCE")
	ErrMissingField       = errors.New("MISSING_FIELD")
	ErrUnknownStatus      = errors.New("UNKNOWN_PROVIDER_STATUS")
	ErrUnsupportedDeposit = errors.New("UNSUPPORTED_DEPOSIT")
	ErrAmountTooSmall     = errors.New("AMOUNT_TOO_SMALL")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// providerError tags a provider client error with its service code.
func providerError(err error) error {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return err
	}

	switch {
	case errors.Is(err, provider.ErrAuthFailure):
		return NewServiceError(constants.ErrCodeAuthFailure, err)
	case errors.Is(err, provider.ErrNetworkFailure):
		return NewServiceError(constants.ErrCodeNetworkFailure, err)
	case errors.Is(err, provider.ErrProviderRejected):
		return NewServiceError(constants.ErrCodeProviderRejected, err)
	case errors.Is(err, provider.ErrStatusUnavailable):
		return NewServiceError(constants.ErrCodeStatusUnavailable, err)
	default:
		return NewServiceError(constants.ErrCodeInternalError, err)
	}
}

// providerFields returns log fields describing a provider response error.
func providerFields(err error) (statusCode int, body string) {
	var respErr *provider.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode, respErr.Body
	}

	return 0, ""
}
