package constants

import "net/http"

const (
	ErrCodeAuthFailure            = "AUTH_FAILURE"
	ErrCodeNetworkFailure         = "NETWORK_FAILURE"
	ErrCodeProviderRejected       = "PROVIDER_REJECTED"
	ErrCodeStatusUnavailable      = "STATUS_UNAVAILABLE"
	ErrCodeValidationFailure      = "VALIDATION_FAILURE"
	ErrCodePersistenceFailure     = "PERSISTENCE_FAILURE"
	ErrCodePaymentRecordingFailed = "PAYMENT_RECORDING_FAILED"
	ErrCodeInvalidRequestBody     = "INVALID_REQUEST_BODY"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

const (
	ErrMsgAuthFailure            = "payment provider rejected the gateway credentials"
	ErrMsgNetworkFailure         = "payment provider could not be reached"
	ErrMsgProviderRejected       = "payment provider rejected the request"
	ErrMsgStatusUnavailable      = "could not fetch payment status"
	ErrMsgValidationFailure      = "request validation failed"
	ErrMsgPersistenceFailure     = "failed to store payment record"
	ErrMsgPaymentRecordingFailed = "payment succeeded but could not be recorded, it will be reconciled manually"
	ErrMsgInvalidRequestBody     = "failed to parse request body"
	ErrMsgInternalError          = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeAuthFailure:            ErrMsgAuthFailure,
	ErrCodeNetworkFailure:         ErrMsgNetworkFailure,
	ErrCodeProviderRejected:       ErrMsgProviderRejected,
	ErrCodeStatusUnavailable:      ErrMsgStatusUnavailable,
	ErrCodeValidationFailure:      ErrMsgValidationFailure,
	ErrCodePersistenceFailure:     ErrMsgPersistenceFailure,
	ErrCodePaymentRecordingFailed: ErrMsgPaymentRecordingFailed,
	ErrCodeInvalidRequestBody:     ErrMsgInvalidRequestBody,
	ErrCodeInternalError:          ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

// GetHTTPStatus returns the default status for code. Provider errors may be
// overridden with the provider's own status by the error middleware.
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailure, ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	case ErrCodeAuthFailure, ErrCodeNetworkFailure, ErrCodeProviderRejected, ErrCodeStatusUnavailable:
		return http.StatusBadGateway
	case ErrCodePersistenceFailure, ErrCodePaymentRecordingFailed, ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
