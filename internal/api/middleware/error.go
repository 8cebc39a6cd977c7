package middleware

import (
	"errors"

	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/a1tips/paymentgateway/pkg/provider"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Detail         string `json:"detail,omitempty"`
	ProviderStatus int    `json:"providerStatus,omitempty"`
	Status         string `json:"status,omitempty"`
}

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    constants.ErrCodeInvalidRequestBody,
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code
	if constants.GetErrorMessage(errorCode) == constants.ErrMsgInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	status := constants.GetHTTPStatus(errorCode)
	resp := ErrorResponse{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
	}

	var respErr *provider.ResponseError
	hasProviderResponse := errors.As(err, &respErr)

	switch errorCode {
	case constants.ErrCodeValidationFailure, constants.ErrCodeInvalidRequestBody:
		resp.Detail = err.Error()
	case constants.ErrCodeNetworkFailure:
		if provider.IsTimeout(err) {
			status = fiber.StatusGatewayTimeout
		}
	case constants.ErrCodeProviderRejected, constants.ErrCodeStatusUnavailable:
		if hasProviderResponse && respErr.StatusCode >= 400 && respErr.StatusCode <= 599 {
			status = respErr.StatusCode
		}
	case constants.ErrCodePaymentRecordingFailed:
		resp.Status = string(model.ChargeStatusSuccessful)
	}

	if hasProviderResponse {
		resp.ProviderStatus = respErr.StatusCode
		resp.Detail = respErr.Body
	}

	return c.Status(status).JSON(resp)
}
