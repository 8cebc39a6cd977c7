package v1

import (
	"github.com/a1tips/paymentgateway/internal/api/validator"
	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const statusAcknowledged = "acknowledged"

type Handler struct {
	logger    *zap.Logger
	provider  string
	validator validator.IXValidator
	deposit   service.DepositService
	reconcile service.ReconcileService
	webhook   service.WebhookService
}

func NewHandler(logger *zap.Logger, cfg *config.Config, validator validator.IXValidator,
	deposit service.DepositService, reconcile service.ReconcileService, webhook service.WebhookService,
) *Handler {
	return &Handler{
		logger:    logger,
		provider:  cfg.Payments.Provider,
		validator: validator,
		deposit:   deposit,
		reconcile: reconcile,
		webhook:   webhook,
	}
}

// CreateDeposit parses the body shape of the configured provider and starts a charge.
func (h *Handler) CreateDeposit(c *fiber.Ctx) error {
	ctx := c.UserContext()

	cmd, err := h.depositCommand(c)
	if err != nil {
		return err
	}

	result, err := h.deposit.Initiate(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to initiate deposit",
			zap.Error(err),
			zap.String("provider", h.provider))
		return err
	}

	h.logger.Info("Deposit initiated",
		zap.String("referenceId", result.ReferenceID),
		zap.String("provider", h.provider))

	return c.Status(fiber.StatusOK).JSON(CreateDepositResponse{
		Status:      string(result.Status),
		Message:     result.Message,
		ReferenceID: result.ReferenceID,
		HostedLink:  result.HostedLink,
	})
}

func (h *Handler) depositCommand(c *fiber.Ctx) (service.DepositCommand, error) {
	switch h.provider {
	case config.ProviderHostedCheckout:
		var request HostedDepositRequest
		if err := h.parse(c, &request); err != nil {
			return nil, err
		}

		return service.HostedDepositCommand{
			Amount:      request.Amount,
			Currency:    request.Currency,
			CountryCode: request.CountryCode,
			Email:       request.Email,
			FirstName:   request.FirstName,
			LastName:    request.LastName,
			GameType:    request.GameType,
		}, nil
	default:
		var request MoMoDepositRequest
		if err := h.parse(c, &request); err != nil {
			return nil, err
		}

		return service.MoMoDepositCommand{
			Amount:      request.VIPAmount,
			Currency:    request.Currency,
			PhoneNumber: request.PhoneNumber,
			GameType:    request.GameType,
			Email:       request.Email,
			FirstName:   request.FirstName,
			LastName:    request.LastName,
		}, nil
	}
}

func (h *Handler) parse(c *fiber.Ctx, request interface{}) error {
	if err := c.BodyParser(request); err != nil {
		h.logger.Warn("Failed to parse body", zap.Error(err))
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	return h.validator.ValidateRequest(request)
}

func (h *Handler) CheckStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	referenceID := c.Params("referenceId")

	result, err := h.reconcile.CheckStatus(ctx, referenceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(CheckStatusResponse{
		Status:      string(result.Status),
		ReferenceID: result.ReferenceID,
	})
}

func (h *Handler) RecordPaymentEvent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	result, err := h.webhook.HandlePaymentEvent(ctx, c.Body())
	if err != nil {
		h.logger.Warn("Payment event rejected", zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusOK).JSON(RecordPaymentEventResponse{
		Status:    statusAcknowledged,
		Reference: result.Reference,
		Event:     result.Status,
		Recorded:  result.Recorded,
		Duplicate: result.Duplicate,
	})
}
