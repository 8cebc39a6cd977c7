package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a1tips/paymentgateway/internal/config"
	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/a1tips/paymentgateway/internal/repository"
	"github.com/a1tips/paymentgateway/pkg/momo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReconcileService interface {
	CheckStatus(ctx context.Context, referenceID string) (StatusResult, error)
}

type reconcile struct {
	provider model.Provider
	tokens   TokenService
	momo     momo.Client
	events   PaymentEventService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewReconcileService(tokens TokenService, momoClient momo.Client, events PaymentEventService,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger,
) ReconcileService {
	return &reconcile{
		provider: model.Provider(cfg.Payments.Provider),
		tokens:   tokens,
		momo:     momoClient,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

// CheckStatus reports the charge status and records a PaymentEvent the first
// time the provider reports SUCCESSFUL. Repeated polls are safe: the sink
// drops duplicates.
func (r *reconcile) CheckStatus(ctx context.Context, referenceID string) (StatusResult, error) {
	if _, err := uuid.Parse(referenceID); err != nil {
		return StatusResult{}, NewServiceError(constants.ErrCodeValidationFailure,
			fmt.Errorf("%w: %q is not a UUID", ErrInvalidReference, referenceID))
	}

	if r.provider == model.ProviderHostedCheckout {
		return r.recordedStatus(ctx, referenceID)
	}

	accessToken, err := r.tokens.AccessToken(ctx)
	if err != nil {
		return StatusResult{}, err
	}

	start := time.Now()
	status, err := r.momo.RequestToPayStatus(ctx, accessToken, referenceID)
	r.metrics.RecordProviderCall(string(model.ProviderMoMo), "request_to_pay_status", err, time.Since(start))
	if err != nil {
		statusCode, body := providerFields(err)
		r.logger.Warn("Could not fetch payment status",
			zap.Error(err),
			zap.String("referenceId", referenceID),
			zap.Int("providerStatus", statusCode),
			zap.String("providerBody", body))
		return StatusResult{}, providerError(err)
	}

	chargeStatus, ok := NormalizeStatus(string(status.Status))
	if !ok {
		r.logger.Error("Provider reported an unknown status",
			zap.String("referenceId", referenceID),
			zap.String("status", string(status.Status)))
		return StatusResult{}, NewServiceError(constants.ErrCodeStatusUnavailable,
			fmt.Errorf("%w: %q", ErrUnknownStatus, status.Status))
	}

	r.metrics.RecordStatusCheck(string(model.ProviderMoMo), string(chargeStatus))

	charge := chargeFromStatus(referenceID, chargeStatus, status)
	result := StatusResult{ReferenceID: charge.ReferenceID, Status: charge.Status}

	if !charge.Status.IsTerminal() {
		r.logger.Debug("Payment still pending", zap.String("referenceId", referenceID))
		return result, nil
	}

	if charge.Status != model.ChargeStatusSuccessful {
		r.logger.Info("Payment ended without success",
			zap.String("referenceId", referenceID),
			zap.String("status", string(charge.Status)))
		return result, nil
	}

	if charge.Email == "" {
		r.logger.Warn("Payer email missing from provider status",
			zap.String("referenceId", referenceID),
			zap.String("payeeNote", status.PayeeNote))
	}

	cmd := recordCommandFromCharge(charge)
	if _, err := r.events.Record(ctx, cmd); err != nil {
		r.metrics.RecordRecordingFailure(model.PaymentEventSourceReconcile)
		r.logger.Error("Payment succeeded at provider but recording failed",
			zap.Error(err),
			zap.String("referenceId", referenceID),
			zap.String("email", cmd.Email),
			zap.String("bookingId", cmd.BookingID),
			zap.String("source", model.PaymentEventSourceReconcile))
		return result, NewServiceError(constants.ErrCodePaymentRecordingFailed, err)
	}

	return result, nil
}

// recordedStatus answers for providers that push completion through the
// webhook: a recorded event means SUCCESSFUL, anything else is still PENDING.
func (r *reconcile) recordedStatus(ctx context.Context, referenceID string) (StatusResult, error) {
	_, err := r.events.FindByReference(ctx, referenceID)
	switch {
	case err == nil:
		r.metrics.RecordStatusCheck(string(r.provider), string(model.ChargeStatusSuccessful))
		return StatusResult{ReferenceID: referenceID, Status: model.ChargeStatusSuccessful}, nil
	case errors.Is(err, repository.ErrPaymentEventNotFound):
		r.metrics.RecordStatusCheck(string(r.provider), string(model.ChargeStatusPending))
		return StatusResult{ReferenceID: referenceID, Status: model.ChargeStatusPending}, nil
	default:
		return StatusResult{}, err
	}
}

// NormalizeStatus maps a provider status onto the closed charge status set.
func NormalizeStatus(status string) (model.ChargeStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PENDING":
		return model.ChargeStatusPending, true
	case "SUCCESSFUL":
		return model.ChargeStatusSuccessful, true
	case "FAILED", "REJECTED", "TIMEOUT", "EXPIRED":
		return model.ChargeStatusFailed, true
	case "CANCELED", "CANCELLED":
		return model.ChargeStatusCanceled, true
	default:
		return "", false
	}
}

// chargeFromStatus rebuilds the charge from the provider's view of it.
func chargeFromStatus(referenceID string, chargeStatus model.ChargeStatus, status momo.RequestToPayStatus) model.Charge {
	charge := model.Charge{
		ReferenceID: referenceID,
		Currency:    status.Currency,
		Payer:       status.Payer.PartyID,
		Email:       emailFromPayeeNote(status.PayeeNote),
		BookingID:   status.ExternalID,
		Status:      chargeStatus,
	}

	if amount, err := decimal.NewFromString(status.Amount); err == nil {
		charge.Amount = amount
	}

	return charge
}

func recordCommandFromCharge(charge model.Charge) RecordPaymentCommand {
	return RecordPaymentCommand{
		Reference: charge.ReferenceID,
		Email:     charge.Email,
		BookingID: charge.BookingID,
		Provider:  model.ProviderMoMo,
		Source:    model.PaymentEventSourceReconcile,
		Amount:    decimal.NullDecimal{Decimal: charge.Amount, Valid: charge.Amount.IsPositive()},
		Currency:  charge.Currency,
		Payer:     charge.Payer,
	}
}

func emailFromPayeeNote(note string) string {
	email, ok := strings.CutPrefix(strings.TrimSpace(note), payeeNotePrefix)
	if !ok {
		return ""
	}

	return strings.TrimSpace(email)
}
