package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WebhookService interface {
	HandlePaymentEvent(ctx context.Context, payload []byte) (WebhookResult, error)
}

type webhook struct {
	events  PaymentEventService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewWebhookService(events PaymentEventService, metrics *metrics.Metrics, logger *zap.Logger) WebhookService {
	return &webhook{events: events, metrics: metrics, logger: logger}
}

// HandlePaymentEvent records a pushed provider event. Only successful events
// touch the sink; every other status, including a missing one, is
// acknowledged without side effects.
func (w *webhook) HandlePaymentEvent(ctx context.Context, payload []byte) (WebhookResult, error) {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return WebhookResult{}, NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	status := strings.ToLower(lookupString(body, "data", "status"))
	reference := lookupString(body, "data", "reference")

	if !isSuccessfulEvent(status) {
		w.logger.Info("Acknowledging payment event without recording",
			zap.String("referenceId", reference),
			zap.String("status", status))
		return WebhookResult{Reference: reference, Status: status}, nil
	}

	cmd := RecordPaymentCommand{
		Reference: reference,
		Email:     lookupString(body, "data", "customer", "email"),
		BookingID: lookupString(body, "data", "metadata", "game_type"),
		Provider:  model.ProviderHostedCheckout,
		Source:    model.PaymentEventSourceWebhook,
		Amount:    lookupDecimal(body, "data", "amount"),
		Currency:  lookupString(body, "data", "currency"),
	}

	if err := requireFields(
		field{"data.reference", cmd.Reference},
		field{"data.customer.email", cmd.Email},
		field{"data.metadata.game_type", cmd.BookingID},
	); err != nil {
		w.logger.Warn("Successful payment event is missing a required field",
			zap.Error(err),
			zap.String("referenceId", reference))
		return WebhookResult{}, NewServiceError(constants.ErrCodeValidationFailure, err)
	}

	result, err := w.events.Record(ctx, cmd)
	if err != nil {
		w.metrics.RecordRecordingFailure(model.PaymentEventSourceWebhook)
		w.logger.Error("Payment succeeded at provider but recording failed",
			zap.Error(err),
			zap.String("referenceId", cmd.Reference),
			zap.String("email", cmd.Email),
			zap.String("bookingId", cmd.BookingID),
			zap.String("source", model.PaymentEventSourceWebhook))
		return WebhookResult{}, NewServiceError(constants.ErrCodePaymentRecordingFailed, err)
	}

	return WebhookResult{
		Reference: cmd.Reference,
		Status:    string(model.ChargeStatusSuccessful),
		Recorded:  result.Created,
		Duplicate: !result.Created,
	}, nil
}

func isSuccessfulEvent(status string) bool {
	switch status {
	case "successful", "success", "completed":
		return true
	default:
		return false
	}
}

func lookup(body map[string]any, path ...string) (any, bool) {
	var current any = body
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func lookupString(body map[string]any, path ...string) string {
	value, ok := lookup(body, path...)
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return fmt.Sprint(v)
	}
}

func lookupDecimal(body map[string]any, path ...string) decimal.NullDecimal {
	value, ok := lookup(body, path...)
	if !ok {
		return decimal.NullDecimal{}
	}

	switch v := value.(type) {
	case float64:
		return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}
	default:
		return decimal.NullDecimal{}
	}
}
