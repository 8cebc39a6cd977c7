package service

import (
	"fmt"
	"strings"

	"github.com/a1tips/paymentgateway/internal/model"
	"github.com/shopspring/decimal"
)

// DepositCommand is implemented only by MoMoDepositCommand and HostedDepositCommand.
type DepositCommand interface {
	provider() model.Provider
	validate() error
}

type MoMoDepositCommand struct {
	Amount      decimal.Decimal
	Currency    string
	PhoneNumber string
	GameType    string
	Email       string
	FirstName   string
	LastName    string
}

func (MoMoDepositCommand) provider() model.Provider { return model.ProviderMoMo }

func (c MoMoDepositCommand) validate() error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrMissingField)
	}

	return requireFields(
		field{"phoneNumber", c.PhoneNumber},
		field{"gameType", c.GameType},
		field{"email", c.Email},
	)
}

type HostedDepositCommand struct {
	Amount      decimal.Decimal
	Currency    string
	CountryCode string
	Email       string
	FirstName   string
	LastName    string
	GameType    string
}

func (HostedDepositCommand) provider() model.Provider { return model.ProviderHostedCheckout }

func (c HostedDepositCommand) validate() error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrMissingField)
	}

	return requireFields(
		field{"email", c.Email},
		field{"countryCode", c.CountryCode},
		field{"gameType", c.GameType},
	)
}

type RecordPaymentCommand struct {
	Reference string
	Email     string
	BookingID string
	Provider  model.Provider
	Source    string
	Amount    decimal.NullDecimal
	Currency  string
	Payer     string
}

type PaymentRecordedMessage struct {
	EventID     int64               `json:"eventId"`
	ReferenceID string              `json:"referenceId"`
	Email       string              `json:"email"`
	BookingID   string              `json:"bookingId"`
	Provider    string              `json:"provider"`
	Amount      decimal.NullDecimal `json:"amount"`
	Currency    string              `json:"currency,omitempty"`
	RecordedAt  string              `json:"recordedAt"`
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrMissingField, f.name)
		}
	}

	return nil
}
