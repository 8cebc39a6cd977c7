package model

import "github.com/shopspring/decimal"

type ChargeStatus string

const (
	ChargeStatusPending    ChargeStatus = "PENDING"
	ChargeStatusSuccessful ChargeStatus = "SUCCESSFUL"
	ChargeStatusFailed     ChargeStatus = "FAILED"
	ChargeStatusCanceled   ChargeStatus = "CANCELED"
)

// IsTerminal reports whether no further transition can leave the status.
func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeStatusSuccessful || s == ChargeStatusFailed || s == ChargeStatusCanceled
}

type Provider string

const (
	ProviderMoMo           Provider = "momo"
	ProviderHostedCheckout Provider = "hosted_checkout"
)

// Charge is rebuilt from the provider on every status call; it is never stored.
type Charge struct {
	ReferenceID string
	Amount      decimal.Decimal
	Currency    string
	Payer       string
	Email       string
	BookingID   string
	Status      ChargeStatus
}
