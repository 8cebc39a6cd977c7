package v1

import "github.com/shopspring/decimal"

// MoMoDepositRequest is the create-deposit body when the push provider is active.
type MoMoDepositRequest struct {
	VIPAmount   decimal.Decimal `json:"vipamount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"omitempty,currency"`
	PhoneNumber string          `json:"phoneNumber" validate:"required,msisdn"`
	GameType    string          `json:"gameType" validate:"required,max=255"`
	Email       string          `json:"email" validate:"required,email"`
	FirstName   string          `json:"firstName" validate:"max=100"`
	LastName    string          `json:"lastName" validate:"max=100"`
}

// HostedDepositRequest is the create-deposit body when hosted checkout is active.
type HostedDepositRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"omitempty,currency"`
	CountryCode string          `json:"countryCode" validate:"required,len=2"`
	Email       string          `json:"email" validate:"required,email"`
	FirstName   string          `json:"firstName" validate:"max=100"`
	LastName    string          `json:"lastName" validate:"max=100"`
	GameType    string          `json:"gameType" validate:"required,max=255"`
}
