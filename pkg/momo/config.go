package momo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	BaseURL           string        `mapstructure:"base_url"`
	SubscriptionKey   string        `mapstructure:"subscription_key"`
	APIUser           string        `mapstructure:"api_user"`
	APIKey            string        `mapstructure:"api_key"`
	TargetEnvironment string        `mapstructure:"target_environment"`
	Currency          string        `mapstructure:"currency"`
	AmountDivisor     string        `mapstructure:"amount_divisor"`
	Timeout           time.Duration `mapstructure:"timeout"`
	TokenExpiryMargin time.Duration `mapstructure:"token_expiry_margin"`
}

// Divisor is the explicit conversion applied to caller amounts before they
// are sent to the provider. An empty value means no conversion.
func (c Config) Divisor() (decimal.Decimal, error) {
	if c.AmountDivisor == "" {
		return decimal.NewFromInt(1), nil
	}

	d, err := decimal.NewFromString(c.AmountDivisor)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount_divisor %q: %w", c.AmountDivisor, err)
	}

	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount_divisor must be positive, got %s", d)
	}

	return d, nil
}
