package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	msisdnRegex   = `^[1-9][0-9]{7,14}$`
	currencyRegex = `^[A-Z]{3}$`
)

const (
	MSISDNTag   = "msisdn"
	CurrencyTag = "currency"
)

var (
	msisdnPattern   = regexp.MustCompile(msisdnRegex)
	currencyPattern = regexp.MustCompile(currencyRegex)
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	MSISDNTag:   ValidateMSISDN,
	CurrencyTag: ValidateCurrency,
}

// ValidateMSISDN accepts country-code-prefixed digits with no leading plus.
func ValidateMSISDN(fl validator.FieldLevel) bool {
	return msisdnPattern.MatchString(fl.Field().String())
}

func ValidateCurrency(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}
