package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/a1tips/paymentgateway/internal/constants"
	"github.com/a1tips/paymentgateway/internal/metrics"
	"github.com/a1tips/paymentgateway/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	sep = " and "
)

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
	ValidateRequest(data interface{}) error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validate *validator.Validate, metrics *metrics.Metrics) IXValidator {
	for key, function := range valid {
		_ = validate.RegisterValidation(key, function)
	}

	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	validate.RegisterTagNameFunc(jsonName)

	return &XValidator{
		validator: validate,
		metrics:   metrics,
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	err := x.validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Error{{FailedField: "request", Tag: "struct"}}
	}

	for _, fieldErr := range errs {
		validationErrors = append(validationErrors, Error{
			FailedField: fieldErr.Field(),
			Tag:         fieldErr.Tag(),
			Value:       fieldErr.Value(),
		})
	}

	return validationErrors
}

// ValidateRequest returns a VALIDATION_FAILURE service error naming every
// failed field, or nil.
func (x XValidator) ValidateRequest(data interface{}) error {
	errs := x.Validate(data)
	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", err.FailedField, err.Tag))

		if x.metrics != nil {
			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
	}

	return service.NewServiceError(constants.ErrCodeValidationFailure,
		fmt.Errorf("%w: %s", service.ErrMissingField, strings.Join(msgs, sep)))
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}

	return nil
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}
