package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// Let numeric rules (gt, gte, lte) apply to decimal fields.
	validator.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	return validator
}

func decimalAsFloat(field reflect.Value) any {
	if value, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := value.Float64()
		return f
	}

	return nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	default:
		return "is invalid"
	}
}
