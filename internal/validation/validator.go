package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("ticker_symbol", validateTickerSymbol)
	_ = v.RegisterValidation("positive_quantity", validatePositiveQuantity)
	_ = v.RegisterValidation("account_name", validateAccountName)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

var tickerSymbolRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,11}$`)

// validateTickerSymbol accepts exchange-style ticker symbols: a letter
// followed by up to 11 letters, digits, dots or dashes (BRK.B, RDS-A)
func validateTickerSymbol(fl validator.FieldLevel) bool {
	symbol := strings.TrimSpace(fl.Field().String())
	if symbol == "" {
		return false
	}
	return tickerSymbolRegex.MatchString(symbol)
}

// validatePositiveQuantity validates that a share count is greater than 0
func validatePositiveQuantity(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	default:
		return false
	}
}

// validateAccountName validates that an account name is non-empty after trimming
func validateAccountName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return name != "" && len(name) <= 100
}
