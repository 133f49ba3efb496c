package handlers

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var taxCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,12}$`)

// RegisterValidators adds the custom binding rules used by the request DTOs:
//
//	decimalgte0  a decimal.Decimal that is zero or positive
//	taxcode      a tax classification code such as "S", "RC" or "ND-CAR"
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}

	// decimal.Decimal is checked as a value; a custom type func returning the same
	// type would recurse in the validator.
	if err := v.RegisterValidation("decimalgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsNegative()
	}); err != nil {
		return fmt.Errorf("failed to register decimalgte0: %w", err)
	}

	if err := v.RegisterValidation("taxcode", func(fl validator.FieldLevel) bool {
		return taxCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register taxcode: %w", err)
	}
	return nil
}
