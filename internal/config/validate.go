package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/dycw/skritter/internal/keys"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// keyname accepts anything keys.Parse understands.
	_ = v.RegisterValidation("keyname", func(fl validator.FieldLevel) bool {
		_, err := keys.Parse(fl.Field().String())
		return err == nil
	})
	return v
}
