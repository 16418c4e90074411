package api

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request against its validate tags.
func Validate(req any) error {
	return validate.Struct(req)
}
