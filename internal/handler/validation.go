package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts local and international formats with optional
// separators, 8 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 .-]{6,17}[0-9]$`)

// RegisterValidators installs the custom binding validators. Call once at
// startup, before the first request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}
