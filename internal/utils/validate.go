package utils

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	deviceIDPattern = regexp.MustCompile(`^[\w.-]+$`)
)

// GetValidator returns the shared validator with the "deviceid" tag registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("deviceid", func(fl validator.FieldLevel) bool {
			return deviceIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidDeviceID reports whether id is a full match of [\w.-]+.
func ValidDeviceID(id string) bool {
	return GetValidator().Var(id, "required,deviceid") == nil
}
