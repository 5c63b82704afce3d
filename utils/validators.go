package utils

import (
	"strings"

	"notesapi/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validate is shared by the usecase layer; *validator.Validate is safe for
// concurrent use once rules are registered.
var Validate = NewValidator()

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return v
}

func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", ValidateNotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("priority", ValidatePriorityRule)
}

// InitValidator makes the custom rules available to gin binding tags.
func InitValidator() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterCustomValidators(v)
	}
	return nil
}

func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func ValidatePriorityRule(fl validator.FieldLevel) bool {
	return IsValidPriority(fl.Field().String())
}

func IsValidPriority(p string) bool {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}
