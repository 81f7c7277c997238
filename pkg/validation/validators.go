package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
	_ = v.RegisterValidation("maxbytes", MaxBytes)
}

// NotBlank rejects strings made only of whitespace. Unlike "required" it
// lets the caller decide separately whether the field must be present.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// MaxBytes caps the encoded length of a string ("max" counts runes).
// bcrypt refuses passwords longer than 72 bytes.
func MaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
