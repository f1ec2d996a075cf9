package handlers

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// isStrongPassword enforces the password policy: length >= 6 with at least
// one lowercase letter, one uppercase letter and one digit.
func isStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 6 {
		return false
	}
	return strings.ContainsFunc(password, unicode.IsLower) &&
		strings.ContainsFunc(password, unicode.IsUpper) &&
		strings.ContainsFunc(password, unicode.IsDigit)
}

// registerCustomValidators wires domain validation tags into gin's binding
// validator. Called once during route registration.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("strongpassword", isStrongPassword)
	}
}
