package handlers

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("strongpassword", strongPassword)
}

// strongPassword requires at least 8 characters containing an uppercase
// letter, a lowercase letter, a digit and a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	pass := fl.Field().String()
	if len(pass) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pass {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// validationMessage maps the first failing field to its user-facing message.
func validationMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
	}
	return "Invalid request data."
}
