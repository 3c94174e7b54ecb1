package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Phone numbers are stored as digits only and must have 9 to 15 of them.
const (
	PhoneMinDigits = 9
	PhoneMaxDigits = 15
)

// NormalizePhone strips every non-digit character: "081-234-5678" -> "0812345678".
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// IsValidPhone reports whether phone has an acceptable digit count after normalization.
func IsValidPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= PhoneMinDigits && n <= PhoneMaxDigits
}

// ValidatePhone is the "phone" tag. An empty value clears the number; anything
// else passes when it keeps 9 to 15 digits once NormalizePhone has stripped it,
// so "Tel 081-234-5678" is accepted and stored as "0812345678".
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return phone == "" || IsValidPhone(phone)
}
