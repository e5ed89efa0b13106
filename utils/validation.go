// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	otpPattern   = regexp.MustCompile(`^\d{4,6}$`)
)

// NormalizePhone strips the separators people type into phone fields.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

func ValidateOTP(otp string) bool {
	return otpPattern.MatchString(strings.TrimSpace(otp))
}
