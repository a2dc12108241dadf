package sendflow

import (
	"regexp"
	"strings"
)

// Validation helpers for the step forms. All pure, all synchronous.
// Each step validates its own inputs BEFORE writing into the wizard,
// the wizard itself never validates.

var (
	localPhoneRe = regexp.MustCompile(`^0\d{9}$`)      // e.g. 0244000000
	intlPhoneRe  = regexp.MustCompile(`^\+233\d{9}$`)  // e.g. +233244000000
	postalCodeRe = regexp.MustCompile(`^[A-Z]{2}-\d{3,4}-\d{4}$|^\d{4,5}$`)
)

// ValidatePhoneNumber accepts Ghana numbers in local (0XXXXXXXXX) or
// international (+233XXXXXXXXX) form. Spaces are ignored.
func ValidatePhoneNumber(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	return localPhoneRe.MatchString(cleaned) || intlPhoneRe.MatchString(cleaned)
}

// ValidateName requires at least 2 non-space characters.
func ValidateName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// ValidateAddress requires at least 3 non-space characters.
func ValidateAddress(address string) bool {
	return len(strings.TrimSpace(address)) >= 3
}

// ValidateRequired rejects blank values.
func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidatePostalCode accepts GhanaPostGPS style codes (GA-123-4567)
// or plain 4-5 digit codes.
func ValidatePostalCode(code string) bool {
	return postalCodeRe.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}
