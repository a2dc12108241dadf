package sendflow

import (
	"strings"
	"unicode"
)

// digitsOnly strips everything that is not 0-9.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhoneNumber converts any accepted phone form to the
// international +233 form we persist. Inputs that don't look like a
// Ghana number are returned unchanged, the validator already rejected them.
func NormalizePhoneNumber(phone string) string {
	cleaned := digitsOnly(phone)

	if strings.HasPrefix(cleaned, "233") && len(cleaned) == 12 {
		return "+" + cleaned
	}
	if strings.HasPrefix(cleaned, "0") && len(cleaned) == 10 {
		return "+233" + cleaned[1:]
	}
	return phone
}

// FormatPhoneNumber renders a phone for display, e.g. "024 400 0000".
func FormatPhoneNumber(phone string) string {
	cleaned := digitsOnly(phone)

	// collapse international form back to local for display
	if strings.HasPrefix(cleaned, "233") && len(cleaned) == 12 {
		cleaned = "0" + cleaned[3:]
	}
	if len(cleaned) != 10 {
		return phone
	}
	return cleaned[:3] + " " + cleaned[3:6] + " " + cleaned[6:]
}
