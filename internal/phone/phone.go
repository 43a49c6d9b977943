// Package phone normalizes phone numbers to E.164, the only form persisted or
// compared anywhere in the service.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// Normalize converts raw input to E.164.
//
// Ten digits get the US country code, eleven digits starting with 1 are taken
// as-is, and input already starting with "+" passes through once formatting
// characters are removed. Everything else is rejected.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	digits := Digits(trimmed)

	if strings.HasPrefix(trimmed, "+") {
		candidate := "+" + digits
		if e164Pattern.MatchString(candidate) {
			return candidate, nil
		}
		return "", ErrInvalidPhone
	}

	switch {
	case len(digits) == 10:
		return "+1" + digits, nil
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, nil
	}

	return "", ErrInvalidPhone
}

// IsValidE164 reports whether s is already in E.164 form.
func IsValidE164(s string) bool {
	return e164Pattern.MatchString(s)
}

// Equal reports whether a and b are the same number. Unparseable input is
// never equal to anything.
func Equal(a, b string) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return na == nb
}

// SearchDigits returns the digits of s when s reads as a partial phone number
// (digits plus "+", "-", ".", "(", ")" and spaces), and "" otherwise.
func SearchDigits(s string) string {
	for _, r := range s {
		if (r < '0' || r > '9') && !strings.ContainsRune("+-.() ", r) {
			return ""
		}
	}
	return Digits(s)
}

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
