package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reLeadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)
	reEmail      = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone      = regexp.MustCompile(`^\+?[0-9 ().-]{6,20}$`)
)

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Int reads the leading integer of s ("12kg" -> 12). Input without a leading
// integer is rejected.
func Int(s string) (int, bool) {
	m := reLeadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ID validates a positive numeric identifier.
func ID(s string) (int, bool) {
	n, ok := Int(s)
	return n, ok && n > 0
}

// Quantity validates an ordered quantity (at least one unit).
func Quantity(s string) (int, bool) {
	n, ok := Int(s)
	return n, ok && n >= 1
}

// Stock validates a stock level; zero is allowed.
func Stock(s string) (int, bool) {
	n, ok := Int(s)
	return n, ok && n >= 0
}

// Email accepts an empty value; settings fields are optional.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone accepts an empty value or a loosely formatted number ("+221 77 123 45 67").
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}
