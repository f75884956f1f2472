package utils

import (
	"fmt"
	"strings"
)

// NormalizeCode trims and upper-cases an IATA airport or airline code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsAirportCode reports whether code is a three letter uppercase IATA
// airport code
func IsAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsAirlineCode reports whether code is a two or three character uppercase
// airline designator (letters or digits, at least one letter)
func IsAirlineCode(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	hasLetter := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return hasLetter
}

// FormatMinutes renders a minute count as "5h30m"
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
