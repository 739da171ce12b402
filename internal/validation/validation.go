package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ErrCityEmpty is returned when the city name is empty or whitespace-only
// after trimming. Checked before any network call is made.
var ErrCityEmpty = errors.New("city name is required")

// ErrCityTooShort is returned when the city name length is below the minimum.
var ErrCityTooShort = errors.New("city name too short")

// ErrCityTooLong is returned when the city name length exceeds the maximum.
var ErrCityTooLong = errors.New("city name too long")

// ErrCityInvalidChars is returned when the city name contains disallowed characters.
var ErrCityInvalidChars = errors.New("city name contains invalid characters")

// ValidateCity trims the input, enforces length bounds (minLen, maxLen in
// runes), and restricts to allowed characters: letters (Unicode), digits,
// space, comma, hyphen, apostrophe, period. Returns the trimmed string or an
// error suitable for 400 INVALID_CITY responses. Normalization (e.g.
// lowercase) is left to the service layer.
func ValidateCity(input string, minLen, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	n := len(r)
	if n == 0 {
		return "", ErrCityEmpty
	}
	if minLen > 0 && n < minLen {
		return "", ErrCityTooShort
	}
	if maxLen > 0 && n > maxLen {
		return "", ErrCityTooLong
	}
	for _, c := range r {
		if !isAllowedCityRune(c) {
			return "", ErrCityInvalidChars
		}
	}
	return s, nil
}

// isAllowedCityRune returns true for letters (Unicode), digits, space, comma,
// hyphen, apostrophe, period.
func isAllowedCityRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '\'', '.':
		return true
	}
	return false
}

// IsValidationError reports whether err belongs to the city validation taxonomy.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCityEmpty) ||
		errors.Is(err, ErrCityTooShort) ||
		errors.Is(err, ErrCityTooLong) ||
		errors.Is(err, ErrCityInvalidChars)
}
