package workflow

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNotNumber   = errors.New("not a number")
	ErrNotPositive = errors.New("must be greater than zero")
	ErrNegative    = errors.New("must not be negative")
)

// IsSkipToken reports whether a typed message means "skip this
// question", in either catalog language.
func IsSkipToken(text string) bool {
	s := strings.ToLower(strings.TrimSpace(text))
	return s == "skip" || s == "تخطي"
}

// ParseAmount parses a money or quantity input. Zero and negative
// values are rejected.
func ParseAmount(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	if v <= 0 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// ParseCost parses an optional cost input. Unlike ParseAmount a zero
// cost is accepted.
func ParseCost(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	if v < 0 {
		return 0, ErrNegative
	}
	return v, nil
}
