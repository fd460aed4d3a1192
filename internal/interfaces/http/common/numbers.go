package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}

// ParseLimit parses a result limit, falling back on bad input and clamping at max.
// A non-positive max disables clamping.
func ParseLimit(value string, fallback, max int) int {
	limit, _ := ParsePositiveInt(value, fallback)
	if max > 0 && limit > max {
		return max
	}
	return limit
}
