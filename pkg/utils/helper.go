package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to a positive int, falling back to defaultValue
// when the value is empty, malformed or below 1.
func ParseInt(value string, defaultValue int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParsePage reads the "page" query value. Anything unusable means page 1.
func ParsePage(value string) int {
	return ParseInt(value, 1)
}
