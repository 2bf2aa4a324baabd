package validators

import (
	"math"
	"strconv"
	"strings"

	"storefront/pkg/apperror"
)

// ParseQueryInt parses an optional integer query value. Empty input yields
// defaultVal; anything non-numeric or below min is INVALID_FORMAT.
func ParseQueryInt(raw, key string, defaultVal, min int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Newf(apperror.CodeInvalidFormat, "query parameter %s must be an integer", key).
			WithDetail("field", key)
	}
	if value < min {
		return 0, apperror.Newf(apperror.CodeInvalidFormat, "query parameter %s must be at least %d", key, min).
			WithDetail("field", key)
	}
	return value, nil
}

// ParseQueryFloat parses an optional numeric query value; empty input yields nil.
func ParseQueryFloat(raw, key string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, apperror.Newf(apperror.CodeInvalidFormat, "query parameter %s must be a number", key).
			WithDetail("field", key)
	}
	return &value, nil
}
