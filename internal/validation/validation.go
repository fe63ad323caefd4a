// Package validation checks write payloads before they reach the store.
// Payloads arrive as decoded JSON objects so that a missing field, a
// non-string field, and a whitespace-only field can each be told apart.
// Checks never short-circuit: every violation is reported together.
package validation

import (
	"fmt"
	"strings"
)

// ValidateCreate requires text and user to both be present, be strings,
// and be non-empty after trimming. One message per offending field.
func ValidateCreate(payload map[string]interface{}) []string {
	var errs []string
	for _, field := range []string{"text", "user"} {
		if _, ok := StringField(payload, field); !ok {
			errs = append(errs, fmt.Sprintf("%s is required and must be a non-empty string", field))
		}
	}
	return errs
}

// ValidateUpdate allows either field to be absent, but a present field must
// be a non-empty string. An update carrying neither field is valid and
// changes nothing.
func ValidateUpdate(payload map[string]interface{}) []string {
	var errs []string
	for _, field := range []string{"text", "user"} {
		if _, present := payload[field]; !present {
			continue
		}
		if _, ok := StringField(payload, field); !ok {
			errs = append(errs, fmt.Sprintf("%s must be a non-empty string", field))
		}
	}
	return errs
}

// StringField extracts a trimmed string value from the payload. ok is false
// when the field is absent, not a string, or empty after trimming.
func StringField(payload map[string]interface{}, key string) (string, bool) {
	raw, present := payload[key]
	if !present {
		return "", false
	}
	s, isString := raw.(string)
	if !isString {
		return "", false
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
