package helpers

import (
	"net/url"
	"strings"
)

// GetQueryParam returns the first value for the given query string key,
// whitespace trimmed. An absent key returns the empty string.
func GetQueryParam(query url.Values, key string) string {
	return strings.TrimSpace(query.Get(key))
}

// GetQueryFlag interprets the given key as a boolean flag, i.e.
// ?refresh=true
func GetQueryFlag(query url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(query.Get(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// IsNumeric reports whether s is one or more ASCII digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
