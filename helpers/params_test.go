package helpers

import (
	"net/url"
	"testing"
)

func TestGetQueryParam(t *testing.T) {
	query := url.Values{}
	query.Set("hcp_name", "  SMITH JOHN ")

	if got := GetQueryParam(query, "hcp_name"); got != "SMITH JOHN" {
		t.Errorf("GetQueryParam = %q, expected %q", got, "SMITH JOHN")
	}
	if got := GetQueryParam(query, "missing"); got != "" {
		t.Errorf("GetQueryParam for absent key = %q, expected empty", got)
	}
}

func TestGetQueryFlag(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		"1":     true,
		"yes":   true,
		"false": false,
		"0":     false,
		"":      false,
		"maybe": false,
	}

	for value, expected := range tests {
		query := url.Values{}
		query.Set("refresh", value)
		if got := GetQueryFlag(query, "refresh"); got != expected {
			t.Errorf("GetQueryFlag(%q) = %v, expected %v", value, got, expected)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	tests := map[string]bool{
		"2024":  true,
		"0":     true,
		"":      false,
		"20x4":  false,
		"-2024": false,
		"20.4":  false,
	}

	for value, expected := range tests {
		if got := IsNumeric(value); got != expected {
			t.Errorf("IsNumeric(%q) = %v, expected %v", value, got, expected)
		}
	}
}
