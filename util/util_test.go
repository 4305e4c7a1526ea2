package util

import (
	"testing"
)

func TestConvertStringToInt32(t *testing.T) {
	v, err := ConvertStringToInt32("42")
	if err != nil {
		t.Fatalf("Error converting: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if _, err := ConvertStringToInt32("not-a-number"); err == nil {
		t.Errorf("Expected error for invalid input")
	}
}

func TestHasPrefixes(t *testing.T) {
	if !HasPrefixes("/api/v1/signin", "/api/v1") {
		t.Errorf("Expected prefix match")
	}
	if HasPrefixes("/covers/1", "/api/v1") {
		t.Errorf("Unexpected prefix match")
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("reader@example.com") {
		t.Errorf("Expected valid email")
	}
	if ValidateEmail("not-an-email") {
		t.Errorf("Expected invalid email")
	}
}

func TestRandomString(t *testing.T) {
	s, err := RandomString(16)
	if err != nil {
		t.Fatalf("Error generating random string: %v", err)
	}
	if len(s) != 16 {
		t.Errorf("Expected length 16, got %d", len(s))
	}
	other, _ := RandomString(16)
	if s == other {
		t.Errorf("Two random strings should differ")
	}
}
