package store

import (
	"testing"
	"time"
)

func TestSigninCodeSingleUse(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	code, err := s.CreateSigninCode(user.ID, 5*time.Minute)
	if err != nil {
		t.Fatalf("Failed to create signin code: %v", err)
	}

	userID, err := s.ConsumeSigninCode(code)
	if err != nil {
		t.Fatalf("Failed to consume signin code: %v", err)
	}
	if userID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, userID)
	}

	if _, err := s.ConsumeSigninCode(code); err == nil {
		t.Errorf("Expected a second consume to fail")
	}
}

func TestSigninCodeExpiry(t *testing.T) {
	s := createTestStore(t)
	user := createTestUser(t, s)

	code, err := s.CreateSigninCode(user.ID, -1*time.Minute)
	if err != nil {
		t.Fatalf("Failed to create signin code: %v", err)
	}

	if _, err := s.ConsumeSigninCode(code); err == nil {
		t.Errorf("Expected an expired code to be rejected")
	}
	// Expired codes are deleted on the failed attempt as well.
	if _, err := s.ConsumeSigninCode(code); err == nil {
		t.Errorf("Expected the code to be gone")
	}
}

func TestSigninCodeUnknown(t *testing.T) {
	s := createTestStore(t)

	if _, err := s.ConsumeSigninCode("not-a-code"); err == nil {
		t.Errorf("Expected an unknown code to be rejected")
	}
}
