package v1

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seowoojae/shelfd/api/auth"
)

func TestBuildAccessTokenCookie(t *testing.T) {
	expire := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cookie := buildAccessTokenCookie("token-value", expire, "http://localhost:3000")
	if !strings.HasPrefix(cookie, auth.AccessTokenCookieName+"=token-value") {
		t.Errorf("Unexpected cookie prefix: %q", cookie)
	}
	if !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("Expected HttpOnly attribute: %q", cookie)
	}
	if !strings.Contains(cookie, "SameSite=Lax") {
		t.Errorf("Expected SameSite=Lax for plain http origin: %q", cookie)
	}
	if strings.Contains(cookie, "Secure") {
		t.Errorf("Did not expect Secure for plain http origin: %q", cookie)
	}

	secure := buildAccessTokenCookie("token-value", expire, "https://shelfd.example.com")
	if !strings.Contains(secure, "Secure") || !strings.Contains(secure, "SameSite=None") {
		t.Errorf("Expected Secure and SameSite=None for https origin: %q", secure)
	}

	expired := buildAccessTokenCookie("", time.Time{}, "")
	if !strings.Contains(expired, "Expires=Thu, 01 Jan 1970 00:00:00 GMT") {
		t.Errorf("Expected epoch expiry for the sign-out cookie: %q", expired)
	}
}

func TestGetAccessToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/me", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	if got := getAccessToken(r); got != "header-token" {
		t.Errorf("Expected header token, got %q", got)
	}
}

func TestGetAccessTokenFromCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/me", nil)
	r.Header.Set("Cookie", auth.AccessTokenCookieName+"=cookie-token")
	if got := getAccessToken(r); got != "cookie-token" {
		t.Errorf("Expected cookie token, got %q", got)
	}

	r = httptest.NewRequest("GET", "/api/v1/me", nil)
	if got := getAccessToken(r); got != "" {
		t.Errorf("Expected empty token, got %q", got)
	}
}

func TestAuthenticationAllowlist(t *testing.T) {
	for _, path := range []string{"/api/v1/signup", "/api/v1/signin", "/api/v1/auth/callback"} {
		if !isUnauthorizeAllowed(path) {
			t.Errorf("Expected %s to be allowlisted", path)
		}
	}
	if isUnauthorizeAllowed("/api/v1/books") {
		t.Errorf("Did not expect /api/v1/books to be allowlisted")
	}
}
