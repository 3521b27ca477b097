package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Error("hash equals plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword() rejected correct password")
	}

	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() accepted wrong password")
	}
}

func TestGenerateSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateSessionID()
		if id == "" {
			t.Fatal("GenerateSessionID() returned empty string")
		}
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(42, "session-abc", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.SessionID != "session-abc" {
		t.Errorf("SessionID = %s, want session-abc", claims.SessionID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "sid", []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(token, []byte("secret-b")); err == nil {
		t.Error("ParseToken() accepted token signed with different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(1, "sid", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(token, secret); err == nil {
		t.Error("ParseToken() accepted expired token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", []byte("secret")); err == nil {
		t.Error("ParseToken() accepted garbage input")
	}
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("request %d denied, want allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("request over limit allowed, want denied")
	}

	// Different IPs have independent buckets
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP denied, want allowed")
	}
}

func TestIsSecureRequest(t *testing.T) {
	plain := httptest.NewRequest("GET", "http://example.com/", nil)
	if IsSecureRequest(plain) {
		t.Error("plain request reported secure")
	}

	forwarded := httptest.NewRequest("GET", "http://example.com/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecureRequest(forwarded) {
		t.Error("forwarded https request reported insecure")
	}
}
