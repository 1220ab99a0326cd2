package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-32-bytes-long-123456")

func TestGenerateAndValidateJWT(t *testing.T) {
	raw, err := GenerateJWT(JWTParams{UserID: "42", Role: "user"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := ValidateJWT(raw, DefaultKID, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, role, err := Subject(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user id 42, got %d", userID)
	}
	if role != "user" {
		t.Errorf("expected role %q, got %q", "user", role)
	}
}

func TestValidateJWT(t *testing.T) {
	valid, err := GenerateJWT(JWTParams{UserID: "1", Role: "admin"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": "user",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	expired.Header["kid"] = DefaultKID
	expiredRaw, err := expired.SignedString(testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		raw         string
		version     string
		secret      []byte
		wantError   bool
		wantExpired bool
	}{
		{name: "valid", raw: valid, version: DefaultKID, secret: testSecret},
		{name: "wrong kid", raw: valid, version: "2", secret: testSecret, wantError: true},
		{name: "wrong secret", raw: valid, version: DefaultKID, secret: []byte("another-secret-another-secret-12"), wantError: true},
		{name: "garbage", raw: "not.a.token", version: DefaultKID, secret: testSecret, wantError: true},
		{name: "expired", raw: expiredRaw, version: DefaultKID, secret: testSecret, wantError: true, wantExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.raw, tt.version, tt.secret)
			if tt.wantError && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantExpired && !errors.Is(err, jwt.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})
	}
}

func TestSubject_InvalidClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "abc", "role": "user"})
	if _, _, err := Subject(token); !errors.Is(err, ErrInvalidClaims) {
		t.Errorf("expected ErrInvalidClaims, got %v", err)
	}

	token = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	if _, _, err := Subject(token); !errors.Is(err, ErrInvalidClaims) {
		t.Errorf("expected ErrInvalidClaims, got %v", err)
	}
}
