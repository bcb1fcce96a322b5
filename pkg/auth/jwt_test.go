package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("my-secret-key", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user-1", "Ana", "3001234567")
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Phone != "3001234567" {
		t.Errorf("Phone = %q, want 3001234567", claims.Phone)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
}

func TestJWTManager_TamperedSignature(t *testing.T) {
	m := NewJWTManager("my-secret-key", time.Hour, time.Hour)
	token, _ := m.GenerateToken("user-1", "Ana", "300")

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"

	if _, err := m.ValidateToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour, time.Hour)

	token, _ := issuer.GenerateToken("user-1", "Ana", "300")
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("my-secret-key", time.Hour, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.GenerateToken("user-1", "Ana", "300")
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_TokenTypes(t *testing.T) {
	m := NewJWTManager("my-secret-key", time.Hour, time.Hour)

	access, _ := m.GenerateToken("user-1", "Ana", "300")
	refresh, _ := m.GenerateRefreshToken("user-1")

	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := m.ValidateRefreshToken(refresh); err != nil {
		t.Errorf("ValidateRefreshToken() failed: %v", err)
	}
}

func TestJWTManager_InvalidFormat(t *testing.T) {
	m := NewJWTManager("my-secret-key", time.Hour, time.Hour)
	if _, err := m.ValidateToken("invalid.token"); err == nil {
		t.Error("ValidateToken() accepted invalid format")
	}
}
