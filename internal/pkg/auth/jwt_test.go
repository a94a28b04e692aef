package auth

import (
	"testing"
	"time"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "pronto-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-for-unit-tests",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(7, "kitchen@pronto.local", "kitchen")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "kitchen@pronto.local" {
		t.Errorf("Email = %s, want kitchen@pronto.local", claims.Email)
	}
	if claims.Role != "kitchen" {
		t.Errorf("Role = %s, want kitchen", claims.Role)
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken(7, "kitchen@pronto.local")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("refresh token should not validate as access token")
	}
	if _, err := m.ValidateRefreshToken(token); err != nil {
		t.Errorf("refresh token should validate as refresh token: %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(7, "kitchen@pronto.local", "kitchen")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.ValidateAccessToken(tampered); err == nil {
		t.Error("tampered token should be rejected")
	}

	other := NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "pronto-test"},
		JWT: config.JWTConfig{
			Secret:            "a-different-secret",
			AccessTokenExpiry: time.Hour,
		},
	})
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer ", ""},
		{"abc123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractTokenFromHeader(tt.header); got != tt.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
