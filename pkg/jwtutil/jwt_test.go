package jwtutil

import (
	"testing"
	"time"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		SigningKey:        "access-secret",
		RefreshSigningKey: "refresh-secret",
		ExpirationHours:   1,
		RefreshExpiration: 24 * time.Hour,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	util := NewJWTUtil(testConfig())

	pair, err := util.GenerateTokenPair(UserClaims{
		Username:  "alice",
		UserID:    7,
		Role:      "admin",
		TenantID:  "empresa1",
		TenantIDs: []string{"empresa1", "empresa2"},
	})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := util.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" || claims.UserID != 7 || claims.TenantID != "empresa1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if len(claims.TenantIDs) != 2 {
		t.Errorf("TenantIDs = %v, want two entries", claims.TenantIDs)
	}

	refreshClaims, err := util.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if refreshClaims.UserID != 7 {
		t.Errorf("refresh UserID = %d, want 7", refreshClaims.UserID)
	}
}

func TestTokenSecretsAreSeparate(t *testing.T) {
	util := NewJWTUtil(testConfig())

	pair, err := util.GenerateTokenPair(UserClaims{Username: "alice", UserID: 7})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := util.ValidateToken(pair.RefreshToken); err == nil {
		t.Error("access validation accepted a refresh token")
	}
	if _, err := util.ValidateRefreshToken(pair.AccessToken); err == nil {
		t.Error("refresh validation accepted an access token")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	util := NewJWTUtil(testConfig())

	pair, err := util.GenerateTokenPair(UserClaims{Username: "alice", UserID: 7})
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTUtil(&config.JWTConfig{
		SigningKey:        "different-secret",
		RefreshSigningKey: "refresh-secret",
		ExpirationHours:   1,
		RefreshExpiration: time.Hour,
	})
	if _, err := other.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token signed with another secret was accepted")
	}

	if _, err := util.ValidateToken(pair.AccessToken + "x"); err == nil {
		t.Error("tampered token was accepted")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{
		SigningKey:        "access-secret",
		RefreshSigningKey: "refresh-secret",
		ExpirationHours:   -1,
		RefreshExpiration: time.Hour,
	})

	pair, err := util.GenerateTokenPair(UserClaims{Username: "alice", UserID: 7})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := util.ValidateToken(pair.AccessToken); err == nil {
		t.Error("expired token was accepted")
	}
}
