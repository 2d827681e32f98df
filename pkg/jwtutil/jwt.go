package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
)

// UserClaims represents the JWT claims for an authenticated session. The active
// tenant travels in tenant_id; tenant_ids carries every tenant the user may
// switch to.
type UserClaims struct {
	Username   string   `json:"username"`
	UserID     uint     `json:"user_id"`
	Role       string   `json:"role,omitempty"`
	EntityName string   `json:"entity_name,omitempty"`
	TenantID   string   `json:"tenant_id,omitempty"`
	TenantIDs  []string `json:"tenant_ids,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair bundles an access token with its refresh token
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *config.JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{config: cfg}
}

// GenerateTokenPair signs an access token and a refresh token for the same
// claims. The refresh token uses a separate signing secret and a longer TTL.
func (j *JWTUtil) GenerateTokenPair(claims UserClaims) (*TokenPair, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	now := time.Now()

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.config.SigningKey))
	if err != nil {
		return nil, err
	}

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(j.config.RefreshExpiration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.config.RefreshSigningKey))
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateToken validates and parses an access token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}
	return j.parse(tokenString, j.config.SigningKey)
}

// ValidateRefreshToken validates and parses a refresh token
func (j *JWTUtil) ValidateRefreshToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}
	return j.parse(tokenString, j.config.RefreshSigningKey)
}

func (j *JWTUtil) parse(tokenString, signingKey string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(signingKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
