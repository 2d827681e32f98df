package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/jwtutil"
)

// AuthService implements login, token refresh and tenant switching
type AuthService struct {
	users *UserService
	jwt   *jwtutil.JWTUtil
}

// NewAuthService creates an AuthService
func NewAuthService(users *UserService, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Session is the result of a successful login, refresh or tenant switch
type Session struct {
	Tokens *jwtutil.TokenPair `json:"tokens"`
	User   *jwtutil.UserClaims
}

// Login validates credentials against every registered tenant (the active
// tenant is not known before login) and issues a token pair with the user's
// first authorized tenant as the active one.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, _, err := s.users.FindByUsernameAcrossTenants(ctx, username)
	if err != nil {
		return nil, apperr.New(apperr.UserNotFound, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.New(apperr.UserNotFound, "invalid credentials")
	}

	if len(user.TenantIDs) == 0 {
		return nil, apperr.New(apperr.NoTenantsAssigned, "user has no tenants assigned")
	}

	return s.issueSession(user, user.TenantIDs[0])
}

// Refresh validates a refresh token and issues a fresh token pair for the same
// active tenant.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.UserNotFound, "invalid refresh token", err)
	}

	user, err := s.users.FindOne(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		return nil, apperr.New(apperr.UserNotFound, "user not found")
	}

	activeTenant := claims.TenantID
	if !user.TenantIDs.Contains(activeTenant) {
		if len(user.TenantIDs) == 0 {
			return nil, apperr.New(apperr.NoTenantsAssigned, "user has no tenants assigned")
		}
		activeTenant = user.TenantIDs[0]
	}

	return s.issueSession(user, activeTenant)
}

// SwitchTenant issues a token pair with a different active tenant. The user is
// looked up under the current tenant first, falling back to the requested one
// (user records live in each tenant's own database and may not exist in both).
func (s *AuthService) SwitchTenant(ctx context.Context, userID uint, requestedTenantID, currentTenantID string) (*Session, error) {
	user, err := s.users.FindOne(ctx, currentTenantID, userID)
	if err != nil {
		user, err = s.users.FindOne(ctx, requestedTenantID, userID)
	}
	if err != nil {
		return nil, apperr.New(apperr.UserNotFound, "user not found")
	}

	if !user.TenantIDs.Contains(requestedTenantID) {
		return nil, apperr.New(apperr.TenantNotAuthorized,
			"user is not authorized for tenant "+requestedTenantID)
	}

	return s.issueSession(user, requestedTenantID)
}

func (s *AuthService) issueSession(user *model.User, activeTenant string) (*Session, error) {
	entityName := ""
	if user.EntityRelation != nil {
		entityName = user.EntityRelation.Name
	}

	claims := jwtutil.UserClaims{
		Username:   user.Username,
		UserID:     user.ID,
		Role:       string(user.Role),
		EntityName: entityName,
		TenantID:   activeTenant,
		TenantIDs:  user.TenantIDs,
	}

	tokens, err := s.jwt.GenerateTokenPair(claims)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "error signing tokens", err)
	}

	return &Session{Tokens: tokens, User: &claims}, nil
}
