package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/service"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// AuthHandler exposes login, token refresh and tenant switching
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates a user and returns an access/refresh token pair
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	session, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("username", req.Username), zap.Error(err))
		prometheus.RecordAuthError("login_failed")
		return respondError(c, err)
	}

	log.Info("User logged in",
		zap.String("username", session.User.Username),
		zap.String("tenant_id", session.User.TenantID))

	return c.JSON(http.StatusOK, echo.Map{
		"token":        session.Tokens.AccessToken,
		"refreshToken": session.Tokens.RefreshToken,
		"user": echo.Map{
			"id":          session.User.UserID,
			"username":    session.User.Username,
			"role":        session.User.Role,
			"entity_name": session.User.EntityName,
			"tenant_id":   session.User.TenantID,
			"tenant_ids":  session.User.TenantIDs,
		},
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken is required"})
	}

	session, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("Token refresh failed", zap.Error(err))
		prometheus.RecordAuthError("refresh_failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":        session.Tokens.AccessToken,
		"refreshToken": session.Tokens.RefreshToken,
	})
}

// SwitchTenant issues a token pair for a different active tenant
func (h *AuthHandler) SwitchTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.TenantSwitchCounter.Inc()

	claims := userClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		TenantID string `json:"tenantId"`
	}
	if err := c.Bind(&req); err != nil || req.TenantID == "" {
		return respondError(c, apperr.New(apperr.Invalid, "tenantId is required"))
	}

	session, err := h.auth.SwitchTenant(c.Request().Context(), claims.UserID, req.TenantID, claims.TenantID)
	if err != nil {
		log.Warn("Tenant switch failed",
			zap.String("username", claims.Username),
			zap.String("requested_tenant", req.TenantID),
			zap.Error(err))
		prometheus.RecordAuthError("tenant_switch_failed")
		return respondError(c, err)
	}

	log.Info("Tenant switched",
		zap.String("username", claims.Username),
		zap.String("tenant_id", session.User.TenantID))

	return c.JSON(http.StatusOK, echo.Map{
		"token":        session.Tokens.AccessToken,
		"refreshToken": session.Tokens.RefreshToken,
		"user": echo.Map{
			"id":         session.User.UserID,
			"username":   session.User.Username,
			"role":       session.User.Role,
			"tenant_id":  session.User.TenantID,
			"tenant_ids": session.User.TenantIDs,
		},
	})
}
