package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/jwtutil"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
)

// JWTAuthMiddleware creates a middleware that validates bearer tokens and
// stores the claims in the request context.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user", claims)
			return next(c)
		}
	}
}

// RequireTenantContext extracts the active tenant from the verified token and
// stores it in the request context. Every tenant-scoped route sits behind this;
// a token without a tenant claim is rejected before any handler runs.
func RequireTenantContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*jwtutil.UserClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if claims.TenantID == "" {
			logger.FromEcho(c).Warn("Token has no tenant claim",
				zap.String("username", claims.Username))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no tenant selected, please log in again"})
		}

		c.Set("tenant_id", claims.TenantID)
		return next(c)
	}
}

// RequireRoles guards a route group to users holding one of the given roles
func RequireRoles(roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*jwtutil.UserClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					return next(c)
				}
			}
			logger.FromEcho(c).Warn("Insufficient role",
				zap.String("username", claims.Username),
				zap.String("role", claims.Role))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
		}
	}
}
