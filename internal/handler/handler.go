// Package handler contains the HTTP boundary. Handlers stay thin: parse the
// request, read the active tenant from the context and delegate to a service.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/jwtutil"
)

// respondError translates a service error into the API's error envelope
func respondError(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), echo.Map{
		"status":  "error",
		"message": apperr.Message(err),
	})
}

// tenantID reads the active tenant set by the RequireTenantContext middleware
func tenantID(c echo.Context) string {
	id, _ := c.Get("tenant_id").(string)
	return id
}

// userClaims reads the verified token claims set by the auth middleware
func userClaims(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get("user").(*jwtutil.UserClaims)
	return claims
}

// paramID parses the :id path parameter
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.Invalid, "invalid id")
	}
	return uint(id), nil
}

// queryInt parses an integer query parameter with a default
func queryInt(c echo.Context, name string, def int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}

// queryUint parses an id query parameter; negative values mean filter unset
func queryUint(c echo.Context, name string) uint {
	v := queryInt(c, name, 0)
	if v < 0 {
		return 0
	}
	return uint(v)
}
