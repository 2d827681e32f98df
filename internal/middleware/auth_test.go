package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/jwtutil"
)

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{
		SigningKey:        "test-signing-key",
		RefreshSigningKey: "test-refresh-key",
		ExpirationHours:   1,
		RefreshExpiration: time.Hour,
	})
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func runRequest(t *testing.T, handler echo.HandlerFunc, authorize func(*http.Request)) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorize != nil {
		authorize(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	handler := JWTAuthMiddleware(testJWT())(okHandler)

	rec, _ := runRequest(t, handler, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewareMalformedHeader(t *testing.T) {
	handler := JWTAuthMiddleware(testJWT())(okHandler)

	rec, _ := runRequest(t, handler, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	handler := JWTAuthMiddleware(testJWT())(okHandler)

	rec, _ := runRequest(t, handler, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewareStoresClaims(t *testing.T) {
	util := testJWT()
	pair, err := util.GenerateTokenPair(jwtutil.UserClaims{
		Username: "alice",
		UserID:   7,
		TenantID: "empresa1",
	})
	if err != nil {
		t.Fatal(err)
	}

	handler := JWTAuthMiddleware(util)(okHandler)
	rec, c := runRequest(t, handler, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		t.Fatal("no claims stored in context")
	}
	if claims.Username != "alice" || claims.TenantID != "empresa1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRequireTenantContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &jwtutil.UserClaims{Username: "alice", TenantID: "empresa1"})

	if err := RequireTenantContext(okHandler)(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := c.Get("tenant_id"); got != "empresa1" {
		t.Errorf("tenant_id = %v, want empresa1", got)
	}
}

func TestRequireTenantContextMissingClaim(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &jwtutil.UserClaims{Username: "alice"})

	if err := RequireTenantContext(okHandler)(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireTenantContextUnauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequireTenantContext(okHandler)(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	handler := RequireRoles(model.RoleAdmin, model.RoleManager)(okHandler)

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusOK},
		{"user", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user", &jwtutil.UserClaims{Username: "alice", Role: tc.role})

		if err := handler(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != tc.want {
			t.Errorf("role %q: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
