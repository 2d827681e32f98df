package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareAttachesRequestLoggerToContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := log
	log = zap.New(core)
	defer func() { log = prev }()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromCtx, fromEcho *zap.Logger
	handler := Middleware()(func(c echo.Context) error {
		fromCtx = FromContext(c.Request().Context())
		fromEcho = FromEcho(c)
		fromCtx.Info("opening tenant connection")
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	if fromCtx != fromEcho {
		t.Error("request context and echo context carry different loggers")
	}

	entries := logs.FilterMessage("opening tenant connection").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", fields["request_id"])
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	got := FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext returned nil")
	}
}

func TestWithContextRoundTrip(t *testing.T) {
	base := zap.NewNop()
	ctx := WithContext(context.Background(), base)
	if FromContext(ctx) != base {
		t.Error("FromContext did not return the attached logger")
	}
}
