package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"genesis-lending/internal/domain/access"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerAndID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestID(), RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		SetActor(c, access.Actor{UserID: "u1"})
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(c echo.Context) error { return echo.ErrNotFound })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	rid := rec.Header().Get(echo.HeaderXRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", rid, err)
	}

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("want 2 log lines, got %d", len(entries))
	}
	first := entries[0].ContextMap()
	if entries[0].Level != zapcore.InfoLevel || first["status"] != int64(200) || first["request_id"] != rid || first["user_id"] != "u1" {
		t.Fatalf("unexpected first entry: %v %v", entries[0].Level, first)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].ContextMap()["status"] != int64(404) {
		t.Fatalf("unexpected second entry: %v %v", entries[1].Level, entries[1].ContextMap())
	}
}
