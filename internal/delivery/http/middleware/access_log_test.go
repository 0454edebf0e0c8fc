package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"scooter/config"
	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessLogEcho(t *testing.T, buf *bytes.Buffer, debug bool) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.Debug = debug
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	accessLog := NewAccessLog(logger, cfg)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(discardLogger()).HandleHTTPError
	e.Use(accessLog.RequestID, accessLog.Log)

	return e
}

func TestAccessLog_RequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newAccessLogEcho(t, &buf, false)

	var seen string
	e.GET("/bikes", func(c echo.Context) error {
		seen = deliverycontext.RequestIDFrom(c.Request().Context())

		return ok(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/bikes", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-7", seen)
	assert.Equal(t, "req-7", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
	assert.Contains(t, buf.String(), `"route":"/bikes"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bikes", nil))
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestAccessLog_Levels(t *testing.T) {
	var buf bytes.Buffer
	e := newAccessLogEcho(t, &buf, true)
	e.Use(withSession(t, entity.GuestSession()))

	e.GET("/dashboard", ok)
	e.GET("/bikes/:bikeId/feedback", func(echo.Context) error {
		return errors.WithStack(domainerrors.ErrBikeNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"role":"guest"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bikes/B-9/feedback", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":404`)
}

func TestAccessLog_SkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	e := newAccessLogEcho(t, &buf, true)
	e.GET("/health", ok)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String())
}
