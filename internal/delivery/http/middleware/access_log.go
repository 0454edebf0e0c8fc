package middleware

import (
	"log/slog"
	"time"

	"scooter/config"
	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// quietPaths are polled by infrastructure and never logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// AccessLog tags every request with an ID and a request-scoped logger and
// writes one line per finished request.
type AccessLog struct {
	logger *slog.Logger
	debug  bool
}

func NewAccessLog(logger *slog.Logger, cfg *config.Config) *AccessLog {
	return &AccessLog{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// RequestID reuses the caller's X-Request-Id or generates one. The ID is
// echoed in the response and forwarded to the rental API.
func (m *AccessLog) RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(slog.String("request_id", requestID)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Log writes the access line after the handler ran, so the workspace and the
// role it acted for are known. Successful requests are logged at debug level
// unless the service runs in debug mode.
func (m *AccessLog) Log(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if quietPaths[c.Request().URL.Path] {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			// let the error handler pick the status before it is logged
			c.Error(err)
		}

		req := c.Request()
		status := c.Response().Status
		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("route", c.Path()),
			slog.String("uri", req.URL.RequestURI()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.RealIP()),
		}
		if ws, ok := c.Get(string(deliverycontext.KeyWorkspace)).(*usecase.Workspace); ok && ws != nil {
			attrs = append(attrs, slog.String("role", ws.Session.Current().Role.String()))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		level := slog.LevelDebug
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case m.debug:
			level = slog.LevelInfo
		}

		ctx := req.Context()
		deliverycontext.Logger(ctx, m.logger).LogAttrs(ctx, level, "HTTP request", attrs...)

		return nil
	}
}
