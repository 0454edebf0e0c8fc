// Package context carries request-scoped values between the delivery layer
// and the use cases: the request ID, the visitor's workspace ID and a logger
// already tagged with both.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID   ContextKey = "request_id"
	KeyWorkspaceID ContextKey = "workspace_id"
	KeyLogger      ContextKey = "logger"

	// KeyWorkspace is the echo key of the visitor's workspace.
	KeyWorkspace ContextKey = "workspace"

	// HeaderXRequestID is forwarded to the rental API.
	HeaderXRequestID = "X-Request-Id"
)

// RequestID returns the request ID stored on the echo context, or "".
func RequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetRequestID stores the request ID on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// RequestIDFrom returns the request ID of ctx, or "" outside a request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// WorkspaceIDFrom returns the workspace a call runs for, or "".
func WorkspaceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyWorkspaceID).(string)

	return id
}

// WithWorkspace tags ctx and its logger with a workspace ID.
func WithWorkspace(ctx context.Context, workspaceID string, fallback *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, KeyWorkspaceID, workspaceID)

	return WithLogger(ctx, Logger(ctx, fallback).With(slog.String("workspace_id", workspaceID)))
}

// Logger returns the request-scoped logger of ctx, or fallback.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
