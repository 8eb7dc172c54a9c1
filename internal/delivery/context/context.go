// Package context carries per-request values from the HTTP edge into usecases:
// the request id, the authenticated caller and a logger scoped to both.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyCaller
)

// HeaderXRequestID is the HTTP header carrying the request id in both directions.
const HeaderXRequestID = "X-Request-Id"

const echoKeyRequestID = "request_id"

// GetRequestID returns the id assigned by the request-id middleware.
// Outside that middleware it falls back to the request context, then to the response header.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}

	return c.Response().Header().Get(HeaderXRequestID)
}

// SetRequestID records the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the request id, or "" outside an HTTP request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(keyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// WithCaller records the authenticated user. A scoped logger already in ctx gains a user_id attribute.
func WithCaller(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, keyCaller, userID)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID.String())))
	}

	return ctx
}

// CallerFromContext returns the authenticated user recorded by WithCaller.
func CallerFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(keyCaller).(uuid.UUID)

	return userID, ok
}
