package middleware

import (
	"log/slog"
	"time"

	"toolbox/config"
	deliverycontext "toolbox/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access-log record per request.
// Successful requests are only logged in debug mode; failures are always logged.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		level := accessLogLevel(c.Response().Status, err)
		if level >= slog.LevelWarn || m.debug {
			m.logRequest(c, level, time.Since(start), err)
		}

		return err
	}
}

func accessLogLevel(status int, err error) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400 || err != nil:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, level slog.Level, latency time.Duration, err error) {
	req := c.Request()
	ctx := req.Context()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", c.Response().Status),
		slog.Int64("bytes_out", c.Response().Size),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if serviceID := c.Param("id"); serviceID != "" {
		fields = append(fields, slog.String("resource_id", serviceID))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	// The scoped logger already carries request_id and user_id once auth has run.
	deliverycontext.GetLoggerOrDefault(ctx, m.logger).LogAttrs(ctx, level, "HTTP Request", fields...)
}
