package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID_Fallbacks(t *testing.T) {
	e := echo.New()

	t.Run("echo context", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		SetRequestID(c, "req-1")

		assert.Equal(t, "req-1", GetRequestID(c))
	})

	t.Run("request context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithRequestID(req.Context(), "req-2"))
		c := e.NewContext(req, httptest.NewRecorder())

		assert.Equal(t, "req-2", GetRequestID(c))
	})

	t.Run("response header", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Response().Header().Set(HeaderXRequestID, "req-3")

		assert.Equal(t, "req-3", GetRequestID(c))
	})

	t.Run("none", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		assert.Empty(t, GetRequestID(c))
	})
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	scoped := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestWithCaller_ScopesLogger(t *testing.T) {
	var buf bytes.Buffer
	userID := uuid.New()

	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = WithCaller(ctx, userID)

	got, ok := CallerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	GetLogger(ctx).Info("hello")
	assert.Contains(t, buf.String(), "user_id="+userID.String())
}

func TestWithCaller_WithoutLogger(t *testing.T) {
	ctx := WithCaller(context.Background(), uuid.Nil)

	_, ok := CallerFromContext(ctx)
	assert.True(t, ok)
	assert.Nil(t, GetLogger(ctx))

	_, ok = CallerFromContext(context.Background())
	assert.False(t, ok)
}
