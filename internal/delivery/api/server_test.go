package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"toolbox/config"
	"toolbox/internal/delivery/api/response"
	deliverycontext "toolbox/internal/delivery/context"
	domainerrors "toolbox/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	return newEcho(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestNewEcho_ErrorsCarryRequestID(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/missing", func(c echo.Context) error {
		return domainerrors.ErrServiceNotFound
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SERVICE_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "req-42", body.Meta.RequestID)
}

func TestNewEcho_RecoversPanics(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNewEcho_BodyLimit(t *testing.T) {
	e := newTestEcho(t)
	e.POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 4096)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNewEcho_CORSExposesCatalogHeaders(t *testing.T) {
	e := newTestEcho(t)
	e.GET("/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	exposed := rec.Header().Get(echo.HeaderAccessControlExposeHeaders)
	assert.Contains(t, exposed, deliverycontext.HeaderXRequestID)
	assert.Contains(t, exposed, echo.HeaderRetryAfter)
}
