package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toolbox/config"
	"toolbox/internal/delivery/api/response"
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/repository"
	"toolbox/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(userID uuid.UUID, roles []string) (string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *mockTokenService) GetAccessTokenDuration() time.Duration {
	return time.Minute
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) FindRoles(ctx context.Context, id uuid.UUID) (entity.Roles, error) {
	args := m.Called(ctx, id)
	roles, _ := args.Get(0).(entity.Roles)

	return roles, args.Error(1)
}

func (m *mockUserRepository) UpdateLastServiceCreationDate(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func echoActor(c echo.Context) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.NoContent(http.StatusTeapot)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id": actor.UserID.String(),
		"roles":   actor.Roles.ToStrings(),
	})
}

func serve(handler echo.HandlerFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body.Error.Code
}

func TestAuthenticate_ResolvesRolesFromUserStore(t *testing.T) {
	userID := uuid.New()
	tokens := &mockTokenService{}
	users := &mockUserRepository{}
	tokens.On("ValidateToken", "good").Return(&service.Claims{UserID: userID, Roles: []string{"admin"}}, nil)
	users.On("FindRoles", mock.Anything, userID).Return(entity.Roles{entity.RoleBusinessUser}, nil)

	m := NewAuthMiddleware(AuthMiddlewareParams{TokenSvc: tokens, UserRepo: users, Logger: discardLogger()})
	rec := serve(m.Authenticate(echoActor), "Bearer good")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, []any{"business_user"}, body["roles"])
}

func TestAuthenticate_Rejections(t *testing.T) {
	userID := uuid.New()
	tokens := &mockTokenService{}
	users := &mockUserRepository{}
	tokens.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))
	tokens.On("ValidateToken", "orphan").Return(&service.Claims{UserID: userID}, nil)
	users.On("FindRoles", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	m := NewAuthMiddleware(AuthMiddlewareParams{TokenSvc: tokens, UserRepo: users, Logger: discardLogger()})

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "missing header", header: "", wantCode: "MISSING_TOKEN"},
		{name: "not bearer", header: "Basic abc", wantCode: "INVALID_TOKEN_FORMAT"},
		{name: "invalid token", header: "Bearer expired", wantCode: "INVALID_TOKEN"},
		{name: "unknown subject", header: "Bearer orphan", wantCode: "UNKNOWN_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(m.Authenticate(echoActor), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec))
		})
	}
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(AuthMiddlewareParams{Logger: discardLogger()})
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	withRoles := func(roles entity.Roles) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKeyUserID, uuid.New())
			c.Set(contextKeyRoles, roles)

			return m.RequireRole(entity.RoleAdmin)(ok)(c)
		}
	}

	assert.Equal(t, http.StatusNoContent, serve(withRoles(entity.Roles{entity.RoleAdmin}), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(withRoles(entity.Roles{entity.RoleBusinessUser}), "").Code)
	assert.Equal(t, http.StatusForbidden, serve(m.RequireRole(entity.RoleAdmin)(ok), "").Code)
}

func TestToolRateLimiter_PerUserBuckets(t *testing.T) {
	cfg := &config.Config{Tools: &config.ToolsConfig{InvocationRate: 0.001, InvocationBurst: 2}}
	limiter := NewToolRateLimiter(cfg)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	as := func(userID uuid.UUID) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKeyUserID, userID)

			return limiter.Limit(ok)(c)
		}
	}

	alice, bob := uuid.New(), uuid.New()
	assert.Equal(t, http.StatusNoContent, serve(as(alice), "").Code)
	assert.Equal(t, http.StatusNoContent, serve(as(alice), "").Code)

	rec := serve(as(alice), "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, domainerrors.ErrToolRateLimited.ErrorCode(), decodeError(t, rec))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, serve(as(bob), "").Code)
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	m := NewErrorMiddleware(discardLogger())

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails any
	}{
		{
			name:        "app error with details",
			err:         errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("title is required"), "create service"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: "title is required",
		},
		{
			name:       "forbidden hides details",
			err:        domainerrors.ErrServiceAccessDenied.WithDetails("premium"),
			wantStatus: http.StatusForbidden,
			wantCode:   "SERVICE_ACCESS_DENIED",
		},
		{
			name:       "echo method not allowed",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:       "echo unmapped status",
			err:        echo.NewHTTPError(http.StatusTeapot),
			wantStatus: http.StatusTeapot,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
		})
	}
}
