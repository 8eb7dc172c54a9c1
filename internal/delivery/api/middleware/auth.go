package middleware

import (
	"log/slog"
	"strings"

	"toolbox/internal/delivery/api/response"
	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	"toolbox/internal/domain/service"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	contextKeyUserID = "userID"
	contextKeyRoles  = "roles"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenSvc service.TokenService
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// AuthMiddleware authenticates bearer tokens and resolves the caller's roles from the user store.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenSvc,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// Authenticate validates the JWT access token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Roles in the token may be stale; the user store is authoritative.
		roles, err := m.userRepo.FindRoles(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "UNKNOWN_USER", "Token subject no longer exists")
			}

			return errors.Wrap(err, "failed to resolve caller roles")
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRoles, roles)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithCaller(c.Request().Context(), claims.UserID)))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := GetRoles(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !roles.Contains(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user ID stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}

// GetRoles returns the roles resolved by Authenticate.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	roles, ok := c.Get(contextKeyRoles).(entity.Roles)

	return roles, ok
}

// GetActor assembles the usecase caller from the authenticated context.
func GetActor(c echo.Context) (usecase.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return usecase.Actor{}, false
	}
	roles, _ := GetRoles(c)

	return usecase.Actor{UserID: userID, Roles: roles}, true
}

// SetActor stores a caller on the context; used by tests and trusted internal callers.
func SetActor(c echo.Context, actor usecase.Actor) {
	c.Set(contextKeyUserID, actor.UserID)
	c.Set(contextKeyRoles, actor.Roles)
}
