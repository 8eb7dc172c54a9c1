package middleware

import (
	"sync"

	"toolbox/config"
	"toolbox/internal/delivery/api/response"
	domainerrors "toolbox/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultInvocationRate  = 2.0
	defaultInvocationBurst = 5
)

// ToolRateLimiter throttles tool invocations with one token bucket per user.
type ToolRateLimiter struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewToolRateLimiter creates the limiter from the tools configuration.
func NewToolRateLimiter(cfg *config.Config) *ToolRateLimiter {
	perSecond, burst := defaultInvocationRate, defaultInvocationBurst
	if cfg != nil && cfg.Tools != nil {
		if cfg.Tools.InvocationRate > 0 {
			perSecond = cfg.Tools.InvocationRate
		}
		if cfg.Tools.InvocationBurst > 0 {
			burst = cfg.Tools.InvocationBurst
		}
	}

	return &ToolRateLimiter{
		limiters: make(map[uuid.UUID]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Limit rejects the request with 429 when the caller's bucket is empty.
// It must be used AFTER the Authenticate middleware.
func (l *ToolRateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
		}

		if !l.limiterFor(userID).Allow() {
			c.Response().Header().Set(echo.HeaderRetryAfter, "1")
			err := domainerrors.ErrToolRateLimited

			return response.TooManyRequests(c, err.ErrorCode(), err.Message())
		}

		return next(c)
	}
}

func (l *ToolRateLimiter) limiterFor(userID uuid.UUID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}

	return limiter
}
