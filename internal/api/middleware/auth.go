package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinichub/auth-service/internal/api/metrics"
	"github.com/clinichub/auth-service/internal/core/domain"
	"github.com/clinichub/auth-service/internal/core/ports"
)

const userContextKey = "auth.user"

// Auth extracts the bearer token, resolves it to a full user through the auth
// service (decode plus directory lookup, never decode alone) and injects the
// user into the echo context. Any failure is a uniform 401.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenResolutionsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenResolutionsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthorized
			}

			user, err := authService.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("rejected").Inc()
				return err
			}

			metrics.TokenResolutionsTotal.WithLabelValues("success").Inc()
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user injected by Auth, or nil when the
// middleware did not run.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
