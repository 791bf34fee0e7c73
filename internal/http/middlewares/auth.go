package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"helpify.com/helpify/internal/auth"
	"helpify.com/helpify/internal/services"
)

const actorContextKey = "actor"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate requires a valid bearer token and stores the caller as a
// services.Actor on the echo context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims.Subject == "" || !claims.UserType.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(actorContextKey, services.Actor{
				UserID:   claims.Subject,
				UserType: claims.UserType,
			})
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated caller, or the zero Actor on public
// routes.
func ActorFrom(c echo.Context) services.Actor {
	actor, _ := c.Get(actorContextKey).(services.Actor)
	return actor
}
