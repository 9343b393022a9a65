package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// identityKey is the context key under which Auth stores the resolved
// *domain.Identity. Handlers read it through Identity(), never directly.
const identityKey = "identity"

// SessionCookie is the fallback credential carrier for browser clients.
const SessionCookie = "session"

// Auth resolves the request credential into an application identity and
// injects it into context. The Authorization header wins over the session
// cookie. Role and verification status come from the authoritative account
// record, never from anything the client sent.
func Auth(identities ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := extractCredential(c)
			if credential == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			identity, err := identities.Resolve(c.Request().Context(), credential)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
				case errors.Is(err, domain.ErrUserNotFound):
					// Valid provider session, no application account.
					metrics.AuthRejectionsTotal.WithLabelValues("user_not_found").Inc()
					return echo.NewHTTPError(http.StatusNotFound, "account not found")
				default:
					return err
				}
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// extractCredential reads the bearer token, falling back to the session
// cookie when no Authorization header is present.
func extractCredential(c echo.Context) string {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return parts[1]
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Identity returns the authenticated caller set by Auth. It fails with 401
// rather than panicking when the middleware did not run: presence of the
// identity proves the route is behind the gate.
func Identity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}

// SetIdentity injects an identity directly, bypassing credential resolution.
// Test helper for handler tests.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}
