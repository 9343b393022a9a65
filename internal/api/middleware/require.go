package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// RequireRoles enforces role-based access control on a route group.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Identity(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireVerification gates a route on the caller's trust tier.
func RequireVerification(statuses ...domain.VerificationStatus) echo.MiddlewareFunc {
	allowed := make(map[domain.VerificationStatus]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Identity(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[identity.VerificationStatus]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "account verification required")
			}
			return next(c)
		}
	}
}
