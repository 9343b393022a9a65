package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

func identityContext(identity *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		SetIdentity(c, identity)
	}
	return c
}

func TestRequireRoles_Allowed(t *testing.T) {
	c := identityContext(&domain.Identity{UserID: "u1", Role: domain.RoleAdmin})

	called := false
	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRoles_Denied(t *testing.T) {
	c := identityContext(&domain.Identity{UserID: "u1", Role: domain.RoleClient})

	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	c := identityContext(nil)

	handler := RequireRoles(domain.RoleClient)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestRequireVerification(t *testing.T) {
	mw := RequireVerification(domain.VerificationVerified)

	c := identityContext(&domain.Identity{
		UserID:             "u1",
		Role:               domain.RoleDeveloper,
		VerificationStatus: domain.VerificationVerified,
	})
	if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		t.Fatalf("verified caller rejected: %v", err)
	}

	c = identityContext(&domain.Identity{
		UserID:             "u2",
		Role:               domain.RoleDeveloper,
		VerificationStatus: domain.VerificationUnverified,
	})
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	assertHTTPStatus(t, err, http.StatusForbidden)
}
