package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func newTestContext(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{"pharmacist"},
	})
	c, _ := newTestContext(token)

	var gotID string
	var gotRoles []string
	handler := func(c echo.Context) error {
		gotID = UserIDFromContext(c.Request().Context())
		gotRoles = RolesFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	}

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "user-123" {
		t.Errorf("expected user-123, got %s", gotID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "pharmacist" {
		t.Errorf("expected [pharmacist], got %v", gotRoles)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	c, _ := newTestContext("")

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("expected error for missing header")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestJWTMiddleware_BadScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	c := e.NewContext(req, httptest.NewRecorder())

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("expected error for non-bearer scheme")
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	c, _ := newTestContext(token)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString([]byte("other-key"))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	c, _ := newTestContext(s)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	if err := mw(okHandler)(c); err == nil {
		t.Fatal("expected error for token signed with wrong key")
	}
}

func TestDevAuthMiddleware_SetsAdminDefaults(t *testing.T) {
	c, _ := newTestContext("")

	var gotRoles []string
	handler := func(c echo.Context) error {
		gotRoles = RolesFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	}

	mw := DevAuthMiddleware()
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "admin" {
		t.Errorf("expected [admin], got %v", gotRoles)
	}
}

func withRoles(c echo.Context, roles ...string) echo.Context {
	ctx := context.WithValue(c.Request().Context(), UserRolesKey, roles)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

func TestRequireRole_Allows(t *testing.T) {
	c, _ := newTestContext("")
	c = withRoles(c, "pharmacist")

	mw := RequireRole("pharmacist", "technician")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminOverride(t *testing.T) {
	c, _ := newTestContext("")
	c = withRoles(c, "admin")

	mw := RequireRole("pharmacist")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("expected admin to pass, got: %v", err)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	c, _ := newTestContext("")
	c = withRoles(c, "technician")

	mw := RequireRole("pharmacist")
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", httpErr.Code)
	}
}

func TestRequireRole_NoRoles(t *testing.T) {
	c, _ := newTestContext("")

	mw := RequireRole("pharmacist")
	if err := mw(okHandler)(c); err == nil {
		t.Fatal("expected forbidden error for request without roles")
	}
}
