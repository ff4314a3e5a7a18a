package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

type stubDenylist struct {
	denied map[string]bool
	err    error
}

func (d *stubDenylist) IsDenied(_ context.Context, token string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.denied[token], nil
}

func signToken(t *testing.T, secret, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", "alice.gestor")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", &stubDenylist{denied: map[string]bool{}}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		id, ok := domain.IdentityFromContext(c.Request().Context())
		if !ok || !id.Authenticated {
			t.Fatalf("identity not installed: %+v ok=%v", id, ok)
		}
		if id.Username != "alice.gestor" {
			t.Fatalf("wrong username: %q", id.Username)
		}
		if c.Get("username") != "alice.gestor" {
			t.Fatalf("username not set on echo context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// No header means anonymous, not rejected: public routes must stay reachable
// and the gate downstream decides what anonymous callers may do.
func TestAuthMiddleware_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		id, ok := domain.IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatalf("anonymous identity must still be installed")
		}
		if id.Authenticated {
			t.Fatalf("anonymous identity must not be authenticated")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_InvalidSignature(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "other-secret", "alice.gestor")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", "alice.gestor")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubDenylist{denied: map[string]bool{signed: true}}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

// An unreachable denylist must reject, never fail open.
func TestAuthMiddleware_DenylistUnavailable(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", "alice.gestor")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubDenylist{err: errors.New("redis down")}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

// Two sequential requests through the same middleware chain must each see
// their own identity; nothing can survive from the previous request.
func TestAuthMiddleware_NoIdentityCarryOver(t *testing.T) {
	e := echo.New()
	mw := Auth("secret", nil, zerolog.Nop())

	run := func(header string) (domain.Identity, bool) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var got domain.Identity
		var ok bool
		handler := mw(func(c echo.Context) error {
			got, ok = domain.IdentityFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return got, ok
	}

	first, ok := run("Bearer " + signToken(t, "secret", "alice.dev"))
	if !ok || first.Username != "alice.dev" {
		t.Fatalf("first request identity wrong: %+v", first)
	}

	second, ok := run("")
	if !ok {
		t.Fatalf("second request must still carry an identity value")
	}
	if second.Authenticated || second.Username != "" {
		t.Fatalf("identity leaked across requests: %+v", second)
	}
}

// A request that dies mid-handler must not leave its identity observable to
// any later request: the identity lives on the request context, so the
// recover path has nothing to clean up.
func TestAuthMiddleware_PanicLeavesNoIdentityBehind(t *testing.T) {
	e := echo.New()
	e.Use(echomiddleware.Recover())
	e.Use(Auth("secret", nil, zerolog.Nop()))

	var afterPanic domain.Identity
	var afterPanicOK bool
	e.GET("/boom", func(c echo.Context) error {
		if id, ok := domain.IdentityFromContext(c.Request().Context()); !ok || id.Username != "alice.dev" {
			t.Errorf("panicking request lost its own identity: %+v", id)
		}
		panic("handler died")
	})
	e.GET("/next", func(c echo.Context) error {
		afterPanic, afterPanicOK = domain.IdentityFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	boom := httptest.NewRequest(http.MethodGet, "/boom", nil)
	boom.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "alice.dev"))
	boomRec := httptest.NewRecorder()
	e.ServeHTTP(boomRec, boom)
	if boomRec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recovered panic, got %d", boomRec.Code)
	}

	next := httptest.NewRequest(http.MethodGet, "/next", nil)
	nextRec := httptest.NewRecorder()
	e.ServeHTTP(nextRec, next)
	if nextRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", nextRec.Code)
	}
	if !afterPanicOK {
		t.Fatalf("follow-up request must carry an identity value")
	}
	if afterPanic.Authenticated || afterPanic.Username != "" {
		t.Fatalf("identity survived the panicked request: %+v", afterPanic)
	}
}
