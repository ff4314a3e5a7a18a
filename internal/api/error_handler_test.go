package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

func handle(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, 401, "invalid credentials"},
		{"invalid token", domain.ErrTokenInvalid, 401, "invalid token"},
		{"unauthenticated", domain.ErrUnauthenticated, 401, "authentication required"},
		{"forbidden", domain.ErrForbidden, 403, "Sem permissão."},
		{"gestor target", domain.ErrGestorTarget, 403, "Gestores só podem criar usuários do tipo Visitante (.view)."},
		{"dev edit denied", domain.ErrDevEditDenied, 403, "Você não tem permissão para editar um desenvolvedor."},
		{"dev delete denied", domain.ErrDevDelDenied, 403, "Você não tem permissão para excluir um desenvolvedor."},
		{"target suffix", domain.ErrTargetSuffix, 400, "O usuário deve terminar em .dev, .gestor ou .view"},
		{"empresa not found", domain.ErrEmpresaNotFound, 404, "empresa not found"},
		{"transacao not found", domain.ErrTransacaoNotFound, 404, "transacao not found"},
		{"user exists", domain.ErrUserExists, 409, "user already exists"},
		{"empresa exists", domain.ErrEmpresaExists, 409, "empresa already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := handle(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if body["error"] != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, body["error"])
			}
		})
	}
}

// Authentication and authorization failures must never collapse into one
// status: an authenticated caller denied an action is 403, never 401.
func TestHTTPErrorHandler_401And403Distinct(t *testing.T) {
	code401, _ := handle(t, domain.ErrUnauthenticated)
	code403, _ := handle(t, domain.ErrForbidden)
	if code401 != http.StatusUnauthorized || code403 != http.StatusForbidden {
		t.Fatalf("got %d/%d, want 401/403", code401, code403)
	}
}

func TestHTTPErrorHandler_FieldErrors(t *testing.T) {
	code, body := handle(t, domain.FieldErrors{
		"data_entrada": "a data de entrada não pode estar no futuro",
		"valor":        "valor deve ser um número decimal",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing errors object: %v", body)
	}
	if len(errs) != 2 {
		t.Fatalf("all violated fields must be reported, got %v", errs)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, body := handle(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound || body["error"] != "Not Found" {
		t.Fatalf("echo error not passed through: %d %v", code, body)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, body := handle(t, errors.New("mongo: broken pipe"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %v", body)
	}
}
