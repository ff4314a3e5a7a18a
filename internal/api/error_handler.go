package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrorResponse carries every violated field of a validation failure.
type fieldErrorResponse struct {
	Errors domain.FieldErrors `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes,
//     keeping 401 (not authenticated) and 403 (not allowed) distinct.
//   - Renders field-level validation failures with all violated fields.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			_ = c.JSON(http.StatusBadRequest, fieldErrorResponse{Errors: fe})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrTargetSuffix):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrGestorTarget),
		errors.Is(err, domain.ErrDevEditDenied),
		errors.Is(err, domain.ErrDevDelDenied):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrEmpresaNotFound):
		return http.StatusNotFound, "empresa not found"
	case errors.Is(err, domain.ErrTransacaoNotFound):
		return http.StatusNotFound, "transacao not found"
	case errors.Is(err, domain.ErrNotificacaoNotFound):
		return http.StatusNotFound, "notificacao not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrEmpresaExists):
		return http.StatusConflict, "empresa already exists"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
