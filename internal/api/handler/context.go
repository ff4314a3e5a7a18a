package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// ctxIdentity extracts the identity installed by the Auth middleware and
// fails fast when a route is wired without it. An anonymous identity is
// returned as-is; deciding whether anonymous access is acceptable belongs to
// the gate or the service, not here.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(c.Request().Context())
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
