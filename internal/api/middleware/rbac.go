package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaoverbas/registro-system/internal/api/metrics"
	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// safeMethods are the read-only verbs allowed for every authenticated role.
var safeMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

// Authenticated rejects requests that carry no authenticated identity and
// applies no role policy. Account routes use it: their role rules live in the
// account service, where an invalid target suffix must surface as a format
// error no matter which role the creator holds.
func Authenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFromContext(c.Request().Context())
			if !ok || !id.Authenticated {
				metrics.AuthzDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// Gate enforces the verb-level authorization policy: any authenticated
// identity may read, only dev and gestor roles may mutate. The role is
// recomputed from the identity on every request.
//
// 401 (unauthenticated) and 403 (known but not allowed) are kept distinct so
// callers can always tell authentication from authorization failures.
func Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFromContext(c.Request().Context())
			if !ok || !id.Authenticated {
				metrics.AuthzDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if _, safe := safeMethods[c.Request().Method]; safe {
				return next(c)
			}

			if !domain.RoleOf(id).CanMutate() {
				metrics.AuthzDeniedTotal.WithLabelValues("read_only_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}

			return next(c)
		}
	}
}
