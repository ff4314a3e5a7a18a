package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/api/metrics"
	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// TokenDenylist reports whether a token has been revoked by logout.
type TokenDenylist interface {
	IsDenied(ctx context.Context, token string) (bool, error)
}

// Auth resolves the request identity before any handler runs and installs it
// on the request context, where it stays for exactly the request lifetime.
//
// A request without an Authorization header proceeds with an anonymous
// identity; route-level gates decide what anonymous callers may reach. A
// header that is present but malformed, unverifiable, expired or revoked is
// rejected with 401 outright — never downgraded to anonymous.
func Auth(jwtSecret string, denylist TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				installIdentity(c, domain.Identity{})
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				denied, derr := denylist.IsDenied(c.Request().Context(), parts[1])
				if derr != nil {
					// Revocation state unknown: reject rather than accept a
					// possibly revoked token.
					log.Warn().Err(derr).Msg("token denylist check failed")
					metrics.AuthFailuresTotal.WithLabelValues("denylist_unavailable").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				if denied {
					metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			username, _ := claims["username"].(string)
			if username == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_claims").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			sub, _ := claims["sub"].(string)

			installIdentity(c, domain.Identity{ID: sub, Username: username, Authenticated: true})
			c.Set("username", username)

			return next(c)
		}
	}
}

func installIdentity(c echo.Context, id domain.Identity) {
	req := c.Request()
	c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
}
