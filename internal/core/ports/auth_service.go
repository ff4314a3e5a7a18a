package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// AuthService issues and revokes bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Usuario, error)
	// Logout revokes a still-valid token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
