package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// AccountRepository defines persistence operations for user accounts.
// Accounts are system-reserved and always resolve to the primary store.
type AccountRepository interface {
	Create(ctx context.Context, user *domain.Usuario) (*domain.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*domain.Usuario, error)
	FindByID(ctx context.Context, id string) (*domain.Usuario, error)
	List(ctx context.Context) ([]*domain.Usuario, error)
	Update(ctx context.Context, user *domain.Usuario) error
	Delete(ctx context.Context, id string) error
}
