package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// CreateAccountInput carries the data for a new account.
type CreateAccountInput struct {
	Username string
	Password string
}

// UpdateAccountInput enumerates exactly the mutable account fields. A nil
// field is left untouched; Password, when set, goes through a distinct
// re-hash step and is never copied raw.
type UpdateAccountInput struct {
	Username *string
	Password *string
}

// AccountService defines account management use cases. The creator identity
// is taken from the request context; the creation rule is a function of the
// creator role and the target username suffix.
type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Usuario, error)
	List(ctx context.Context) ([]*domain.Usuario, error)
	Update(ctx context.Context, id string, input UpdateAccountInput) (*domain.Usuario, error)
	Delete(ctx context.Context, id string) error
}
