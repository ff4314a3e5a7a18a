package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// EmpresaRepository defines persistence operations for companies. Every call
// resolves its physical store from the identity on ctx; implementations must
// not cache the routing decision across calls.
type EmpresaRepository interface {
	Create(ctx context.Context, e *domain.Empresa) (*domain.Empresa, error)
	FindByID(ctx context.Context, id string) (*domain.Empresa, error)
	// FindByIDs returns the subset of ids that exist, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Empresa, error)
	List(ctx context.Context) ([]*domain.Empresa, error)
	Update(ctx context.Context, e *domain.Empresa) error
	Delete(ctx context.Context, id string) error
}
