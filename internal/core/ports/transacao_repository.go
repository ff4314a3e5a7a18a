package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// ListTransacoesFilter carries the optional query parameters for listing
// transactions. Zero values mean "no filter".
type ListTransacoesFilter struct {
	EmpresaID string
	Tipo      string
	Status    string
}

// TransacaoRepository defines persistence operations for transactions.
// Store routing happens per call from the identity on ctx.
type TransacaoRepository interface {
	Create(ctx context.Context, t *domain.Transacao) (*domain.Transacao, error)
	FindByID(ctx context.Context, id string) (*domain.Transacao, error)
	// List returns transactions matching filter, most recent Data first.
	List(ctx context.Context, filter ListTransacoesFilter) ([]*domain.Transacao, error)
	Update(ctx context.Context, t *domain.Transacao) error
	Delete(ctx context.Context, id string) error
}
