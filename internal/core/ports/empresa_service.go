package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// CreateEmpresaInput carries the data for a new company.
type CreateEmpresaInput struct {
	Nome      string
	CNPJ      string
	Tipo      []string
	Licitacao bool
	Emendas   []string
}

// UpdateEmpresaInput is a partial update; nil fields are left untouched.
type UpdateEmpresaInput struct {
	Nome      *string
	CNPJ      *string
	Tipo      *[]string
	Licitacao *bool
	Emendas   *[]string
}

// EmpresaService defines company use cases.
type EmpresaService interface {
	Create(ctx context.Context, input CreateEmpresaInput) (*domain.Empresa, error)
	Get(ctx context.Context, id string) (*domain.Empresa, error)
	List(ctx context.Context) ([]*domain.Empresa, error)
	Update(ctx context.Context, id string, input UpdateEmpresaInput) (*domain.Empresa, error)
	Delete(ctx context.Context, id string) error
}
