package ports

import (
	"context"
	"time"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// CreateTransacaoInput carries the data for a new transaction. Valor is the
// decimal amount as a string; dates are nil when not supplied.
type CreateTransacaoInput struct {
	EmpresaID      string
	Tipo           string
	Status         string
	NF             string
	Descricao      string
	Valor          string
	DataEntrada    *time.Time
	DataSaida      *time.Time
	TipoMaterial   string
	DestinoEntrada string
	EmendaOrigem   string
}

// UpdateTransacaoInput is a partial update; nil fields keep the stored value.
// In particular an absent DataEntrada falls back to the persisted value, not
// to today, before date validation runs.
type UpdateTransacaoInput struct {
	EmpresaID      *string
	Tipo           *string
	Status         *string
	NF             *string
	Descricao      *string
	Valor          *string
	DataEntrada    *time.Time
	DataSaida      *time.Time
	TipoMaterial   *string
	DestinoEntrada *string
	EmendaOrigem   *string
}

// TransacaoService defines transaction use cases.
type TransacaoService interface {
	Create(ctx context.Context, input CreateTransacaoInput) (*domain.Transacao, error)
	Get(ctx context.Context, id string) (*domain.Transacao, error)
	List(ctx context.Context, filter ListTransacoesFilter) ([]*domain.Transacao, error)
	Update(ctx context.Context, id string, input UpdateTransacaoInput) (*domain.Transacao, error)
	Delete(ctx context.Context, id string) error
}
