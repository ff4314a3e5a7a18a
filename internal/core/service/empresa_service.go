package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// EmpresaService implements company use cases.
type EmpresaService struct {
	repo ports.EmpresaRepository
	log  zerolog.Logger
}

func NewEmpresaService(repo ports.EmpresaRepository, log zerolog.Logger) *EmpresaService {
	return &EmpresaService{repo: repo, log: log}
}

func (s *EmpresaService) Create(ctx context.Context, input ports.CreateEmpresaInput) (*domain.Empresa, error) {
	errs := domain.FieldErrors{}
	if input.Nome == "" {
		errs["nome"] = "nome é obrigatório"
	}
	cnpj := domain.SanitizeCNPJ(input.CNPJ)
	if !domain.ValidCNPJ(cnpj) {
		errs["cnpj"] = "CNPJ inválido"
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	e := &domain.Empresa{
		Nome:      input.Nome,
		CNPJ:      cnpj,
		Tipo:      input.Tipo,
		Licitacao: input.Licitacao,
		Emendas:   input.Emendas,
	}
	if e.Tipo == nil {
		e.Tipo = []string{}
	}
	if e.Emendas == nil {
		e.Emendas = []string{}
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("empresa_id", created.ID).Str("cnpj", created.CNPJ).Msg("empresa created")
	return created, nil
}

func (s *EmpresaService) Get(ctx context.Context, id string) (*domain.Empresa, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmpresaService) List(ctx context.Context) ([]*domain.Empresa, error) {
	return s.repo.List(ctx)
}

func (s *EmpresaService) Update(ctx context.Context, id string, input ports.UpdateEmpresaInput) (*domain.Empresa, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nome != nil {
		e.Nome = *input.Nome
	}
	if input.CNPJ != nil {
		cnpj := domain.SanitizeCNPJ(*input.CNPJ)
		if !domain.ValidCNPJ(cnpj) {
			return nil, domain.FieldErrors{"cnpj": "CNPJ inválido"}
		}
		e.CNPJ = cnpj
	}
	if input.Tipo != nil {
		e.Tipo = *input.Tipo
	}
	if input.Licitacao != nil {
		e.Licitacao = *input.Licitacao
	}
	if input.Emendas != nil {
		e.Emendas = *input.Emendas
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmpresaService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
