package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gestaoverbas/registro-system/internal/api/metrics"
	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// TransacaoService implements transaction use cases, including the write-time
// chronological validation of data_entrada/data_saida.
type TransacaoService struct {
	repo     ports.TransacaoRepository
	empresas ports.EmpresaRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewTransacaoService(repo ports.TransacaoRepository, empresas ports.EmpresaRepository, log zerolog.Logger) *TransacaoService {
	return &TransacaoService{repo: repo, empresas: empresas, log: log, now: time.Now}
}

func (s *TransacaoService) Create(ctx context.Context, input ports.CreateTransacaoInput) (*domain.Transacao, error) {
	errs := domain.FieldErrors{}

	tipo := domain.TransacaoTipo(input.Tipo)
	if tipo != domain.TipoEntrada && tipo != domain.TipoSaida {
		errs["tipo"] = "tipo deve ser entrada ou saida"
	}

	status := domain.TransacaoStatus(input.Status)
	if status == "" {
		status = domain.StatusPendente
	}
	if status != domain.StatusPendente && status != domain.StatusPago {
		errs["status"] = "status deve ser pendente ou pago"
	}

	valor, verr := primitive.ParseDecimal128(input.Valor)
	if verr != nil {
		errs["valor"] = "valor deve ser um número decimal"
	}

	material := domain.TipoMaterial(input.TipoMaterial)
	if material != "" && material != domain.MaterialLaboratorio && material != domain.MaterialMedicamentos && material != domain.MaterialInsumo {
		errs["tipo_material"] = "tipo_material inválido"
	}

	destino := domain.DestinoEntrada(input.DestinoEntrada)
	if destino != "" && destino != domain.DestinoHospital && destino != domain.DestinoAtencaoPrimaria {
		errs["destino_entrada"] = "destino_entrada inválido"
	}

	today := domain.DateOnly(s.now())
	dataEntrada := today
	if input.DataEntrada != nil {
		dataEntrada = domain.DateOnly(*input.DataEntrada)
	}
	var dataSaida *time.Time
	if input.DataSaida != nil {
		d := domain.DateOnly(*input.DataSaida)
		dataSaida = &d
	}
	for field, msg := range domain.ValidateDates(dataEntrada, dataSaida, today) {
		errs[field] = msg
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	empresa, err := s.empresas.FindByID(ctx, input.EmpresaID)
	if err != nil {
		return nil, err
	}

	t := &domain.Transacao{
		EmpresaID:      empresa.ID,
		NomeEmpresa:    empresa.Nome,
		Tipo:           tipo,
		Status:         status,
		NF:             input.NF,
		Descricao:      input.Descricao,
		Valor:          valor,
		Data:           today,
		DataEntrada:    dataEntrada,
		DataSaida:      dataSaida,
		TipoMaterial:   material,
		DestinoEntrada: destino,
		EmendaOrigem:   input.EmendaOrigem,
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	created.NomeEmpresa = empresa.Nome

	metrics.TransacoesCreatedTotal.WithLabelValues(string(tipo)).Inc()
	s.log.Info().Str("transacao_id", created.ID).Str("empresa_id", empresa.ID).Str("tipo", string(tipo)).Msg("transacao created")
	return created, nil
}

func (s *TransacaoService) Get(ctx context.Context, id string) (*domain.Transacao, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachNomes(ctx, t)
	return t, nil
}

func (s *TransacaoService) List(ctx context.Context, filter ports.ListTransacoesFilter) ([]*domain.Transacao, error) {
	ts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.attachNomes(ctx, ts...)
	return ts, nil
}

// Update merges the incoming patch over the stored record before validating.
// An absent data_entrada keeps the persisted value; defaulting it to today
// would silently change what gets validated. Mutations are never retried.
func (s *TransacaoService) Update(ctx context.Context, id string, input ports.UpdateTransacaoInput) (*domain.Transacao, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := domain.FieldErrors{}

	if input.Tipo != nil {
		tipo := domain.TransacaoTipo(*input.Tipo)
		if tipo != domain.TipoEntrada && tipo != domain.TipoSaida {
			errs["tipo"] = "tipo deve ser entrada ou saida"
		} else {
			t.Tipo = tipo
		}
	}
	if input.Status != nil {
		status := domain.TransacaoStatus(*input.Status)
		if status != domain.StatusPendente && status != domain.StatusPago {
			errs["status"] = "status deve ser pendente ou pago"
		} else {
			t.Status = status
		}
	}
	if input.Valor != nil {
		valor, verr := primitive.ParseDecimal128(*input.Valor)
		if verr != nil {
			errs["valor"] = "valor deve ser um número decimal"
		} else {
			t.Valor = valor
		}
	}
	if input.TipoMaterial != nil {
		material := domain.TipoMaterial(*input.TipoMaterial)
		if material != "" && material != domain.MaterialLaboratorio && material != domain.MaterialMedicamentos && material != domain.MaterialInsumo {
			errs["tipo_material"] = "tipo_material inválido"
		} else {
			t.TipoMaterial = material
		}
	}
	if input.DestinoEntrada != nil {
		destino := domain.DestinoEntrada(*input.DestinoEntrada)
		if destino != "" && destino != domain.DestinoHospital && destino != domain.DestinoAtencaoPrimaria {
			errs["destino_entrada"] = "destino_entrada inválido"
		} else {
			t.DestinoEntrada = destino
		}
	}
	if input.NF != nil {
		t.NF = *input.NF
	}
	if input.Descricao != nil {
		t.Descricao = *input.Descricao
	}
	if input.EmendaOrigem != nil {
		t.EmendaOrigem = *input.EmendaOrigem
	}

	if input.DataEntrada != nil {
		t.DataEntrada = domain.DateOnly(*input.DataEntrada)
	}
	if input.DataSaida != nil {
		d := domain.DateOnly(*input.DataSaida)
		t.DataSaida = &d
	}

	if input.EmpresaID != nil && *input.EmpresaID != t.EmpresaID {
		empresa, err := s.empresas.FindByID(ctx, *input.EmpresaID)
		if err != nil {
			return nil, err
		}
		t.EmpresaID = empresa.ID
		t.NomeEmpresa = empresa.Nome
	}

	today := domain.DateOnly(s.now())
	for field, msg := range domain.ValidateDates(t.DataEntrada, t.DataSaida, today) {
		errs[field] = msg
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.attachNomes(ctx, t)
	return t, nil
}

func (s *TransacaoService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// attachNomes resolves NomeEmpresa for read results. A missing empresa is
// logged and left blank rather than failing the read.
func (s *TransacaoService) attachNomes(ctx context.Context, ts ...*domain.Transacao) {
	ids := make([]string, 0, len(ts))
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if _, ok := seen[t.EmpresaID]; !ok {
			seen[t.EmpresaID] = struct{}{}
			ids = append(ids, t.EmpresaID)
		}
	}

	nomes, err := s.empresas.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("resolving empresa names failed")
		return
	}
	for _, t := range ts {
		if e, ok := nomes[t.EmpresaID]; ok {
			t.NomeEmpresa = e.Nome
		}
	}
}
