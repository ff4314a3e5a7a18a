package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransacaoTipo is the direction of a transaction.
type TransacaoTipo string

const (
	TipoEntrada TransacaoTipo = "entrada"
	TipoSaida   TransacaoTipo = "saida"
)

// TransacaoStatus is the payment state of a transaction.
type TransacaoStatus string

const (
	StatusPendente TransacaoStatus = "pendente"
	StatusPago     TransacaoStatus = "pago"
)

// TipoMaterial categorizes incoming material.
type TipoMaterial string

const (
	MaterialLaboratorio  TipoMaterial = "laboratorio"
	MaterialMedicamentos TipoMaterial = "medicamentos"
	MaterialInsumo       TipoMaterial = "insumo"
)

// DestinoEntrada is where incoming material is delivered.
type DestinoEntrada string

const (
	DestinoHospital        DestinoEntrada = "hospital"
	DestinoAtencaoPrimaria DestinoEntrada = "atencao_primaria"
)

var ErrTransacaoNotFound = errors.New("transacao not found")

// Transacao is a financial movement tied to an Empresa in the same store.
type Transacao struct {
	ID          string
	EmpresaID   string
	NomeEmpresa string // resolved from the empresa record on reads, never stored
	Tipo        TransacaoTipo
	Status      TransacaoStatus
	NF          string
	Descricao   string
	Valor       primitive.Decimal128
	Data        time.Time // assigned at creation, immutable
	DataEntrada time.Time // defaults to Data, back-datable
	DataSaida   *time.Time
	TipoMaterial   TipoMaterial
	DestinoEntrada DestinoEntrada
	EmendaOrigem   string
}

// DateOnly truncates t to its calendar day in UTC. Chronological invariants
// on transactions are evaluated at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateDates checks the chronological invariants on a transaction draft:
// data_entrada <= today, data_saida <= today, data_saida >= data_entrada.
// All violations are accumulated and returned together, keyed by field.
// Invariants are enforced only at write time; records are never re-validated
// on read.
func ValidateDates(dataEntrada time.Time, dataSaida *time.Time, today time.Time) FieldErrors {
	errs := FieldErrors{}
	entrada := DateOnly(dataEntrada)
	day := DateOnly(today)

	if entrada.After(day) {
		errs["data_entrada"] = "a data de entrada não pode estar no futuro"
	}
	if dataSaida != nil {
		saida := DateOnly(*dataSaida)
		if saida.After(day) {
			errs["data_saida"] = "a data de saída não pode estar no futuro"
		}
		if saida.Before(entrada) {
			if _, taken := errs["data_saida"]; !taken {
				errs["data_saida"] = "a data de saída não pode ser anterior à data de entrada"
			}
		}
	}
	return errs
}
