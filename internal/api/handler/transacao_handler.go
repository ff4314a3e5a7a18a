package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// TransacaoHandler handles HTTP requests for financial transactions.
type TransacaoHandler struct {
	service ports.TransacaoService
}

func NewTransacaoHandler(service ports.TransacaoService) *TransacaoHandler {
	return &TransacaoHandler{service: service}
}

type createTransacaoRequest struct {
	Empresa        string `json:"empresa" validate:"required"`
	Tipo           string `json:"tipo" validate:"required,oneof=entrada saida"`
	Status         string `json:"status" validate:"omitempty,oneof=pendente pago"`
	NF             string `json:"nf"`
	Descricao      string `json:"descricao"`
	Valor          string `json:"valor" validate:"required"`
	DataEntrada    string `json:"data_entrada" validate:"omitempty,datetime=2006-01-02"`
	DataSaida      string `json:"data_saida" validate:"omitempty,datetime=2006-01-02"`
	TipoMaterial   string `json:"tipo_material" validate:"omitempty,oneof=laboratorio medicamentos insumo"`
	DestinoEntrada string `json:"destino_entrada" validate:"omitempty,oneof=hospital atencao_primaria"`
	EmendaOrigem   string `json:"emenda_origem"`
}

type updateTransacaoRequest struct {
	Empresa        *string `json:"empresa"`
	Tipo           *string `json:"tipo"`
	Status         *string `json:"status"`
	NF             *string `json:"nf"`
	Descricao      *string `json:"descricao"`
	Valor          *string `json:"valor"`
	DataEntrada    *string `json:"data_entrada"`
	DataSaida      *string `json:"data_saida"`
	TipoMaterial   *string `json:"tipo_material"`
	DestinoEntrada *string `json:"destino_entrada"`
	EmendaOrigem   *string `json:"emenda_origem"`
}

type transacaoResponse struct {
	ID             string  `json:"id"`
	Empresa        string  `json:"empresa"`
	NomeEmpresa    string  `json:"nome_empresa"`
	Tipo           string  `json:"tipo"`
	Status         string  `json:"status"`
	NF             string  `json:"nf,omitempty"`
	Descricao      string  `json:"descricao,omitempty"`
	Valor          string  `json:"valor"`
	Data           string  `json:"data"`
	DataEntrada    string  `json:"data_entrada"`
	DataSaida      *string `json:"data_saida"`
	TipoMaterial   string  `json:"tipo_material,omitempty"`
	DestinoEntrada string  `json:"destino_entrada,omitempty"`
	EmendaOrigem   string  `json:"emenda_origem,omitempty"`
}

// List returns transactions, optionally filtered by empresa, tipo and status.
//
// @Summary      List transactions
// @Tags         transacoes
// @Produce      json
// @Security     BearerAuth
// @Param        empresa  query  string  false  "Filter by company id"
// @Param        tipo     query  string  false  "Filter by direction (entrada|saida)"
// @Param        status   query  string  false  "Filter by status (pendente|pago)"
// @Success      200  {array}  transacaoResponse
// @Router       /api/transacoes [get]
func (h *TransacaoHandler) List(c echo.Context) error {
	filter := ports.ListTransacoesFilter{
		EmpresaID: c.QueryParam("empresa"),
		Tipo:      c.QueryParam("tipo"),
		Status:    c.QueryParam("status"),
	}

	transacoes, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]transacaoResponse, 0, len(transacoes))
	for _, t := range transacoes {
		resp = append(resp, toTransacaoResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create records a new transaction. Date invariants are validated at write
// time; every violated field is reported together.
//
// @Summary      Create a transaction
// @Tags         transacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransacaoRequest  true  "Transaction details"
// @Success      201   {object}  transacaoResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/transacoes [post]
func (h *TransacaoHandler) Create(c echo.Context) error {
	var req createTransacaoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateTransacaoInput{
		EmpresaID:      req.Empresa,
		Tipo:           req.Tipo,
		Status:         req.Status,
		NF:             req.NF,
		Descricao:      req.Descricao,
		Valor:          req.Valor,
		TipoMaterial:   req.TipoMaterial,
		DestinoEntrada: req.DestinoEntrada,
		EmendaOrigem:   req.EmendaOrigem,
	}

	var err error
	if input.DataEntrada, err = parseDate(req.DataEntrada); err != nil {
		return domain.FieldErrors{"data_entrada": "data inválida, use o formato AAAA-MM-DD"}
	}
	if input.DataSaida, err = parseDate(req.DataSaida); err != nil {
		return domain.FieldErrors{"data_saida": "data inválida, use o formato AAAA-MM-DD"}
	}

	transacao, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTransacaoResponse(transacao))
}

// Get returns a single transaction by id.
//
// @Summary      Get a transaction
// @Tags         transacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Transaction id"
// @Success      200  {object}  transacaoResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/transacoes/{id} [get]
func (h *TransacaoHandler) Get(c echo.Context) error {
	transacao, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransacaoResponse(transacao))
}

// Update applies a partial update. An absent data_entrada keeps the stored
// value; it never silently becomes today.
//
// @Summary      Update a transaction
// @Tags         transacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Transaction id"
// @Param        body  body      updateTransacaoRequest  true  "Fields to change"
// @Success      200   {object}  transacaoResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/transacoes/{id} [put]
func (h *TransacaoHandler) Update(c echo.Context) error {
	var req updateTransacaoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateTransacaoInput{
		EmpresaID:      req.Empresa,
		Tipo:           req.Tipo,
		Status:         req.Status,
		NF:             req.NF,
		Descricao:      req.Descricao,
		Valor:          req.Valor,
		TipoMaterial:   req.TipoMaterial,
		DestinoEntrada: req.DestinoEntrada,
		EmendaOrigem:   req.EmendaOrigem,
	}

	if req.DataEntrada != nil {
		d, err := parseDate(*req.DataEntrada)
		if err != nil || d == nil {
			return domain.FieldErrors{"data_entrada": "data inválida, use o formato AAAA-MM-DD"}
		}
		input.DataEntrada = d
	}
	if req.DataSaida != nil {
		d, err := parseDate(*req.DataSaida)
		if err != nil || d == nil {
			return domain.FieldErrors{"data_saida": "data inválida, use o formato AAAA-MM-DD"}
		}
		input.DataSaida = d
	}

	transacao, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTransacaoResponse(transacao))
}

// Delete removes a transaction.
//
// @Summary      Delete a transaction
// @Tags         transacoes
// @Security     BearerAuth
// @Param        id  path  string  true  "Transaction id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /api/transacoes/{id} [delete]
func (h *TransacaoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func toTransacaoResponse(t *domain.Transacao) transacaoResponse {
	resp := transacaoResponse{
		ID:             t.ID,
		Empresa:        t.EmpresaID,
		NomeEmpresa:    t.NomeEmpresa,
		Tipo:           string(t.Tipo),
		Status:         string(t.Status),
		NF:             t.NF,
		Descricao:      t.Descricao,
		Valor:          t.Valor.String(),
		Data:           t.Data.Format(dateLayout),
		DataEntrada:    t.DataEntrada.Format(dateLayout),
		TipoMaterial:   string(t.TipoMaterial),
		DestinoEntrada: string(t.DestinoEntrada),
		EmendaOrigem:   t.EmendaOrigem,
	}
	if t.DataSaida != nil {
		s := t.DataSaida.Format(dateLayout)
		resp.DataSaida = &s
	}
	return resp
}
