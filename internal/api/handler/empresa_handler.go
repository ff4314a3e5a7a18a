package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// EmpresaHandler handles HTTP requests for company records.
type EmpresaHandler struct {
	service ports.EmpresaService
}

func NewEmpresaHandler(service ports.EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{service: service}
}

type createEmpresaRequest struct {
	Nome      string   `json:"nome" validate:"required"`
	CNPJ      string   `json:"cnpj" validate:"required"`
	Tipo      []string `json:"tipo"`
	Licitacao bool     `json:"licitacao"`
	Emendas   []string `json:"emendas"`
}

type updateEmpresaRequest struct {
	Nome      *string   `json:"nome"`
	CNPJ      *string   `json:"cnpj"`
	Tipo      *[]string `json:"tipo"`
	Licitacao *bool     `json:"licitacao"`
	Emendas   *[]string `json:"emendas"`
}

type empresaResponse struct {
	ID        string   `json:"id"`
	Nome      string   `json:"nome"`
	CNPJ      string   `json:"cnpj"`
	Tipo      []string `json:"tipo"`
	Licitacao bool     `json:"licitacao"`
	Emendas   []string `json:"emendas"`
}

// List returns all companies visible to the request's store.
//
// @Summary      List companies
// @Tags         empresas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  empresaResponse
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c echo.Context) error {
	empresas, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]empresaResponse, 0, len(empresas))
	for _, e := range empresas {
		resp = append(resp, toEmpresaResponse(e))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create registers a new company.
//
// @Summary      Create a company
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmpresaRequest  true  "Company details"
// @Success      201   {object}  empresaResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c echo.Context) error {
	var req createEmpresaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	empresa, err := h.service.Create(c.Request().Context(), ports.CreateEmpresaInput{
		Nome:      req.Nome,
		CNPJ:      req.CNPJ,
		Tipo:      req.Tipo,
		Licitacao: req.Licitacao,
		Emendas:   req.Emendas,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEmpresaResponse(empresa))
}

// Get returns a single company by id.
//
// @Summary      Get a company
// @Tags         empresas
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Company id"
// @Success      200  {object}  empresaResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) Get(c echo.Context) error {
	empresa, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmpresaResponse(empresa))
}

// Update applies a partial update to a company.
//
// @Summary      Update a company
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Company id"
// @Param        body  body      updateEmpresaRequest  true  "Fields to change"
// @Success      200   {object}  empresaResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/empresas/{id} [put]
func (h *EmpresaHandler) Update(c echo.Context) error {
	var req updateEmpresaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	empresa, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateEmpresaInput{
		Nome:      req.Nome,
		CNPJ:      req.CNPJ,
		Tipo:      req.Tipo,
		Licitacao: req.Licitacao,
		Emendas:   req.Emendas,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmpresaResponse(empresa))
}

// Delete removes a company.
//
// @Summary      Delete a company
// @Tags         empresas
// @Security     BearerAuth
// @Param        id  path  string  true  "Company id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /api/empresas/{id} [delete]
func (h *EmpresaHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toEmpresaResponse(e *domain.Empresa) empresaResponse {
	resp := empresaResponse{
		ID:        e.ID,
		Nome:      e.Nome,
		CNPJ:      e.CNPJ,
		Tipo:      e.Tipo,
		Licitacao: e.Licitacao,
		Emendas:   e.Emendas,
	}
	if resp.Tipo == nil {
		resp.Tipo = []string{}
	}
	if resp.Emendas == nil {
		resp.Emendas = []string{}
	}
	return resp
}
