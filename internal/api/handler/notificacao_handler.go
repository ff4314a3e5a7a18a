package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// NotificacaoHandler handles HTTP requests for broadcast notifications.
// Reads are open to any authenticated identity; the target audience field is
// a display hint, not an access filter.
type NotificacaoHandler struct {
	service ports.NotificacaoService
}

func NewNotificacaoHandler(service ports.NotificacaoService) *NotificacaoHandler {
	return &NotificacaoHandler{service: service}
}

type createNotificacaoRequest struct {
	Titulo   string `json:"titulo" validate:"required"`
	Mensagem string `json:"mensagem" validate:"required"`
	Tipo     string `json:"tipo" validate:"required,oneof=aviso pendencia update"`
	Alvo     string `json:"alvo" validate:"omitempty,oneof=todos gestor view dev"`
}

// List returns notifications, newest first. ?ativo=true filters out
// deactivated entries.
//
// @Summary      List notifications
// @Tags         notificacoes
// @Produce      json
// @Security     BearerAuth
// @Param        ativo  query  bool  false  "Only active notifications"
// @Success      200  {array}  domain.Notificacao
// @Router       /api/notificacoes [get]
func (h *NotificacaoHandler) List(c echo.Context) error {
	ativoOnly := c.QueryParam("ativo") == "true"

	notificacoes, err := h.service.List(c.Request().Context(), ativoOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificacoes)
}

// Create publishes a new notification.
//
// @Summary      Create a notification
// @Tags         notificacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificacaoRequest  true  "Notification details"
// @Success      201   {object}  domain.Notificacao
// @Failure      400   {object}  map[string]string
// @Router       /api/notificacoes [post]
func (h *NotificacaoHandler) Create(c echo.Context) error {
	var req createNotificacaoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notificacao, err := h.service.Create(c.Request().Context(), ports.CreateNotificacaoInput{
		Titulo:   req.Titulo,
		Mensagem: req.Mensagem,
		Tipo:     req.Tipo,
		Alvo:     req.Alvo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, notificacao)
}

// Delete removes a notification.
//
// @Summary      Delete a notification
// @Tags         notificacoes
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /api/notificacoes/{id} [delete]
func (h *NotificacaoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
