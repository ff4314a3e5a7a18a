package domain

import (
	"errors"
	"time"
)

// NotificacaoTipo is the severity class of a notification.
type NotificacaoTipo string

const (
	NotifAviso     NotificacaoTipo = "aviso"
	NotifPendencia NotificacaoTipo = "pendencia"
	NotifUpdate    NotificacaoTipo = "update"
)

// NotificacaoAlvo is the audience of a notification.
type NotificacaoAlvo string

const (
	AlvoTodos  NotificacaoAlvo = "todos"
	AlvoGestor NotificacaoAlvo = "gestor"
	AlvoView   NotificacaoAlvo = "view"
	AlvoDev    NotificacaoAlvo = "dev"
)

var ErrNotificacaoNotFound = errors.New("notificacao not found")

// Notificacao is a broadcast message. Any authenticated identity can read
// every notification; Alvo is a display hint, not an access filter.
type Notificacao struct {
	ID       string          `json:"id"`
	Titulo   string          `json:"titulo"`
	Mensagem string          `json:"mensagem"`
	Tipo     NotificacaoTipo `json:"tipo"`
	Alvo     NotificacaoAlvo `json:"alvo"`
	Ativo    bool            `json:"ativo"`
	CriadoEm time.Time       `json:"criado_em"`
}
