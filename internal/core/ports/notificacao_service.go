package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// CreateNotificacaoInput carries the data for a new notification.
type CreateNotificacaoInput struct {
	Titulo   string
	Mensagem string
	Tipo     string
	Alvo     string
}

// NotificacaoService defines notification use cases.
type NotificacaoService interface {
	Create(ctx context.Context, input CreateNotificacaoInput) (*domain.Notificacao, error)
	List(ctx context.Context, ativoOnly bool) ([]*domain.Notificacao, error)
	Delete(ctx context.Context, id string) error
}

// NotificationPublisher pushes created notifications to a message queue for
// downstream fan-out (websocket bridges, mail workers). Publishing is
// best-effort: a failure must not roll back the stored notification.
type NotificationPublisher interface {
	PublishNotificacao(ctx context.Context, n *domain.Notificacao) error
}
