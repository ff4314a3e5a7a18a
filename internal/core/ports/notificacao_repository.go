package ports

import (
	"context"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

// NotificacaoRepository defines persistence operations for notifications.
type NotificacaoRepository interface {
	Create(ctx context.Context, n *domain.Notificacao) (*domain.Notificacao, error)
	// List returns notifications, newest first. When ativoOnly is true,
	// inactive notifications are filtered out.
	List(ctx context.Context, ativoOnly bool) ([]*domain.Notificacao, error)
	Delete(ctx context.Context, id string) error
}
