package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/api/metrics"
	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

// NotificacaoService implements notification use cases. Created notifications
// are additionally published to the message queue for fan-out; publishing is
// best-effort and never rolls back the stored record.
type NotificacaoService struct {
	repo      ports.NotificacaoRepository
	publisher ports.NotificationPublisher
	log       zerolog.Logger
}

// NewNotificacaoService returns a NotificacaoService. publisher may be nil
// when no queue is configured.
func NewNotificacaoService(repo ports.NotificacaoRepository, publisher ports.NotificationPublisher, log zerolog.Logger) *NotificacaoService {
	return &NotificacaoService{repo: repo, publisher: publisher, log: log}
}

func (s *NotificacaoService) Create(ctx context.Context, input ports.CreateNotificacaoInput) (*domain.Notificacao, error) {
	errs := domain.FieldErrors{}
	if input.Titulo == "" {
		errs["titulo"] = "titulo é obrigatório"
	}
	if input.Mensagem == "" {
		errs["mensagem"] = "mensagem é obrigatória"
	}

	tipo := domain.NotificacaoTipo(input.Tipo)
	if tipo != domain.NotifAviso && tipo != domain.NotifPendencia && tipo != domain.NotifUpdate {
		errs["tipo"] = "tipo deve ser aviso, pendencia ou update"
	}

	alvo := domain.NotificacaoAlvo(input.Alvo)
	if alvo == "" {
		alvo = domain.AlvoTodos
	}
	if alvo != domain.AlvoTodos && alvo != domain.AlvoGestor && alvo != domain.AlvoView && alvo != domain.AlvoDev {
		errs["alvo"] = "alvo deve ser todos, gestor, view ou dev"
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	n := &domain.Notificacao{
		Titulo:   input.Titulo,
		Mensagem: input.Mensagem,
		Tipo:     tipo,
		Alvo:     alvo,
		Ativo:    true,
		CriadoEm: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNotificacao(ctx, created); err != nil {
			s.log.Warn().Err(err).Str("notificacao_id", created.ID).Msg("notification publish failed, record kept")
		} else {
			metrics.NotificacoesPublishedTotal.Inc()
		}
	}

	return created, nil
}

func (s *NotificacaoService) List(ctx context.Context, ativoOnly bool) ([]*domain.Notificacao, error) {
	return s.repo.List(ctx, ativoOnly)
}

func (s *NotificacaoService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
