package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

type stubNotificacaoRepo struct {
	items  map[string]*domain.Notificacao
	nextID int
}

func newStubNotificacaoRepo() *stubNotificacaoRepo {
	return &stubNotificacaoRepo{items: make(map[string]*domain.Notificacao)}
}

func (r *stubNotificacaoRepo) Create(_ context.Context, n *domain.Notificacao) (*domain.Notificacao, error) {
	copy := *n
	r.nextID++
	copy.ID = strconv.Itoa(r.nextID)
	stored := copy
	r.items[copy.ID] = &stored
	return &copy, nil
}

func (r *stubNotificacaoRepo) List(_ context.Context, ativoOnly bool) ([]*domain.Notificacao, error) {
	out := make([]*domain.Notificacao, 0, len(r.items))
	for _, n := range r.items {
		if ativoOnly && !n.Ativo {
			continue
		}
		copy := *n
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubNotificacaoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotificacaoNotFound
	}
	delete(r.items, id)
	return nil
}

type stubPublisher struct {
	published []*domain.Notificacao
	err       error
}

func (p *stubPublisher) PublishNotificacao(_ context.Context, n *domain.Notificacao) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func TestNotificacaoService_Create_Defaults(t *testing.T) {
	pub := &stubPublisher{}
	svc := NewNotificacaoService(newStubNotificacaoRepo(), pub, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateNotificacaoInput{
		Titulo:   "Manutenção",
		Mensagem: "Sistema fora do ar no sábado",
		Tipo:     "aviso",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Alvo != domain.AlvoTodos {
		t.Errorf("alvo should default to todos, got %s", created.Alvo)
	}
	if !created.Ativo {
		t.Errorf("new notifications must start active")
	}
	if len(pub.published) != 1 {
		t.Errorf("notification not published, got %d", len(pub.published))
	}
}

func TestNotificacaoService_Create_InvalidInput(t *testing.T) {
	svc := NewNotificacaoService(newStubNotificacaoRepo(), nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateNotificacaoInput{
		Tipo: "alerta",
		Alvo: "admins",
	})
	fe, ok := err.(domain.FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, field := range []string{"titulo", "mensagem", "tipo", "alvo"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("missing %s violation in %v", field, fe)
		}
	}
}

// A broken queue must not fail the create: the record is kept.
func TestNotificacaoService_Create_PublishFailureKeepsRecord(t *testing.T) {
	repo := newStubNotificacaoRepo()
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := NewNotificacaoService(repo, pub, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateNotificacaoInput{
		Titulo: "T", Mensagem: "M", Tipo: "pendencia",
	})
	if err != nil {
		t.Fatalf("Create must not fail on publish error: %v", err)
	}
	if _, ok := repo.items[created.ID]; !ok {
		t.Fatalf("record missing after publish failure")
	}
}

func TestNotificacaoService_Create_NilPublisher(t *testing.T) {
	svc := NewNotificacaoService(newStubNotificacaoRepo(), nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateNotificacaoInput{
		Titulo: "T", Mensagem: "M", Tipo: "update",
	}); err != nil {
		t.Fatalf("nil publisher must be tolerated: %v", err)
	}
}

func TestNotificacaoService_List_AtivoOnly(t *testing.T) {
	repo := newStubNotificacaoRepo()
	svc := NewNotificacaoService(repo, nil, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateNotificacaoInput{Titulo: "A", Mensagem: "m", Tipo: "aviso"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo.items[created.ID].Ativo = false

	all, err := svc.List(ctx, false)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected 1 notification unfiltered, got %d (%v)", len(all), err)
	}
	active, err := svc.List(ctx, true)
	if err != nil || len(active) != 0 {
		t.Fatalf("inactive notification leaked through filter: %d (%v)", len(active), err)
	}
}
